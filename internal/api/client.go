package api

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"kedai/internal/models"
)

// Client talks to the backend over HTTP/JSON. Every operation maps failure
// (network error or non-2xx) to one fixed human-readable message; nothing is
// retried.
type Client struct {
	http *resty.Client
}

// NewClient returns a Client rooted at baseURL, e.g. "http://localhost:3000".
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
	}
}

var _ UserAPI = (*Client)(nil)
var _ ProductAPI = (*Client)(nil)
var _ CartAPI = (*Client)(nil)
var _ OrderAPI = (*Client)(nil)

func (c *Client) get(path, msg string, query map[string]string, out any) error {
	req := c.http.R().SetResult(out)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return wrap(resp, err, msg)
}

func (c *Client) post(path, msg string, body, out any) error {
	resp, err := c.http.R().SetBody(body).SetResult(out).Post(path)
	return wrap(resp, err, msg)
}

func (c *Client) put(path, msg string, body, out any) error {
	resp, err := c.http.R().SetBody(body).SetResult(out).Put(path)
	return wrap(resp, err, msg)
}

func (c *Client) delete(path, msg string) error {
	resp, err := c.http.R().Delete(path)
	return wrap(resp, err, msg)
}

func wrap(resp *resty.Response, err error, msg string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	if resp.IsError() {
		return fmt.Errorf("%s: unexpected status %d", msg, resp.StatusCode())
	}
	return nil
}

// --- users ---

func (c *Client) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := c.get("/users", "failed to fetch users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListUsersByEmail(email string) ([]models.User, error) {
	var users []models.User
	err := c.get("/users", "failed to fetch users", map[string]string{"email": email}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := c.get("/users/"+id, "failed to fetch user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(user models.User) (*models.User, error) {
	var created models.User
	if err := c.post("/users", "failed to create user", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(user models.User) (*models.User, error) {
	var updated models.User
	if err := c.put("/users/"+user.ID, "failed to update profile", user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(id string) error {
	return c.delete("/users/"+id, "failed to delete user")
}

// --- products ---

func (c *Client) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := c.get("/products", "failed to fetch products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListProductsByCategory(category models.Category) ([]models.Product, error) {
	var products []models.Product
	err := c.get("/products", "failed to fetch products by category",
		map[string]string{"category": string(category)}, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := c.get("/products/"+id, "product not found", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.post("/products", "failed to add product", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(product models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.put("/products/"+product.ID, "failed to update product", product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(id string) error {
	return c.delete("/products/"+id, "failed to delete product")
}

// --- cart ---

func (c *Client) ListCartByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := c.get("/cart", "failed to fetch cart", map[string]string{"userId": userID}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateCartItem(item models.CartItem) (*models.CartItem, error) {
	var created models.CartItem
	if err := c.post("/cart", "failed to add to cart", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCartItem(item models.CartItem) (*models.CartItem, error) {
	var updated models.CartItem
	if err := c.put("/cart/"+item.ID, "failed to update cart", item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCartItem(id string) error {
	return c.delete("/cart/"+id, "failed to remove from cart")
}

// --- orders ---

func (c *Client) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.get("/orders", "failed to fetch orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListOrdersByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := c.get("/orders", "failed to fetch user orders", map[string]string{"userId": userID}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := c.get("/orders/"+id, "order not found", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(order models.Order) (*models.Order, error) {
	var created models.Order
	if err := c.post("/orders", "failed to create order", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateOrder(order models.Order) (*models.Order, error) {
	var updated models.Order
	if err := c.put("/orders/"+order.ID, "failed to update order", order, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteOrder(id string) error {
	return c.delete("/orders/"+id, "failed to cancel order")
}
