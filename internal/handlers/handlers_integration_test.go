package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"kedai/internal/handlers"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// setupApp assembles a Fiber app over fresh in-memory repositories, the same
// wiring main.go uses with the memory driver and no message queue.
func setupApp() *fiber.App {
	app := fiber.New()

	handlers.NewUsersHandler(repositories.NewMemoryUserRepository()).RegisterRoutes(app)
	handlers.NewProductsHandler(repositories.NewMemoryProductRepository()).RegisterRoutes(app)
	handlers.NewCartHandler(repositories.NewMemoryCartRepository()).RegisterRoutes(app)
	handlers.NewOrdersHandler(repositories.NewMemoryOrderRepository(), nil).RegisterRoutes(app)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp, raw
}

func TestProductsCRUD(t *testing.T) {
	app := setupApp()

	// Create: the backend assigns an id when the client sends none.
	resp, raw := doJSON(t, app, http.MethodPost, "/products", models.Product{
		Name: "Americano", Price: 15000, Category: models.CategoryCoffee,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	assert.NoError(t, json.Unmarshal(raw, &created))
	assert.NotEmpty(t, created.ID)

	// A client-supplied id is kept as-is.
	resp, raw = doJSON(t, app, http.MethodPost, "/products", models.Product{
		ID: "prod_123", Name: "Matcha Latte", Price: 25000, Category: models.CategoryNonCoffee,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var withID models.Product
	assert.NoError(t, json.Unmarshal(raw, &withID))
	assert.Equal(t, "prod_123", withID.ID)

	// List all.
	resp, raw = doJSON(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Product
	assert.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 2)

	// Category filter.
	resp, raw = doJSON(t, app, http.MethodGet, "/products?category=non-coffee", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var filtered []models.Product
	assert.NoError(t, json.Unmarshal(raw, &filtered))
	assert.Len(t, filtered, 1)
	assert.Equal(t, "prod_123", filtered[0].ID)

	// Full update.
	withID.Price = 27000
	resp, raw = doJSON(t, app, http.MethodPut, "/products/prod_123", withID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	assert.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, int64(27000), updated.Price)

	// Delete, then 404.
	resp, _ = doJSON(t, app, http.MethodDelete, "/products/prod_123", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/products/prod_123", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductsNotFound(t *testing.T) {
	app := setupApp()

	resp, _ := doJSON(t, app, http.MethodGet, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/products/missing", models.Product{Name: "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsersEmailFilter(t *testing.T) {
	app := setupApp()

	for _, u := range []models.User{
		{ID: "user_1", FullName: "Budi Santoso", Email: "budi@example.com", Role: models.RoleBuyer},
		{ID: "user_2", FullName: "Siti Aminah", Email: "siti@example.com", Role: models.RoleSeller},
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/users", u)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, raw := doJSON(t, app, http.MethodGet, "/users?email=siti@example.com", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var matched []models.User
	assert.NoError(t, json.Unmarshal(raw, &matched))
	assert.Len(t, matched, 1)
	assert.Equal(t, "user_2", matched[0].ID)

	// No match returns an empty list, not a 404.
	resp, raw = doJSON(t, app, http.MethodGet, "/users?email=nobody@example.com", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var none []models.User
	assert.NoError(t, json.Unmarshal(raw, &none))
	assert.Empty(t, none)
}

func TestCartUserFilter(t *testing.T) {
	app := setupApp()

	for _, item := range []models.CartItem{
		{ID: "cart_1", UserID: "user_1", ProductID: "prod_1", Quantity: 2},
		{ID: "cart_2", UserID: "user_2", ProductID: "prod_1", Quantity: 1},
		{ID: "cart_3", UserID: "user_1", ProductID: "prod_2", Quantity: 1},
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/cart", item)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, raw := doJSON(t, app, http.MethodGet, "/cart?userId=user_1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.CartItem
	assert.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "user_1", item.UserID)
	}
}

func TestOrdersLifecycle(t *testing.T) {
	app := setupApp()

	order := models.Order{
		ID:     "order_1",
		UserID: "user_1",
		Items: []models.OrderItem{
			{ProductID: "prod_1", Name: "Kopi Susu Gula Aren", Price: 20000, Quantity: 2},
		},
		Subtotal: 40000, ShippingCost: 10000, Total: 50000,
		Status: models.StatusPending, OrderType: models.OrderDelivery,
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/orders", order)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/orders/order_1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Order
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, int64(50000), fetched.Total)
	assert.Len(t, fetched.Items, 1)

	// Full update flips the status.
	fetched.Status = models.StatusCompleted
	resp, raw = doJSON(t, app, http.MethodPut, "/orders/order_1", fetched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Order
	assert.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// Filter by user.
	resp, raw = doJSON(t, app, http.MethodGet, "/orders?userId=user_1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []models.Order
	assert.NoError(t, json.Unmarshal(raw, &mine))
	assert.Len(t, mine, 1)
}
