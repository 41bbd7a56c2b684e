package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kedai/internal/models"
	"kedai/internal/views"
)

func TestCartForUser(t *testing.T) {
	items := []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
		{ID: "cart_2", UserID: "user-b", ProductID: "prod_1", Quantity: 1},
		{ID: "cart_3", UserID: "user-a", ProductID: "prod_2", Quantity: 1},
	}

	got := views.CartForUser(items, "user-a")
	assert.Len(t, got, 2)
	for _, item := range got {
		assert.Equal(t, "user-a", item.UserID)
	}

	assert.Empty(t, views.CartForUser(items, "user-c"))
}

func TestCartTotal(t *testing.T) {
	products := []models.Product{
		{ID: "prod_1", Name: "Kopi Susu Gula Aren", Price: 20000, Category: models.CategoryCoffee},
		{ID: "prod_2", Name: "Americano", Price: 15000, Category: models.CategoryCoffee},
	}
	items := []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
		{ID: "cart_2", UserID: "user-a", ProductID: "prod_2", Quantity: 1},
		{ID: "cart_3", UserID: "user-b", ProductID: "prod_1", Quantity: 5},
	}

	assert.Equal(t, int64(55000), views.CartTotal(items, products, "user-a"))

	// Another user's rows never leak into the total.
	assert.Equal(t, int64(100000), views.CartTotal(items, products, "user-b"))
}

func TestCartTotalDeletedProductContributesZero(t *testing.T) {
	products := []models.Product{
		{ID: "prod_2", Name: "Americano", Price: 15000, Category: models.CategoryCoffee},
	}
	items := []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2}, // deleted product
		{ID: "cart_2", UserID: "user-a", ProductID: "prod_2", Quantity: 1},
	}

	assert.Equal(t, int64(15000), views.CartTotal(items, products, "user-a"))
}

func TestOrdersForUserSortedNewestFirst(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		{ID: "order_1", UserID: "user-a", Date: now.Add(-2 * time.Hour)},
		{ID: "order_2", UserID: "user-b", Date: now.Add(-1 * time.Hour)},
		{ID: "order_3", UserID: "user-a", Date: now},
		{ID: "order_4", UserID: "user-a", Date: now.Add(-1 * time.Hour)},
	}

	got := views.OrdersForUser(orders, "user-a")
	assert.Len(t, got, 3)
	assert.Equal(t, "order_3", got[0].ID)
	assert.Equal(t, "order_4", got[1].ID)
	assert.Equal(t, "order_1", got[2].ID)
}

func TestOrderTotal(t *testing.T) {
	order := models.Order{Subtotal: 55000, ShippingCost: 10000, Total: 65000}
	assert.Equal(t, int64(65000), views.OrderTotal(order))

	dineIn := models.Order{Subtotal: 30000, ShippingCost: 0}
	assert.Equal(t, int64(30000), views.OrderTotal(dineIn))
}
