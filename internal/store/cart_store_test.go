package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kedai/internal/models"
	"kedai/internal/store"
)

// MockCartAPI is a mock implementation of api.CartAPI.
type MockCartAPI struct {
	mock.Mock
}

func (m *MockCartAPI) ListCartByUser(userID string) ([]models.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartAPI) CreateCartItem(item models.CartItem) (*models.CartItem, error) {
	args := m.Called(item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartAPI) UpdateCartItem(item models.CartItem) (*models.CartItem, error) {
	args := m.Called(item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartAPI) DeleteCartItem(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func loadedCartStore(t *testing.T, mockAPI *MockCartAPI, items []models.CartItem) *store.CartStore {
	t.Helper()
	s := store.NewCartStore(mockAPI)
	mockAPI.On("ListCartByUser", "user-a").Return(items, nil).Once()
	_, err := s.Load("user-a")
	assert.NoError(t, err)
	return s
}

func TestCartStore_AddItemCreatesRow(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := loadedCartStore(t, mockAPI, nil)

	created := models.CartItem{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2}
	mockAPI.On("CreateCartItem", mock.MatchedBy(func(item models.CartItem) bool {
		return item.UserID == "user-a" && item.ProductID == "prod_1" && item.Quantity == 2
	})).Return(&created, nil).Once()

	got, err := s.AddItem("user-a", "prod_1", 2)
	assert.NoError(t, err)
	assert.Equal(t, "cart_1", got.ID)
	assert.Len(t, s.ForUser("user-a"), 1)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_AddSameProductTwiceMergesRows(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := loadedCartStore(t, mockAPI, []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
	})

	merged := models.CartItem{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 3}
	mockAPI.On("UpdateCartItem", merged).Return(&merged, nil).Once()

	got, err := s.AddItem("user-a", "prod_1", 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	// Still exactly one row for the pair, never two.
	rows := s.ForUser("user-a")
	assert.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantity)
	mockAPI.AssertNotCalled(t, "CreateCartItem", mock.Anything)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_AddItemRejectsNonPositiveQuantity(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := store.NewCartStore(mockAPI)

	_, err := s.AddItem("user-a", "prod_1", 0)
	assert.Error(t, err)
	_, err = s.AddItem("user-a", "prod_1", -2)
	assert.Error(t, err)
	mockAPI.AssertNotCalled(t, "CreateCartItem", mock.Anything)
}

func TestCartStore_UpdateQuantityToZeroRemovesRow(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := loadedCartStore(t, mockAPI, []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
	})

	mockAPI.On("DeleteCartItem", "cart_1").Return(nil).Once()

	got, err := s.UpdateQuantity("cart_1", 0)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, s.ForUser("user-a"))
	mockAPI.AssertNotCalled(t, "UpdateCartItem", mock.Anything)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_FailedRemoteLeavesCacheIntact(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := loadedCartStore(t, mockAPI, []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
	})

	mockAPI.On("CreateCartItem", mock.AnythingOfType("models.CartItem")).
		Return(nil, fmt.Errorf("failed to add to cart: boom")).Once()

	_, err := s.AddItem("user-a", "prod_2", 1)
	assert.Error(t, err)

	rows := s.ForUser("user-a")
	assert.Len(t, rows, 1)
	assert.Equal(t, "cart_1", rows[0].ID)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_ForUserNoCrossUserLeakage(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := loadedCartStore(t, mockAPI, []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
		{ID: "cart_2", UserID: "user-b", ProductID: "prod_1", Quantity: 1},
	})

	for _, item := range s.ForUser("user-a") {
		assert.Equal(t, "user-a", item.UserID)
	}
	assert.Len(t, s.ForUser("user-a"), 1)
	assert.Len(t, s.ForUser("user-b"), 1)
}

func TestCartStore_ClearStopsAtFirstFailure(t *testing.T) {
	mockAPI := new(MockCartAPI)
	s := loadedCartStore(t, mockAPI, []models.CartItem{
		{ID: "cart_1", UserID: "user-a", ProductID: "prod_1", Quantity: 2},
		{ID: "cart_2", UserID: "user-a", ProductID: "prod_2", Quantity: 1},
	})

	mockAPI.On("DeleteCartItem", "cart_1").Return(nil).Once()
	mockAPI.On("DeleteCartItem", "cart_2").Return(fmt.Errorf("failed to remove from cart: boom")).Once()

	err := s.Clear("user-a")
	assert.Error(t, err)

	// The row removed before the failure stays removed, the rest stay put.
	rows := s.ForUser("user-a")
	assert.Len(t, rows, 1)
	assert.Equal(t, "cart_2", rows[0].ID)
	mockAPI.AssertExpectations(t)
}
