package models

// CartItem is one row of a user's cart. At most one row exists per
// (UserID, ProductID) pair; adding the same product again increments the
// existing row's quantity instead of creating a second one.
type CartItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}
