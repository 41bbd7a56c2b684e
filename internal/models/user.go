package models

// Role distinguishes buyers from sellers. Sellers manage the catalogue,
// buyers shop it.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// User represents a registered account. Password holds a bcrypt hash, never
// plaintext; it round-trips through the backend because login compares
// client-side against the stored record.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=buyer seller"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
	Address  string `json:"address"`
}

// IsSeller reports whether the user may manage products.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}
