// Package session tracks which user, if any, is authenticated in this
// process. The identity survives restarts as an HS256-signed token written to
// a well-known file; a missing, unparsable or badly-signed snapshot falls
// back to anonymous.
package session

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"kedai/internal/api"
	"kedai/internal/models"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password, deliberately without saying which.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken rejects registration with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotAuthenticated rejects profile operations while anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")
)

const defaultAvatar = "https://placehold.co/100"

// RegisterRequest is the registration form. Role defaults to buyer.
type RegisterRequest struct {
	FullName        string      `validate:"required,min=2,max=100"`
	Email           string      `validate:"required,email"`
	Password        string      `validate:"required,min=6"`
	ConfirmPassword string      `validate:"required,eqfield=Password"`
	Role            models.Role `validate:"omitempty,oneof=buyer seller"`
}

// ProfileUpdate carries the mutable profile fields. Empty fields are left
// unchanged; a non-empty Password is re-hashed.
type ProfileUpdate struct {
	FullName string `validate:"omitempty,min=2,max=100"`
	Avatar   string `validate:"omitempty,url"`
	Address  string
	Password string `validate:"omitempty,min=6"`
}

type sessionClaims struct {
	User models.User `json:"user"`
	jwt.StandardClaims
}

// Holder is the session/identity holder: anonymous until a login or register
// succeeds, anonymous again after logout.
type Holder struct {
	users    api.UserAPI
	validate *validator.Validate
	secret   []byte
	path     string

	mu      sync.RWMutex
	current *models.User
}

// New creates a Holder persisting to path and immediately tries to restore a
// previously saved identity. Restoration failure is not an error; it just
// leaves the holder anonymous and discards the bad snapshot.
func New(users api.UserAPI, secret []byte, path string) *Holder {
	h := &Holder{
		users:    users,
		validate: validator.New(),
		secret:   secret,
		path:     path,
	}
	h.restore()
	return h
}

// Current returns the authenticated user, or false while anonymous.
func (h *Holder) Current() (*models.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil, false
	}
	user := *h.current
	return &user, true
}

// IsAuthenticated reports whether a user is logged in.
func (h *Holder) IsAuthenticated() bool {
	_, ok := h.Current()
	return ok
}

// IsSeller reports whether the authenticated user is a seller.
func (h *Holder) IsSeller() bool {
	user, ok := h.Current()
	return ok && user.IsSeller()
}

// Login authenticates by exact email lookup and bcrypt comparison. On
// failure the holder's state is untouched.
func (h *Holder) Login(email, password string) (*models.User, error) {
	users, err := h.users.ListUsersByEmail(email)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return h.persist(users[i])
	}
	return nil, ErrInvalidCredentials
}

// Register creates a new account and immediately authenticates as it. The
// email-uniqueness pre-check is a read followed by a create, not an atomic
// operation; the backend is trusted not to race against itself.
func (h *Holder) Register(req RegisterRequest) (*models.User, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	existing, err := h.users.ListUsersByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	user := models.User{
		ID:       fmt.Sprintf("user_%d", time.Now().UnixNano()),
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
		Avatar:   defaultAvatar,
		Address:  "-",
	}

	created, err := h.users.CreateUser(user)
	if err != nil {
		return nil, err
	}
	return h.persist(*created)
}

// Logout drops the identity unconditionally.
func (h *Holder) Logout() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
	os.Remove(h.path)
}

// UpdateProfile mutates the authenticated user's record and refreshes the
// persisted snapshot. It re-reads the record first so fields the form does
// not carry, the password hash above all, survive the full PUT.
func (h *Holder) UpdateProfile(update ProfileUpdate) (*models.User, error) {
	current, ok := h.Current()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if err := h.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}

	fresh, err := h.users.GetUser(current.ID)
	if err != nil {
		return nil, err
	}
	if update.FullName != "" {
		fresh.FullName = update.FullName
	}
	if update.Avatar != "" {
		fresh.Avatar = update.Avatar
	}
	if update.Address != "" {
		fresh.Address = update.Address
	}
	if update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fresh.Password = string(hash)
	}

	updated, err := h.users.UpdateUser(*fresh)
	if err != nil {
		return nil, err
	}
	return h.persist(*updated)
}

// persist signs the identity (password blanked), writes the snapshot and
// transitions to authenticated.
func (h *Holder) persist(user models.User) (*models.User, error) {
	user.Password = ""

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		User: user,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: time.Now().Unix(),
			Subject:  user.ID,
		},
	})
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := os.WriteFile(h.path, []byte(signed), 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	h.mu.Lock()
	h.current = &user
	h.mu.Unlock()
	snapshot := user
	return &snapshot, nil
}

// restore loads the persisted snapshot. Anything wrong with it, from a
// missing file to a bad signature, leaves the holder anonymous and removes
// the file.
func (h *Holder) restore() {
	raw, err := os.ReadFile(h.path)
	if err != nil {
		return
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(string(raw), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.secret, nil
	})
	if err != nil || !token.Valid {
		os.Remove(h.path)
		return
	}

	h.mu.Lock()
	user := claims.User
	h.current = &user
	h.mu.Unlock()
}
