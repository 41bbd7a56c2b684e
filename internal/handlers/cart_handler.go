package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// CartHandler serves the /cart collection. The backend stores rows as-is;
// the one-row-per-(user,product) rule lives in the storefront client.
type CartHandler struct {
	repo repositories.CartRepository
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(repo repositories.CartRepository) *CartHandler {
	return &CartHandler{repo: repo}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart")
	cart.Get("/", h.HandleList)
	cart.Get("/:id", h.HandleGet)
	cart.Post("/", h.HandleCreate)
	cart.Put("/:id", h.HandleUpdate)
	cart.Delete("/:id", h.HandleDelete)
}

// HandleList returns all cart rows, optionally filtered by userId.
func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	if userID := c.Query("userId"); userID != "" {
		items, err := h.repo.FindByUser(userID)
		if err != nil {
			return serverError(c, "Could not retrieve cart", err)
		}
		return c.JSON(items)
	}

	items, err := h.repo.GetAll()
	if err != nil {
		return serverError(c, "Could not retrieve cart", err)
	}
	return c.JSON(items)
}

// HandleGet returns a single cart row by id.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	item, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Cart item not found")
		}
		return serverError(c, "Could not retrieve cart item", err)
	}
	return c.JSON(item)
}

// HandleCreate stores a new cart row.
func (h *CartHandler) HandleCreate(c *fiber.Ctx) error {
	var item models.CartItem
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, err)
	}
	if err := h.repo.Create(&item); err != nil {
		return serverError(c, "Could not create cart item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdate fully replaces a cart row.
func (h *CartHandler) HandleUpdate(c *fiber.Ctx) error {
	var item models.CartItem
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, err)
	}
	item.ID = c.Params("id")
	if err := h.repo.Update(&item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Cart item not found")
		}
		return serverError(c, "Could not update cart item", err)
	}
	return c.JSON(item)
}

// HandleDelete removes a cart row.
func (h *CartHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Cart item not found")
		}
		return serverError(c, "Could not delete cart item", err)
	}
	return c.JSON(fiber.Map{"message": "Cart item deleted"})
}
