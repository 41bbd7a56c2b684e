// Package handlers exposes the mock backend's json-server-style resource
// collections over Fiber: list with equality query filters, get-by-id,
// create, full update and delete, all in JSON.
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// UsersHandler serves the /users collection.
type UsersHandler struct {
	repo repositories.UserRepository
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(repo repositories.UserRepository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UsersHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/", h.HandleList)
	users.Get("/:id", h.HandleGet)
	users.Post("/", h.HandleCreate)
	users.Put("/:id", h.HandleUpdate)
	users.Delete("/:id", h.HandleDelete)
}

// HandleList returns all users, or those matching an email filter.
func (h *UsersHandler) HandleList(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		users, err := h.repo.FindByEmail(email)
		if err != nil {
			return serverError(c, "Could not retrieve users", err)
		}
		return c.JSON(users)
	}

	users, err := h.repo.GetAll()
	if err != nil {
		return serverError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleGet returns a single user by id.
func (h *UsersHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, "Could not retrieve user", err)
	}
	return c.JSON(user)
}

// HandleCreate stores a new user.
func (h *UsersHandler) HandleCreate(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, err)
	}
	if err := h.repo.Create(&user); err != nil {
		return serverError(c, "Could not create user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdate fully replaces a user record.
func (h *UsersHandler) HandleUpdate(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, err)
	}
	user.ID = c.Params("id")
	if err := h.repo.Update(&user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, "Could not update user", err)
	}
	return c.JSON(user)
}

// HandleDelete removes a user.
func (h *UsersHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": message,
	})
}

func serverError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
