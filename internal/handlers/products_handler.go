package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// ProductsHandler serves the /products collection.
type ProductsHandler struct {
	repo repositories.ProductRepository
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(repo repositories.ProductRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductsHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)
	products.Post("/", h.HandleCreate)
	products.Put("/:id", h.HandleUpdate)
	products.Delete("/:id", h.HandleDelete)
}

// HandleList returns the catalogue, optionally filtered by category.
func (h *ProductsHandler) HandleList(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		products, err := h.repo.FindByCategory(models.Category(category))
		if err != nil {
			return serverError(c, "Could not retrieve products", err)
		}
		return c.JSON(products)
	}

	products, err := h.repo.GetAll()
	if err != nil {
		return serverError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGet returns a single product by id.
func (h *ProductsHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreate stores a new product.
func (h *ProductsHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, err)
	}
	if err := h.repo.Create(&product); err != nil {
		return serverError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate fully replaces a product record.
func (h *ProductsHandler) HandleUpdate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, err)
	}
	product.ID = c.Params("id")
	if err := h.repo.Update(&product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDelete removes a product. Cart rows and order snapshots referencing
// it are left alone; the storefront treats the dangling reference as zero.
func (h *ProductsHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
