package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/pkg/rabbitmq"
)

// OrdersHandler serves the /orders collection. When a message queue client
// is wired in, each created order is announced as an order.created event; a
// nil client just skips publication.
type OrdersHandler struct {
	repo repositories.OrderRepository
	mq   *rabbitmq.Client
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(repo repositories.OrderRepository, mq *rabbitmq.Client) *OrdersHandler {
	return &OrdersHandler{repo: repo, mq: mq}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrdersHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleList)
	orders.Get("/:id", h.HandleGet)
	orders.Post("/", h.HandleCreate)
	orders.Put("/:id", h.HandleUpdate)
	orders.Delete("/:id", h.HandleDelete)
}

// HandleList returns all orders, optionally filtered by userId.
func (h *OrdersHandler) HandleList(c *fiber.Ctx) error {
	if userID := c.Query("userId"); userID != "" {
		orders, err := h.repo.FindByUser(userID)
		if err != nil {
			return serverError(c, "Could not retrieve orders", err)
		}
		return c.JSON(orders)
	}

	orders, err := h.repo.GetAll()
	if err != nil {
		return serverError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGet returns a single order by id.
func (h *OrdersHandler) HandleGet(c *fiber.Ctx) error {
	order, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Order not found")
		}
		return serverError(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleCreate stores a new order and announces it on the queue.
func (h *OrdersHandler) HandleCreate(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return badRequest(c, err)
	}
	if err := h.repo.Create(&order); err != nil {
		return serverError(c, "Could not create order", err)
	}

	h.publishCreated(order)
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdate fully replaces an order record.
func (h *OrdersHandler) HandleUpdate(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return badRequest(c, err)
	}
	order.ID = c.Params("id")
	if err := h.repo.Update(&order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Order not found")
		}
		return serverError(c, "Could not update order", err)
	}
	return c.JSON(order)
}

// HandleDelete removes an order.
func (h *OrdersHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Order not found")
		}
		return serverError(c, "Could not delete order", err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}

// publishCreated emits an order.created event. Publication failures are
// logged, never surfaced to the HTTP caller; the order is already stored.
func (h *OrdersHandler) publishCreated(order models.Order) {
	if h.mq == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"orderId": order.ID,
		"userId":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	})
	if err != nil {
		log.Printf("Failed to marshal order event for order %s: %v", order.ID, err)
		return
	}
	if err := h.mq.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}
