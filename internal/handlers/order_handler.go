package handlers

import (
	"log/slog"

	"streetbazaar/internal/middleware"
	"streetbazaar/internal/models"
	"streetbazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, validate *validator.Validate, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// RegisterRoutes registers the order routes; all of them need requireAuth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	orderRoutes := router.Group("/orders", requireAuth)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id/status", h.HandleUpdateOrderStatus)
}

// CreateOrderRequest represents the request body for placing an order.
type CreateOrderRequest struct {
	Items           []models.CartItem `json:"items"`
	DeliveryAddress string            `json:"deliveryAddress"`
}

// HandleCreateOrder places an order for the calling vendor.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	user := middleware.CurrentUser(c)
	order, err := h.service.CreateOrder(c.UserContext(), user.Caller(), req.Items, req.DeliveryAddress)
	if err != nil {
		return respondError(c, h.logger, err, errorText{forbidden: "Only vendors can create orders"})
	}
	return c.JSON(order)
}

// HandleGetOrders lists the caller's orders: purchases for a vendor, sales for a supplier.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	orders, err := h.service.GetOrders(c.UserContext(), user.Caller())
	if err != nil {
		return respondError(c, h.logger, err, errorText{})
	}
	return c.JSON(orders)
}

type statusBody struct {
	Status string `json:"status"`
}

// HandleUpdateOrderStatus sets the status given as ?status= or, failing that,
// as {"status": "..."} in the body.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	status := c.Query("status")
	if status == "" && len(c.Body()) > 0 {
		var body statusBody
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "Invalid request body for status update",
				"error":  err.Error(),
			})
		}
		status = body.Status
	}
	if status == "" {
		return detail(c, fiber.StatusBadRequest, "Status is required for order status update")
	}

	user := middleware.CurrentUser(c)
	err := h.service.UpdateOrderStatus(c.UserContext(), user.Caller(), orderID, status)
	if err != nil {
		return respondError(c, h.logger, err, errorText{
			forbidden: "Only suppliers can update order status",
			notFound:  "Order not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}
