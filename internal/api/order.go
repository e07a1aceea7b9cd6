package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// TrackOrders lists a customer's orders --> GET /orders?email=
func (h *OrderHandler) TrackOrders(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(400, map[string]string{"error": "Email is required"})
	}

	orders, err := h.orderService.GetOrdersByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, orders)
}

// GetOrders lists every order for the back office --> GET /admin/orders
func (h *OrderHandler) GetOrders(c echo.Context) error {
	orders, err := h.orderService.GetOrders(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, orders)
}

// GetOrder fetches one order with items --> GET /admin/orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(404, map[string]string{"error": "Order not found"})
	}
	return c.JSON(200, order)
}

// UpdateOrderStatus applies the admin status edit --> PUT /admin/orders/:id
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	update := service.StatusUpdate{}
	if err := c.Bind(&update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request().Context(), id, update)
	if err != nil {
		return c.JSON(422, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, order)
}

// CancelOrder cancels an order --> DELETE /admin/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, order)
}

// DeleteOrder removes an order and its items --> DELETE /admin/orders/:id
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"message": "Order deleted"})
}
