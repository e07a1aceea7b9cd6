package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/cart"
	"storefront/internal/service"
)

type CartHandler struct {
	cartSvc  *service.CartService
	checkout *service.CheckoutService
}

func NewCartHandler(cartSvc *service.CartService, checkout *service.CheckoutService) *CartHandler {
	return &CartHandler{
		cartSvc:  cartSvc,
		checkout: checkout,
	}
}

// cartView is the cart payload with derived totals.
type cartView struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Items:      c.Lines(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

// GetCart returns the session's cart --> GET /cart/:session
func (h *CartHandler) GetCart(c echo.Context) error {
	crt, err := h.cartSvc.GetCart(c.Request().Context(), c.Param("session"))
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, viewOf(crt))
}

// AddItem adds a product to the cart --> POST /cart/:session/items
func (h *CartHandler) AddItem(c echo.Context) error {
	req := struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	crt, err := h.cartSvc.AddItem(c.Request().Context(), c.Param("session"), req.ProductID, req.Quantity)
	if err != nil {
		return c.JSON(422, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, viewOf(crt))
}

// UpdateItem sets a line quantity; zero removes the line
// --> PUT /cart/:session/items/:productId
func (h *CartHandler) UpdateItem(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	req := struct {
		Quantity int `json:"quantity"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	crt, err := h.cartSvc.UpdateItem(c.Request().Context(), c.Param("session"), productID, req.Quantity)
	if err != nil {
		return c.JSON(422, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, viewOf(crt))
}

// RemoveItem drops a line --> DELETE /cart/:session/items/:productId
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	crt, err := h.cartSvc.RemoveItem(c.Request().Context(), c.Param("session"), productID)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, viewOf(crt))
}

// ClearCart empties the session's cart --> DELETE /cart/:session
func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.cartSvc.ClearCart(c.Request().Context(), c.Param("session")); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"message": "Cart cleared"})
}

// QuoteCart prices the cart with tax and shipping --> GET /cart/:session/quote
func (h *CartHandler) QuoteCart(c echo.Context) error {
	quote, err := h.cartSvc.QuoteCart(c.Request().Context(), c.Param("session"))
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, quote)
}

// Checkout turns the cart into an order --> POST /cart/:session/checkout
func (h *CartHandler) Checkout(c echo.Context) error {
	info := service.CheckoutInfo{}
	if err := c.Bind(&info); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if info.CustomerName == "" || info.CustomerEmail == "" {
		return c.JSON(400, map[string]string{"error": "Customer name and email are required"})
	}

	order, err := h.checkout.Checkout(c.Request().Context(), c.Param("session"), info)
	if err != nil {
		return c.JSON(422, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, order)
}
