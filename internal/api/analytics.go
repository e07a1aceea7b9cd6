package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

const defaultWindowDays = 30

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	customerService  *service.CustomerService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, customerService *service.CustomerService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		customerService:  customerService,
	}
}

// GetAnalytics builds the dashboard summary --> GET /admin/analytics?days=30
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	days := defaultWindowDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(400, map[string]string{"error": "Invalid days parameter"})
		}
		days = parsed
	}

	summary, err := h.analyticsService.GetAnalytics(c.Request().Context(), days)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, summary)
}

// GetCustomers lists derived customer records --> GET /admin/customers
func (h *AnalyticsHandler) GetCustomers(c echo.Context) error {
	customers, err := h.customerService.GetCustomers(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, customers)
}
