package api

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/entity"
	"storefront/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the store configuration --> GET /settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return c.JSON(200, h.settingsService.GetSettings(c.Request().Context()))
}

// UpdateSettings replaces the store configuration --> PUT /admin/settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	settings := entity.StoreSettings{}
	if err := c.Bind(&settings); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.settingsService.UpdateSettings(c.Request().Context(), settings); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, settings)
}

// RefreshSettings drops the settings cache --> POST /admin/settings/refresh
func (h *SettingsHandler) RefreshSettings(c echo.Context) error {
	h.settingsService.Refresh()
	return c.JSON(200, h.settingsService.GetSettings(c.Request().Context()))
}
