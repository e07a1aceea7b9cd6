package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/entity"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GetProducts lists the catalog --> GET /products?category=&featured=
func (h *ProductHandler) GetProducts(c echo.Context) error {
	filter := repository.ListFilter{Category: c.QueryParam("category")}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid featured flag"})
		}
		filter.Featured = &featured
	}

	products, err := h.catalog.GetProducts(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, products)
}

// GetProduct fetches one product --> GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return c.JSON(404, map[string]string{"error": "Product not found"})
	}
	return c.JSON(200, product)
}

// CreateProduct adds a catalog entry --> POST /admin/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.catalog.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, created)
}

// UpdateProduct edits a catalog entry --> PUT /admin/products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	product.ID = id

	updated, err := h.catalog.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, updated)
}

// DeleteProduct removes a catalog entry --> DELETE /admin/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"message": "Product deleted"})
}

// PreWarmCache loads the catalog into the product cache
// --> GET /admin/products/warmup-cache
func (h *ProductHandler) PreWarmCache(c echo.Context) error {
	if err := h.catalog.PreWarmCache(c.Request().Context()); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"message": "Cache pre-warmed"})
}
