package service

import (
	"context"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/pricing"
)

// CartService wraps the cart reducer with its persistence store and the
// catalog. Stock checks live here, not in the reducer.
type CartService struct {
	store    cart.Store
	catalog  *CatalogService
	settings *SettingsService
}

func NewCartService(store cart.Store, catalog *CatalogService, settings *SettingsService) *CartService {
	return &CartService{
		store:    store,
		catalog:  catalog,
		settings: settings,
	}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading cart for session %s", sessionID)
		return nil, err
	}
	return c, nil
}

// AddItem adds quantity of a product to the session's cart, merging with an
// existing line. Rejects quantities the product's stock cannot cover.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID, quantity int) (*cart.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if product.StockQuantity < c.Quantity(productID)+quantity {
		logger.Warn().Msgf("Product %d out of stock", productID)
		return nil, fmt.Errorf("product out of stock")
	}

	c.Add(cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  quantity,
	})
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		logger.Error().Err(err).Msgf("Error saving cart for session %s", sessionID)
		return nil, err
	}
	return c, nil
}

// UpdateItem sets a line's quantity; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, sessionID string, productID, quantity int) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity > 0 {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product.StockQuantity < quantity {
			logger.Warn().Msgf("Product %d out of stock", productID)
			return nil, fmt.Errorf("product out of stock")
		}
	}

	c.UpdateQuantity(productID, quantity)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		logger.Error().Err(err).Msgf("Error saving cart for session %s", sessionID)
		return nil, err
	}
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		logger.Error().Err(err).Msgf("Error saving cart for session %s", sessionID)
		return nil, err
	}
	return c, nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		logger.Error().Err(err).Msgf("Error clearing cart for session %s", sessionID)
		return err
	}
	return nil
}

// QuoteCart prices the session's cart against the current store settings.
func (s *CartService) QuoteCart(ctx context.Context, sessionID string) (pricing.Quote, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return pricing.Quote{}, err
	}
	settings := s.settings.GetSettings(ctx)
	return pricing.Calculate(c.TotalPrice(), settings.TaxRate, settings.ShippingCost, settings.FreeShippingThreshold), nil
}
