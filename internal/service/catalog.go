package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"storefront/internal/entity"
	"storefront/internal/repository"
)

// CatalogService owns the product catalog, with a Redis read-through cache
// for single-product lookups.
type CatalogService struct {
	productRepo *repository.ProductRepository
	rdb         *redis.Client
}

func NewCatalogService(productRepo *repository.ProductRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		rdb:         rdb,
	}
}

func productCacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProducts lists the catalog, newest first, optionally filtered by
// category and featured flag.
func (s *CatalogService) GetProducts(ctx context.Context, filter repository.ListFilter) ([]entity.Product, error) {
	products, err := s.productRepo.GetProducts(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return nil, err
	}
	return products, nil
}

// GetProduct reads through the cache.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	key := productCacheKey(id)
	cached, err := s.rdb.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
	}
	if cached != "" {
		var product entity.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}
	s.cacheProduct(ctx, product)
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	s.cacheProduct(ctx, created)
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", product.ID)
		return nil, err
	}
	s.cacheProduct(ctx, updated)
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	if err := s.rdb.Del(ctx, productCacheKey(id)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d from cache", id)
	}
	return nil
}

func (s *CatalogService) CountProducts(ctx context.Context) (int, error) {
	return s.productRepo.CountProducts(ctx)
}

// ReserveStock decrements stock for a placed order item.
func (s *CatalogService) ReserveStock(ctx context.Context, productID, quantity int) error {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product by ID %d", productID)
		return err
	}
	if product.StockQuantity < quantity {
		logger.Warn().Msgf("Product %d out of stock", productID)
		return fmt.Errorf("product out of stock")
	}
	if err := s.productRepo.AdjustStock(ctx, productID, -quantity); err != nil {
		logger.Error().Err(err).Msgf("Error updating stock for product %d", productID)
		return err
	}
	s.refreshCache(ctx, productID)
	return nil
}

// ReleaseStock restores stock when an order is cancelled.
func (s *CatalogService) ReleaseStock(ctx context.Context, productID, quantity int) error {
	if err := s.productRepo.AdjustStock(ctx, productID, quantity); err != nil {
		logger.Error().Err(err).Msgf("Error updating stock for product %d", productID)
		return err
	}
	s.refreshCache(ctx, productID)
	return nil
}

// PreWarmCache loads the whole catalog into the cache.
func (s *CatalogService) PreWarmCache(ctx context.Context) error {
	products, err := s.productRepo.GetProducts(ctx, repository.ListFilter{})
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return err
	}
	for i := range products {
		s.cacheProduct(ctx, &products[i])
	}
	return nil
}

func (s *CatalogService) cacheProduct(ctx context.Context, product *entity.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, productCacheKey(product.ID), raw, 1*time.Minute).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", product.ID)
	}
}

func (s *CatalogService) refreshCache(ctx context.Context, productID int) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}
	s.cacheProduct(ctx, product)
}
