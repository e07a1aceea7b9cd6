package service

import (
	"context"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/repository"
)

const recentOrderCount = 5

// AnalyticsService fetches the record sets the pure aggregator needs and
// reduces them. Each dashboard load is an independent fetch-then-reduce
// cycle; nothing is cached between loads.
type AnalyticsService struct {
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
}

func NewAnalyticsService(orderRepo *repository.OrderRepository, productRepo *repository.ProductRepository) *AnalyticsService {
	return &AnalyticsService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// GetAnalytics builds the dashboard summary for a trailing window of
// windowDays. The preceding window of equal length feeds the growth figures.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, windowDays int) (analytics.Summary, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -windowDays)

	windowOrders, err := s.orderRepo.GetOrdersSince(ctx, since)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders for analytics window")
		return analytics.Summary{}, err
	}

	priorOrders, err := s.orderRepo.GetOrdersBetween(ctx, since.AddDate(0, 0, -windowDays), since)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders for prior window")
		return analytics.Summary{}, err
	}

	// Six calendar months ending at the current one.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	monthlyOrders, err := s.orderRepo.GetOrdersSince(ctx, monthStart)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders for monthly series")
		return analytics.Summary{}, err
	}

	recentOrders, err := s.orderRepo.GetRecentOrders(ctx, recentOrderCount)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting recent orders")
		return analytics.Summary{}, err
	}

	productCount, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting products")
		return analytics.Summary{}, err
	}

	return analytics.Summarize(analytics.Input{
		WindowOrders:  windowOrders,
		PriorOrders:   priorOrders,
		MonthlyOrders: monthlyOrders,
		RecentOrders:  recentOrders,
		ProductCount:  productCount,
	}, now), nil
}
