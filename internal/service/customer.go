package service

import (
	"context"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/repository"
)

// CustomerService derives customer records from order history. There is no
// customers table; every page load recomputes the rollup from scratch.
type CustomerService struct {
	orderRepo *repository.OrderRepository
}

func NewCustomerService(orderRepo *repository.OrderRepository) *CustomerService {
	return &CustomerService{orderRepo: orderRepo}
}

func (s *CustomerService) GetCustomers(ctx context.Context) ([]analytics.Customer, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders for customer rollup")
		return nil, err
	}
	return analytics.RollupCustomers(orders, time.Now()), nil
}
