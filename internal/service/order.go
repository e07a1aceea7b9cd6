package service

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"storefront/internal/entity"
	"storefront/internal/repository"
)

// OrderService covers order tracking and the admin order workflow.
type OrderService struct {
	orderRepo   *repository.OrderRepository
	kafkaWriter *kafka.Writer
}

func NewOrderService(orderRepo *repository.OrderRepository, kafkaWriter *kafka.Writer) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		kafkaWriter: kafkaWriter,
	}
}

// StatusUpdate is the admin edit applied to an order. TrackingNumber and
// Notes are pointers so an omitted field keeps the stored value while an
// explicit empty string clears it.
type StatusUpdate struct {
	OrderStatus    string  `json:"order_status"`
	PaymentStatus  string  `json:"payment_status"`
	TrackingNumber *string `json:"tracking_number"`
	Notes          *string `json:"notes"`
}

func applyStatusUpdate(order *entity.Order, update StatusUpdate) {
	order.OrderStatus = update.OrderStatus
	order.PaymentStatus = update.PaymentStatus
	if update.TrackingNumber != nil {
		order.TrackingNumber = *update.TrackingNumber
	}
	if update.Notes != nil {
		order.Notes = *update.Notes
	}
}

func (s *OrderService) GetOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders")
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}
	return order, nil
}

// GetOrdersByEmail powers customer-facing order tracking.
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetOrdersByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting orders for %s", email)
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus applies an admin status edit and publishes the matching
// lifecycle event.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int, update StatusUpdate) (*entity.Order, error) {
	if !validOrderStatus(update.OrderStatus) {
		return nil, fmt.Errorf("invalid order status %q", update.OrderStatus)
	}
	if !validPaymentStatus(update.PaymentStatus) {
		return nil, fmt.Errorf("invalid payment status %q", update.PaymentStatus)
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}

	verb := "updated"
	if update.OrderStatus == entity.OrderStatusCancelled && order.OrderStatus != entity.OrderStatusCancelled {
		verb = "cancelled"
	}

	applyStatusUpdate(order, update)

	if err := s.orderRepo.UpdateOrderStatus(ctx, order); err != nil {
		logger.Error().Err(err).Msgf("Error updating order %d", id)
		return nil, err
	}

	if err := publishOrderEvent(ctx, s.kafkaWriter, order, verb); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for order %d", verb, id)
		return nil, err
	}

	return order, nil
}

// CancelOrder moves the order to cancelled and publishes the event so the
// stock consumer can release the reserved quantities.
func (s *OrderService) CancelOrder(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}
	if order.OrderStatus == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("order %d is already cancelled", id)
	}

	order.OrderStatus = entity.OrderStatusCancelled

	if err := s.orderRepo.UpdateOrderStatus(ctx, order); err != nil {
		logger.Error().Err(err).Msgf("Error updating order %d", id)
		return nil, err
	}

	if err := publishOrderEvent(ctx, s.kafkaWriter, order, "cancelled"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing cancelled event for order %d", id)
		return nil, err
	}

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting order %d", id)
		return err
	}
	return nil
}

func validOrderStatus(status string) bool {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusProcessing, entity.OrderStatusShipped,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(status string) bool {
	switch status {
	case entity.PaymentStatusPending, entity.PaymentStatusPaid,
		entity.PaymentStatusFailed, entity.PaymentStatusRefunded:
		return true
	}
	return false
}
