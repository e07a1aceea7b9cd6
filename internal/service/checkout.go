package service

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"

	"storefront/internal/entity"
)

// CheckoutInfo is the customer-entered part of an order.
type CheckoutInfo struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

// orderCreator is the slice of the order repository checkout needs.
type orderCreator interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
}

// CheckoutService turns a session's cart into a persisted order.
type CheckoutService struct {
	orderRepo   orderCreator
	cartSvc     *CartService
	kafkaWriter *kafka.Writer
	publish     func(ctx context.Context, w *kafka.Writer, order *entity.Order, verb string) error
}

func NewCheckoutService(orderRepo orderCreator, cartSvc *CartService, kafkaWriter *kafka.Writer) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		cartSvc:     cartSvc,
		kafkaWriter: kafkaWriter,
		publish:     publishOrderEvent,
	}
}

// Checkout prices the cart, stores the order with its items in one
// transaction, publishes the created event and destroys the cart. The cart
// lines' unit prices become the immutable purchase prices.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, info CheckoutInfo) (*entity.Order, error) {
	c, err := s.cartSvc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, errors.New("cart is empty")
	}

	quote, err := s.cartSvc.QuoteCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	paymentMethod := info.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "mpesa"
	}

	order := &entity.Order{
		CustomerName:    info.CustomerName,
		CustomerEmail:   info.CustomerEmail,
		CustomerPhone:   info.CustomerPhone,
		TotalAmount:     quote.Total,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   entity.PaymentStatusPending,
		OrderStatus:     entity.OrderStatusPending,
		ShippingAddress: info.ShippingAddress,
		Notes:           info.Notes,
	}
	for _, line := range c.Lines() {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	// From here on the order is committed; failing the request would invite a
	// retry that duplicates it. A lost event only delays the stock adjustment.
	if err := s.publish(ctx, s.kafkaWriter, created, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing created event for order %d", created.ID)
	}

	// The order exists; a failed cart clear only leaves a stale session cart.
	if err := s.cartSvc.ClearCart(ctx, sessionID); err != nil {
		logger.Error().Err(err).Msgf("Error clearing cart for session %s", sessionID)
	}

	return created, nil
}
