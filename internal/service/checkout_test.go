package service

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
	"storefront/internal/entity"
)

type stubOrderRepo struct {
	nextID  int
	created *entity.Order
	err     error
}

func (s *stubOrderRepo) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	order.ID = s.nextID
	s.created = order
	return order, nil
}

func newCheckoutFixture(repo *stubOrderRepo) (*CheckoutService, cart.Store) {
	store := cart.NewMemoryStore()
	settings := entity.DefaultStoreSettings()
	settingsSvc := &SettingsService{cached: &settings}
	cartSvc := NewCartService(store, nil, settingsSvc)
	return NewCheckoutService(repo, cartSvc, nil), store
}

func seedCart(t *testing.T, store cart.Store, sessionID string, lines ...cart.Line) {
	t.Helper()
	c := cart.New()
	for _, line := range lines {
		c.Add(line)
	}
	require.NoError(t, store.Save(context.Background(), sessionID, c))
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	svc, _ := newCheckoutFixture(&stubOrderRepo{nextID: 1})

	_, err := svc.Checkout(context.Background(), "s1", CheckoutInfo{CustomerName: "Amina", CustomerEmail: "amina@example.com"})

	assert.EqualError(t, err, "cart is empty")
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	repo := &stubOrderRepo{nextID: 7}
	svc, store := newCheckoutFixture(repo)
	svc.publish = func(ctx context.Context, w *kafka.Writer, order *entity.Order, verb string) error {
		assert.Equal(t, "created", verb)
		return nil
	}

	seedCart(t, store, "s1",
		cart.Line{ProductID: 1, Name: "Phone", Price: 1500, Quantity: 1},
		cart.Line{ProductID: 2, Name: "Charger", Price: 250, Quantity: 2},
	)

	order, err := svc.Checkout(context.Background(), "s1", CheckoutInfo{
		CustomerName:  "Amina",
		CustomerEmail: "amina@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "mpesa", order.PaymentMethod)
	// Default settings: 16% tax, free shipping. Subtotal 2000.
	assert.InDelta(t, 2320.0, order.TotalAmount, 1e-9)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 1500.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[1].Quantity)

	after, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, after.Empty())
}

func TestCheckoutKeepsProvidedPaymentMethod(t *testing.T) {
	svc, store := newCheckoutFixture(&stubOrderRepo{nextID: 8})
	svc.publish = func(ctx context.Context, w *kafka.Writer, order *entity.Order, verb string) error {
		return nil
	}

	seedCart(t, store, "s1", cart.Line{ProductID: 1, Name: "Phone", Price: 1000, Quantity: 1})

	order, err := svc.Checkout(context.Background(), "s1", CheckoutInfo{
		CustomerName:  "Amina",
		CustomerEmail: "amina@example.com",
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, "card", order.PaymentMethod)
}

func TestCheckoutSurvivesPublishFailure(t *testing.T) {
	repo := &stubOrderRepo{nextID: 9}
	svc, store := newCheckoutFixture(repo)
	svc.publish = func(ctx context.Context, w *kafka.Writer, order *entity.Order, verb string) error {
		return errors.New("broker unreachable")
	}

	seedCart(t, store, "s1", cart.Line{ProductID: 1, Name: "Phone", Price: 1000, Quantity: 1})

	order, err := svc.Checkout(context.Background(), "s1", CheckoutInfo{
		CustomerName:  "Amina",
		CustomerEmail: "amina@example.com",
	})

	// The order is committed before the event goes out; a broker outage must
	// not fail the request and bait a duplicate retry.
	require.NoError(t, err)
	assert.Equal(t, 9, order.ID)
	require.NotNil(t, repo.created)

	after, loadErr := store.Load(context.Background(), "s1")
	require.NoError(t, loadErr)
	assert.True(t, after.Empty())
}

func TestCheckoutCreateFailurePropagates(t *testing.T) {
	svc, store := newCheckoutFixture(&stubOrderRepo{err: errors.New("db down")})
	svc.publish = func(ctx context.Context, w *kafka.Writer, order *entity.Order, verb string) error {
		t.Fatal("no event may be published when the order was not created")
		return nil
	}

	seedCart(t, store, "s1", cart.Line{ProductID: 1, Name: "Phone", Price: 1000, Quantity: 1})

	_, err := svc.Checkout(context.Background(), "s1", CheckoutInfo{
		CustomerName:  "Amina",
		CustomerEmail: "amina@example.com",
	})
	assert.EqualError(t, err, "db down")

	// The cart survives a failed checkout.
	after, loadErr := store.Load(context.Background(), "s1")
	require.NoError(t, loadErr)
	assert.False(t, after.Empty())
}
