package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestApplyStatusUpdate(t *testing.T) {
	tests := []struct {
		name         string
		update       StatusUpdate
		wantTracking string
		wantNotes    string
	}{
		{
			name: "omitted tracking and notes keep stored values",
			update: StatusUpdate{
				OrderStatus:   entity.OrderStatusShipped,
				PaymentStatus: entity.PaymentStatusPaid,
			},
			wantTracking: "TRK-001",
			wantNotes:    "fragile",
		},
		{
			name: "provided tracking overwrites",
			update: StatusUpdate{
				OrderStatus:    entity.OrderStatusShipped,
				PaymentStatus:  entity.PaymentStatusPaid,
				TrackingNumber: strPtr("TRK-002"),
			},
			wantTracking: "TRK-002",
			wantNotes:    "fragile",
		},
		{
			name: "explicit empty string clears",
			update: StatusUpdate{
				OrderStatus:    entity.OrderStatusShipped,
				PaymentStatus:  entity.PaymentStatusPaid,
				TrackingNumber: strPtr(""),
				Notes:          strPtr(""),
			},
			wantTracking: "",
			wantNotes:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &entity.Order{
				OrderStatus:    entity.OrderStatusProcessing,
				PaymentStatus:  entity.PaymentStatusPending,
				TrackingNumber: "TRK-001",
				Notes:          "fragile",
			}

			applyStatusUpdate(order, tt.update)

			assert.Equal(t, tt.update.OrderStatus, order.OrderStatus)
			assert.Equal(t, tt.update.PaymentStatus, order.PaymentStatus)
			assert.Equal(t, tt.wantTracking, order.TrackingNumber)
			assert.Equal(t, tt.wantNotes, order.Notes)
		})
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		entity.OrderStatusPending, entity.OrderStatusProcessing, entity.OrderStatusShipped,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled,
	} {
		assert.True(t, validOrderStatus(status), status)
	}
	assert.False(t, validOrderStatus("returned"))
	assert.False(t, validOrderStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	for _, status := range []string{
		entity.PaymentStatusPending, entity.PaymentStatusPaid,
		entity.PaymentStatusFailed, entity.PaymentStatusRefunded,
	} {
		assert.True(t, validPaymentStatus(status), status)
	}
	assert.False(t, validPaymentStatus("partial"))
	assert.False(t, validPaymentStatus(""))
}
