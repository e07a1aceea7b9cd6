package entity

import "time"

// Order statuses follow the back-office lifecycle; revenue is recognized
// only once an order reaches OrderStatusDelivered.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Order struct {
	ID              int         `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	OrderStatus     string      `json:"order_status"`
	ShippingAddress string      `json:"shipping_address"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"order_items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is immutable once created; Price is the unit price at purchase
// time, not the product's current price. ProductName and ProductImageURL are
// joined from the products table at read time.
type OrderItem struct {
	ID              int     `json:"id"`
	OrderID         int     `json:"order_id"`
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	ProductName     string  `json:"product_name,omitempty"`
	ProductImageURL string  `json:"product_image_url,omitempty"`
}
