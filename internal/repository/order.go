package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"storefront/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

const orderColumns = `id, customer_name, customer_email, customer_phone, total_amount, payment_method, payment_status, order_status, shipping_address, COALESCE(tracking_number, ''), COALESCE(notes, ''), created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *entity.Order) error {
	return row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.TotalAmount, &o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus, &o.ShippingAddress, &o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
}

// CreateOrder inserts the order and its items in one transaction; items are
// batch-inserted.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders (customer_name, customer_email, customer_phone, total_amount, payment_method, payment_status, order_status, shipping_address, tracking_number, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.TotalAmount, order.PaymentMethod, order.PaymentStatus, order.OrderStatus, order.ShippingAddress, order.TrackingNumber, order.Notes)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(order.Items) > 0 {
		itemQuery := `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES `
		var values []interface{}
		for _, item := range order.Items {
			itemQuery += "(?, ?, ?, ?),"
			values = append(values, orderID, item.ProductID, item.Quantity, item.Price)
		}
		itemQuery = itemQuery[:len(itemQuery)-1]

		if _, err := tx.ExecContext(ctx, itemQuery, values...); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	var order entity.Order
	if err := scanOrder(r.db.QueryRowContext(ctx, query, id), &order); err != nil {
		return nil, err
	}
	orders := []entity.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// GetOrders returns all orders with items, newest first.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]entity.Order, error) {
	return r.list(ctx, "", nil)
}

// GetOrdersSince returns orders created at or after since, with items.
func (r *OrderRepository) GetOrdersSince(ctx context.Context, since time.Time) ([]entity.Order, error) {
	return r.list(ctx, "WHERE created_at >= ?", []interface{}{since})
}

// GetOrdersBetween returns orders with from <= created_at < to, with items.
func (r *OrderRepository) GetOrdersBetween(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	return r.list(ctx, "WHERE created_at >= ? AND created_at < ?", []interface{}{from, to})
}

// GetOrdersByEmail returns a customer's orders with items, newest first.
func (r *OrderRepository) GetOrdersByEmail(ctx context.Context, email string) ([]entity.Order, error) {
	return r.list(ctx, "WHERE customer_email = ?", []interface{}{email})
}

// GetRecentOrders returns the n most recently created orders without items.
func (r *OrderRepository) GetRecentOrders(ctx context.Context, n int) ([]entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepository) list(ctx context.Context, where string, args []interface{}) ([]entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func collectOrders(rows *sql.Rows) ([]entity.Order, error) {
	var orders []entity.Order
	for rows.Next() {
		var order entity.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// attachItems loads the items for every order in one query, joining product
// name and image for rendering.
func (r *OrderRepository) attachItems(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[int]*entity.Order, len(orders))
	args := make([]interface{}, 0, len(orders))
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		args = append(args, orders[i].ID)
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       COALESCE(p.name, ''), COALESCE(p.image_url, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (?` + strings.Repeat(", ?", len(orders)-1) + `)
		ORDER BY oi.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName, &item.ProductImageURL); err != nil {
			return err
		}
		if order, ok := index[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

// UpdateOrderStatus applies the admin edit: lifecycle status, payment status,
// tracking number and notes. Items are immutable and untouched.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, order *entity.Order) error {
	query := `UPDATE orders SET order_status = ?, payment_status = ?, tracking_number = ?, notes = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, order.OrderStatus, order.PaymentStatus, order.TrackingNumber, order.Notes, order.ID)
	return err
}

// DeleteOrder removes the order and its items in one transaction.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
