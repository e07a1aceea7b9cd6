package analytics

import (
	"sort"
	"time"

	"storefront/internal/entity"
)

const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusVIP      = "vip"
)

// vipSpendThreshold is in currency minor units.
const vipSpendThreshold = 300000

const inactiveAfter = 30 * 24 * time.Hour

// Customer is derived from order history on every load; nothing here is
// persisted, so the classification can shift between loads as orders arrive.
type Customer struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	JoinDate    time.Time `json:"join_date"`
	TotalOrders int       `json:"total_orders"`
	TotalSpent  float64   `json:"total_spent"`
	LastOrder   time.Time `json:"last_order"`
	Status      string    `json:"status"`
}

// RollupCustomers groups orders by customer email into derived customer
// records, newest activity first. Status rules: vip above the spend
// threshold, inactive for one-time buyers whose only order is older than 30
// days, active otherwise.
func RollupCustomers(orders []entity.Order, now time.Time) []Customer {
	byEmail := make(map[string]*Customer)
	keys := make([]string, 0)

	for i := range orders {
		o := &orders[i]
		c, ok := byEmail[o.CustomerEmail]
		if !ok {
			c = &Customer{
				Name:     o.CustomerName,
				Email:    o.CustomerEmail,
				Phone:    o.CustomerPhone,
				Address:  o.ShippingAddress,
				JoinDate: o.CreatedAt,
			}
			byEmail[o.CustomerEmail] = c
			keys = append(keys, o.CustomerEmail)
		}
		c.TotalOrders++
		c.TotalSpent += o.TotalAmount
		if o.CreatedAt.Before(c.JoinDate) {
			c.JoinDate = o.CreatedAt
		}
		if o.CreatedAt.After(c.LastOrder) {
			c.LastOrder = o.CreatedAt
			// Contact details follow the most recent order.
			c.Name = o.CustomerName
			c.Phone = o.CustomerPhone
			c.Address = o.ShippingAddress
		}
	}

	customers := make([]Customer, 0, len(keys))
	for _, email := range keys {
		c := byEmail[email]
		c.Status = classify(c, now)
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].LastOrder.After(customers[j].LastOrder)
	})
	return customers
}

func classify(c *Customer, now time.Time) string {
	if c.TotalSpent > vipSpendThreshold {
		return CustomerStatusVIP
	}
	if c.TotalOrders == 1 && c.LastOrder.Before(now.Add(-inactiveAfter)) {
		return CustomerStatusInactive
	}
	return CustomerStatusActive
}
