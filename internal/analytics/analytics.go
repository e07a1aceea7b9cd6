// Package analytics computes the admin dashboard aggregates from fetched
// order records. Everything here is pure and synchronous; data fetching stays
// in the service layer.
package analytics

import (
	"math"
	"sort"
	"time"

	"storefront/internal/entity"
)

const (
	topProductLimit  = 4
	monthSeriesLen   = 6
	recentOrderLimit = 5
)

// Input carries the pre-fetched records Summarize reduces over.
// WindowOrders and PriorOrders are the current and immediately preceding
// reporting windows of equal length; MonthlyOrders spans the trailing six
// calendar months; RecentOrders is the newest-first slice independent of any
// window; ProductCount is the store-wide catalog size.
type Input struct {
	WindowOrders  []entity.Order
	PriorOrders   []entity.Order
	MonthlyOrders []entity.Order
	RecentOrders  []entity.Order
	ProductCount  int
}

type TopProduct struct {
	Name       string  `json:"name"`
	Sales      float64 `json:"sales"`
	Percentage int     `json:"percentage"`
}

type MonthSales struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type RecentOrder struct {
	ID       int       `json:"id"`
	Customer string    `json:"customer"`
	Amount   float64   `json:"amount"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
}

// Summary is the dashboard payload. Growth fields are nil when the preceding
// window holds no data; the renderer shows "no prior data" instead of a
// fabricated figure.
type Summary struct {
	TotalSales     float64       `json:"total_sales"`
	TotalOrders    int           `json:"total_orders"`
	TotalCustomers int           `json:"total_customers"`
	TotalProducts  int           `json:"total_products"`
	SalesGrowth    *float64      `json:"sales_growth"`
	OrderGrowth    *float64      `json:"order_growth"`
	CustomerGrowth *float64      `json:"customer_growth"`
	TopProducts    []TopProduct  `json:"top_products"`
	RecentOrders   []RecentOrder `json:"recent_orders"`
	SalesByMonth   []MonthSales  `json:"sales_by_month"`
}

// Summarize reduces the input to the dashboard summary.
//
// Revenue recognition counts delivered orders only. TotalOrders deliberately
// counts every order in the window regardless of status; the two denominators
// differ on purpose. Top-product revenue uses the same delivered-only filter
// as TotalSales so percentages stay within 100.
func Summarize(in Input, now time.Time) Summary {
	totalSales := deliveredSales(in.WindowOrders)

	return Summary{
		TotalSales:     totalSales,
		TotalOrders:    len(in.WindowOrders),
		TotalCustomers: distinctCustomers(in.WindowOrders),
		TotalProducts:  in.ProductCount,
		SalesGrowth:    growthPct(totalSales, deliveredSales(in.PriorOrders)),
		OrderGrowth:    growthPct(float64(len(in.WindowOrders)), float64(len(in.PriorOrders))),
		CustomerGrowth: growthPct(float64(distinctCustomers(in.WindowOrders)), float64(distinctCustomers(in.PriorOrders))),
		TopProducts:    topProducts(in.WindowOrders, totalSales),
		RecentOrders:   recentOrders(in.RecentOrders),
		SalesByMonth:   salesByMonth(in.MonthlyOrders, now),
	}
}

func deliveredSales(orders []entity.Order) float64 {
	total := 0.0
	for i := range orders {
		if orders[i].OrderStatus == entity.OrderStatusDelivered {
			total += orders[i].TotalAmount
		}
	}
	return total
}

func distinctCustomers(orders []entity.Order) int {
	seen := make(map[string]struct{}, len(orders))
	for i := range orders {
		seen[orders[i].CustomerEmail] = struct{}{}
	}
	return len(seen)
}

// growthPct is the period-over-period percentage change. A zero prior period
// means there is nothing to compare against, reported as nil.
func growthPct(current, prior float64) *float64 {
	if prior == 0 {
		return nil
	}
	g := (current - prior) / prior * 100
	return &g
}

func topProducts(orders []entity.Order, totalSales float64) []TopProduct {
	revenue := make(map[string]float64)
	for i := range orders {
		if orders[i].OrderStatus != entity.OrderStatusDelivered {
			continue
		}
		for _, item := range orders[i].Items {
			name := item.ProductName
			if name == "" {
				name = "Unknown"
			}
			revenue[name] += float64(item.Quantity) * item.Price
		}
	}

	products := make([]TopProduct, 0, len(revenue))
	for name, sales := range revenue {
		products = append(products, TopProduct{Name: name, Sales: sales})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Sales != products[j].Sales {
			return products[i].Sales > products[j].Sales
		}
		return products[i].Name < products[j].Name
	})
	if len(products) > topProductLimit {
		products = products[:topProductLimit]
	}
	for i := range products {
		// Guard the division: no delivered sales means no share to report.
		if totalSales > 0 {
			products[i].Percentage = int(math.Round(products[i].Sales / totalSales * 100))
		}
	}
	return products
}

func recentOrders(orders []entity.Order) []RecentOrder {
	sorted := make([]entity.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentOrderLimit {
		sorted = sorted[:recentOrderLimit]
	}
	out := make([]RecentOrder, len(sorted))
	for i := range sorted {
		out[i] = RecentOrder{
			ID:       sorted[i].ID,
			Customer: sorted[i].CustomerName,
			Amount:   sorted[i].TotalAmount,
			Status:   sorted[i].OrderStatus,
			Date:     sorted[i].CreatedAt,
		}
	}
	return out
}

// salesByMonth groups delivered orders by calendar month over the trailing
// six months ending at now's month. Months without sales stay at zero.
func salesByMonth(orders []entity.Order, now time.Time) []MonthSales {
	type bucket struct {
		year  int
		month time.Month
	}
	sums := make(map[bucket]float64)
	for i := range orders {
		if orders[i].OrderStatus != entity.OrderStatusDelivered {
			continue
		}
		created := orders[i].CreatedAt
		sums[bucket{created.Year(), created.Month()}] += orders[i].TotalAmount
	}

	series := make([]MonthSales, 0, monthSeriesLen)
	for i := monthSeriesLen - 1; i >= 0; i-- {
		// First-of-month anchor keeps AddDate away from end-of-month overflow.
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		series = append(series, MonthSales{
			Month: m.Format("Jan"),
			Sales: sums[bucket{m.Year(), m.Month()}],
		})
	}
	return series
}
