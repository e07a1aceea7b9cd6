package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/entity"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func order(id int, status string, amount float64, email string, createdAt time.Time) entity.Order {
	return entity.Order{
		ID:            id,
		CustomerName:  "Customer " + email,
		CustomerEmail: email,
		TotalAmount:   amount,
		OrderStatus:   status,
		CreatedAt:     createdAt,
	}
}

func withItems(o entity.Order, items ...entity.OrderItem) entity.Order {
	o.Items = items
	return o
}

func TestTotalSalesCountsDeliveredOnly(t *testing.T) {
	in := Input{
		WindowOrders: []entity.Order{
			order(1, entity.OrderStatusDelivered, 1000, "a@x.com", testNow.AddDate(0, 0, -1)),
			order(2, entity.OrderStatusPending, 5000, "b@x.com", testNow.AddDate(0, 0, -2)),
		},
	}
	summary := Summarize(in, testNow)

	assert.Equal(t, 1000.0, summary.TotalSales)
	// Order count intentionally spans every status in the window.
	assert.Equal(t, 2, summary.TotalOrders)
}

func TestTotalCustomersIsDistinctEmails(t *testing.T) {
	in := Input{
		WindowOrders: []entity.Order{
			order(1, entity.OrderStatusDelivered, 100, "a@x.com", testNow),
			order(2, entity.OrderStatusPending, 100, "a@x.com", testNow),
			order(3, entity.OrderStatusDelivered, 100, "b@x.com", testNow),
		},
	}
	assert.Equal(t, 2, Summarize(in, testNow).TotalCustomers)
}

func TestTopProducts(t *testing.T) {
	in := Input{
		WindowOrders: []entity.Order{
			withItems(order(1, entity.OrderStatusDelivered, 4000, "a@x.com", testNow),
				entity.OrderItem{ProductName: "Phone", Quantity: 2, Price: 1500},
				entity.OrderItem{ProductName: "Charger", Quantity: 2, Price: 500},
			),
			// Pending order items must not contribute revenue.
			withItems(order(2, entity.OrderStatusPending, 9000, "b@x.com", testNow),
				entity.OrderItem{ProductName: "TV", Quantity: 1, Price: 9000},
			),
		},
	}
	summary := Summarize(in, testNow)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "Phone", summary.TopProducts[0].Name)
	assert.Equal(t, 3000.0, summary.TopProducts[0].Sales)
	assert.Equal(t, 75, summary.TopProducts[0].Percentage)
	assert.Equal(t, "Charger", summary.TopProducts[1].Name)
	assert.Equal(t, 25, summary.TopProducts[1].Percentage)
}

func TestTopProductsLimitedToFour(t *testing.T) {
	items := []entity.OrderItem{
		{ProductName: "A", Quantity: 1, Price: 500},
		{ProductName: "B", Quantity: 1, Price: 400},
		{ProductName: "C", Quantity: 1, Price: 300},
		{ProductName: "D", Quantity: 1, Price: 200},
		{ProductName: "E", Quantity: 1, Price: 100},
	}
	in := Input{
		WindowOrders: []entity.Order{
			withItems(order(1, entity.OrderStatusDelivered, 1500, "a@x.com", testNow), items...),
		},
	}
	summary := Summarize(in, testNow)

	require.Len(t, summary.TopProducts, 4)
	assert.Equal(t, []string{"A", "B", "C", "D"}, []string{
		summary.TopProducts[0].Name, summary.TopProducts[1].Name,
		summary.TopProducts[2].Name, summary.TopProducts[3].Name,
	})
}

func TestTopProductPercentagesBounded(t *testing.T) {
	in := Input{
		WindowOrders: []entity.Order{
			withItems(order(1, entity.OrderStatusDelivered, 1000, "a@x.com", testNow),
				entity.OrderItem{ProductName: "A", Quantity: 1, Price: 600},
				entity.OrderItem{ProductName: "B", Quantity: 1, Price: 400},
			),
		},
	}
	summary := Summarize(in, testNow)

	sum := 0
	for _, p := range summary.TopProducts {
		sum += p.Percentage
	}
	assert.LessOrEqual(t, sum, 100)
}

func TestTopProductPercentageZeroWhenNoSales(t *testing.T) {
	// Items exist but nothing is delivered; the division must be guarded.
	in := Input{
		WindowOrders: []entity.Order{
			withItems(order(1, entity.OrderStatusCancelled, 900, "a@x.com", testNow),
				entity.OrderItem{ProductName: "A", Quantity: 1, Price: 900},
			),
		},
	}
	summary := Summarize(in, testNow)

	assert.Equal(t, 0.0, summary.TotalSales)
	for _, p := range summary.TopProducts {
		assert.Equal(t, 0, p.Percentage)
	}
}

func TestRecentOrdersNewestFirstCappedAtFive(t *testing.T) {
	var recent []entity.Order
	for i := 1; i <= 7; i++ {
		recent = append(recent, order(i, entity.OrderStatusPending, 100, "a@x.com", testNow.AddDate(0, 0, -i)))
	}
	summary := Summarize(Input{RecentOrders: recent}, testNow)

	require.Len(t, summary.RecentOrders, 5)
	for i := 0; i < len(summary.RecentOrders)-1; i++ {
		assert.True(t, summary.RecentOrders[i].Date.After(summary.RecentOrders[i+1].Date))
	}
	assert.Equal(t, 1, summary.RecentOrders[0].ID)
}

func TestSalesByMonthGroupsRealOrders(t *testing.T) {
	in := Input{
		MonthlyOrders: []entity.Order{
			order(1, entity.OrderStatusDelivered, 1000, "a@x.com", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
			order(2, entity.OrderStatusDelivered, 2000, "a@x.com", time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)),
			order(3, entity.OrderStatusDelivered, 500, "b@x.com", time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)),
			order(4, entity.OrderStatusPending, 9999, "c@x.com", time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)),
		},
	}
	summary := Summarize(in, testNow)

	require.Len(t, summary.SalesByMonth, 6)
	assert.Equal(t, "Jan", summary.SalesByMonth[0].Month)
	assert.Equal(t, "Jun", summary.SalesByMonth[5].Month)

	byMonth := map[string]float64{}
	for _, m := range summary.SalesByMonth {
		byMonth[m.Month] = m.Sales
	}
	assert.Equal(t, 3000.0, byMonth["Jun"])
	assert.Equal(t, 500.0, byMonth["Apr"])
	assert.Equal(t, 0.0, byMonth["May"]) // pending order does not count
	assert.Equal(t, 0.0, byMonth["Feb"])
}

func TestSalesByMonthYearBoundary(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	summary := Summarize(Input{}, feb)

	require.Len(t, summary.SalesByMonth, 6)
	assert.Equal(t, "Sep", summary.SalesByMonth[0].Month)
	assert.Equal(t, "Feb", summary.SalesByMonth[5].Month)
}

func TestGrowthNilWithoutPriorData(t *testing.T) {
	in := Input{
		WindowOrders: []entity.Order{
			order(1, entity.OrderStatusDelivered, 1000, "a@x.com", testNow),
		},
	}
	summary := Summarize(in, testNow)

	assert.Nil(t, summary.SalesGrowth)
	assert.Nil(t, summary.OrderGrowth)
	assert.Nil(t, summary.CustomerGrowth)
}

func TestGrowthPeriodOverPeriod(t *testing.T) {
	in := Input{
		WindowOrders: []entity.Order{
			order(1, entity.OrderStatusDelivered, 1500, "a@x.com", testNow),
			order(2, entity.OrderStatusDelivered, 1500, "b@x.com", testNow),
		},
		PriorOrders: []entity.Order{
			order(3, entity.OrderStatusDelivered, 2000, "a@x.com", testNow.AddDate(0, 0, -40)),
		},
	}
	summary := Summarize(in, testNow)

	require.NotNil(t, summary.SalesGrowth)
	assert.InDelta(t, 50.0, *summary.SalesGrowth, 1e-9) // 2000 -> 3000
	require.NotNil(t, summary.OrderGrowth)
	assert.InDelta(t, 100.0, *summary.OrderGrowth, 1e-9) // 1 -> 2
	require.NotNil(t, summary.CustomerGrowth)
	assert.InDelta(t, 100.0, *summary.CustomerGrowth, 1e-9)
}

func TestEmptyInputIsLegitimateEmptyState(t *testing.T) {
	summary := Summarize(Input{}, testNow)

	assert.Equal(t, 0.0, summary.TotalSales)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.Equal(t, 0, summary.TotalCustomers)
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.RecentOrders)
	require.Len(t, summary.SalesByMonth, 6)
	for _, m := range summary.SalesByMonth {
		assert.Equal(t, 0.0, m.Sales)
	}
}
