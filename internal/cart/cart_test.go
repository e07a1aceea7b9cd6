package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID int, price float64, qty int) Line {
	return Line{ProductID: productID, Name: "p", Price: price, Quantity: qty}
}

func TestAddMergesByProductID(t *testing.T) {
	c := New()
	c.Add(line(1, 100, 2))
	c.Add(line(1, 100, 3))

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 5, c.TotalItems())
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(line(3, 10, 1))
	c.Add(line(1, 10, 1))
	c.Add(line(2, 10, 1))
	c.Add(line(1, 10, 1)) // merge must not reorder

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID})
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	c := New()
	c.Add(line(1, 100, 0))
	assert.Equal(t, 1, c.TotalItems())
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	viaUpdate := New()
	viaUpdate.Add(line(1, 100, 2))
	viaUpdate.Add(line(2, 50, 1))
	viaUpdate.UpdateQuantity(1, 0)

	viaRemove := New()
	viaRemove.Add(line(1, 100, 2))
	viaRemove.Add(line(2, 50, 1))
	viaRemove.Remove(1)

	assert.Equal(t, viaRemove.Lines(), viaUpdate.Lines())
}

func TestUpdateQuantitySets(t *testing.T) {
	c := New()
	c.Add(line(1, 100, 2))
	c.UpdateQuantity(1, 7)
	assert.Equal(t, 7, c.TotalItems())
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.Add(line(1, 100, 2))
	c.UpdateQuantity(99, 5)
	assert.Equal(t, 2, c.TotalItems())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(line(1, 100, 2))
	c.Remove(99)
	require.Len(t, c.Lines(), 1)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(line(1, 100, 2))
	c.Add(line(2, 50, 1))
	c.Clear()

	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestTotals(t *testing.T) {
	c := New()
	c.Add(line(1, 1000, 2))
	c.Add(line(2, 500, 1))

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 2500.0, c.TotalPrice())
}

// TestTotalPriceInvariant drives the reducer with random operation sequences
// and checks its totals against a plain map model after every step.
func TestTotalPriceInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 100; run++ {
		c := New()
		model := map[int]Line{}

		for op := 0; op < 200; op++ {
			productID := rng.Intn(8) + 1
			price := float64(rng.Intn(5000)) + 0.5

			switch rng.Intn(4) {
			case 0:
				qty := rng.Intn(5) + 1
				if existing, ok := model[productID]; ok {
					existing.Quantity += qty
					model[productID] = existing
					c.Add(Line{ProductID: productID, Price: existing.Price, Quantity: qty})
				} else {
					model[productID] = Line{ProductID: productID, Price: price, Quantity: qty}
					c.Add(Line{ProductID: productID, Price: price, Quantity: qty})
				}
			case 1:
				qty := rng.Intn(6)
				if _, ok := model[productID]; ok {
					if qty == 0 {
						delete(model, productID)
					} else {
						existing := model[productID]
						existing.Quantity = qty
						model[productID] = existing
					}
				}
				c.UpdateQuantity(productID, qty)
			case 2:
				delete(model, productID)
				c.Remove(productID)
			case 3:
				// Clear rarely, it resets the whole run.
				if rng.Intn(20) == 0 {
					model = map[int]Line{}
					c.Clear()
				}
			}

			wantItems := 0
			wantPrice := 0.0
			for _, l := range model {
				wantItems += l.Quantity
				wantPrice += l.Price * float64(l.Quantity)
			}
			require.Equal(t, wantItems, c.TotalItems(), "run %d op %d", run, op)
			require.InDelta(t, wantPrice, c.TotalPrice(), 1e-9, "run %d op %d", run, op)
			require.Len(t, c.Lines(), len(model), "run %d op %d", run, op)
		}
	}
}
