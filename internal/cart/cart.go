// Package cart holds the shopping cart reducer: an ordered collection of
// line items keyed by product ID, with a pluggable persistence store.
package cart

// Line is one cart entry. Price is the unit price captured when the product
// was added.
type Line struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// Cart keeps lines in insertion order and never holds two lines for the same
// product. It is owned by a single session and is not safe for concurrent use.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges by product ID: an existing line gets its quantity incremented,
// otherwise a new line is appended.
func (c *Cart) Add(line Line) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// UpdateQuantity sets the quantity of an existing line. Zero or negative
// behaves as Remove. Stock clamping is the caller's concern, not the reducer's.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for productID; no-op if absent.
func (c *Cart) Remove(productID int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the lines in insertion order. The slice is a copy.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Quantity(productID int) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return c.lines[i].Quantity
		}
	}
	return 0
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.lines {
		total += c.lines[i].Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for i := range c.lines {
		total += c.lines[i].Price * float64(c.lines[i].Quantity)
	}
	return total
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
