// Package cart holds the per-session shopping cart. It is a plain value
// type so it can live inside a gob-encoded cookie session; all state
// transitions happen synchronously in the request goroutine that owns the
// session, so no locking is needed.
package cart

import (
	"encoding/gob"

	"github.com/shopspring/decimal"
)

func init() {
	gob.Register(Cart{})
}

// Item is one cart line. Two lines are the same entry only when product,
// size and color all match; the same product in another size or color is a
// separate line.
type Item struct {
	ProductID int
	Name      string
	Image     string
	Price     decimal.Decimal
	Size      string
	Color     string
	Quantity  int
}

// Cart is an ordered list of items, insertion order preserved. At most one
// entry exists per (product, size, color) key.
type Cart struct {
	Items []Item
}

func (c *Cart) find(productID int, size, color string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return i
		}
	}
	return -1
}

// AddItem merges item into an existing entry with the same key, summing
// quantities, or appends it to the end. Quantity and size/color validity
// are the caller's responsibility.
func (c *Cart) AddItem(item Item) {
	if i := c.find(item.ProductID, item.Size, item.Color); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the matching entry. Absent key is a no-op.
func (c *Cart) RemoveItem(productID int, size, color string) {
	if i := c.find(productID, size, color); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the matching entry's quantity verbatim. Callers
// clamp to >= 1 before calling; the cart enforces no minimum.
func (c *Cart) UpdateQuantity(productID int, size, color string, quantity int) {
	if i := c.find(productID, size, color); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalPrice is the sum of price x quantity over all entries, recomputed
// on every call.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItems is the sum of quantities over all entries.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
