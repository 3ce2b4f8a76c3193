package cart

import (
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/shopspring/decimal"
)

// Line is one (menu item, size) grouping in the cart. The item is a
// snapshot taken at add time so the UI keeps showing the price the customer
// saw, even if the catalog changes underneath; the server re-resolves
// prices at checkout anyway.
type Line struct {
	MenuItem     menuitem.MenuItem
	Quantity     int
	SelectedSize menuitem.Size
}

// UnitPrice resolves the price one unit of this line sells for.
func (l *Line) UnitPrice() decimal.Decimal {
	return l.MenuItem.UnitPrice(l.SelectedSize)
}

// Cart holds a single customer's working set. One session owns exactly one
// Cart; it is not safe for concurrent use and is never persisted, so losing
// it on reload is accepted behavior.
//
// Mutating operations never fail: non-positive quantities become removals
// and unknown ids are no-ops.
type Cart struct {
	lines  []Line
	isOpen bool
	config Config
}

// New creates an empty cart with the given pricing config.
func New(config Config) *Cart {
	return &Cart{config: config}
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// AddItem adds one unit of the item. A line already holding the same
// (id, size) pair is incremented instead of duplicated.
func (c *Cart) AddItem(item menuitem.MenuItem, size menuitem.Size) {
	if !item.HasSizeOptions {
		size = ""
	}

	for i := range c.lines {
		if c.lines[i].MenuItem.ID == item.ID && c.lines[i].SelectedSize == size {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{MenuItem: item, Quantity: 1, SelectedSize: size})
}

// RemoveItem removes every line for the menu item id, size variants
// included. Removal is deliberately coarser than the add-merge key: the UI
// exposes one remove control per item row.
func (c *Cart) RemoveItem(menuItemID int64) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.MenuItem.ID != menuItemID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// UpdateQuantity sets the quantity of every line for the menu item id.
// Quantities at or below zero remove the line entirely; no zero-quantity
// line ever persists.
func (c *Cart) UpdateQuantity(menuItemID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(menuItemID)
		return
	}

	for i := range c.lines {
		if c.lines[i].MenuItem.ID == menuItemID {
			c.lines[i].Quantity = quantity
		}
	}
}

// Clear empties the cart; called after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Open marks the cart UI visible.
func (c *Cart) Open() { c.isOpen = true }

// Close marks the cart UI hidden.
func (c *Cart) Close() { c.isOpen = false }

// Toggle flips the cart UI visibility.
func (c *Cart) Toggle() { c.isOpen = !c.isOpen }

// IsOpen reports the cart UI visibility.
func (c *Cart) IsOpen() bool { return c.isOpen }

// Subtotal is the exact decimal sum of unit price times quantity over all
// lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.lines {
		line := &c.lines[i]
		total = total.Add(line.UnitPrice().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Tax applies the configured rate to the subtotal. The default config uses
// a zero rate: menu prices already include tax.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(c.config.TaxRate).Round(2)
}

// Total is subtotal plus tax. Delivery fees are layered on top by
// Checkout, not folded in here.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax())
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for i := range c.lines {
		n += c.lines[i].Quantity
	}
	return n
}
