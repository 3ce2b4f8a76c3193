package cart

import (
	"github.com/shopspring/decimal"
)

// Summary is what the presentation layer renders at checkout, WhatsApp
// message included: the priced lines plus the location-dependent final
// total.
type Summary struct {
	Lines       []Line
	Location    string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Checkout derives the order summary for a delivery location. The cart is
// left untouched; callers Clear it after the order is accepted.
func (c *Cart) Checkout(location string) Summary {
	subtotal := c.Subtotal()
	tax := c.Tax()
	fee := c.config.DeliveryFee(location)

	return Summary{
		Lines:       c.Lines(),
		Location:    location,
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee),
	}
}

// OrderItemRequest is one line of the create-order payload sent to the
// server, which re-resolves prices on its own.
type OrderItemRequest struct {
	MenuItemID int64  `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Size       string `json:"size,omitempty"`
}

// ToOrderItems converts the cart lines into the create-order payload.
func (c *Cart) ToOrderItems() []OrderItemRequest {
	items := make([]OrderItemRequest, 0, len(c.lines))
	for i := range c.lines {
		line := &c.lines[i]
		items = append(items, OrderItemRequest{
			MenuItemID: line.MenuItem.ID,
			Quantity:   line.Quantity,
			Size:       line.SelectedSize.String(),
		})
	}
	return items
}
