package orderitem

import (
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/shopspring/decimal"
)

// OrderItem represents one line of an order. Price is the unit price at the
// moment the order was created, copied from the catalog and never touched
// again.
type OrderItem struct {
	ID         int64              `json:"id"`
	OrderID    int64              `json:"orderId"`
	MenuItemID int64              `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
	Price      decimal.Decimal    `json:"price"`
	MenuItem   *menuitem.MenuItem `json:"menuItem,omitempty"`
}
