package order

import (
	"time"

	"github.com/ceibacafe/ordering/internal/service/models/orderitem"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
	"github.com/shopspring/decimal"
)

// Order represents a placed order. Total is a financial snapshot computed
// once at creation; later menu price edits never change it.
type Order struct {
	ID                    int64                  `json:"id"`
	RestaurantID          int64                  `json:"restaurantId"`
	Status                orderstatus.Status     `json:"status"`
	Total                 decimal.Decimal        `json:"total"`
	DeliveryAddress       string                 `json:"deliveryAddress"`
	EstimatedDeliveryTime string                 `json:"estimatedDeliveryTime"`
	IdempotencyKey        string                 `json:"-"`
	CreatedAt             time.Time              `json:"createdAt"`
	Restaurant            *restaurant.Restaurant `json:"restaurant,omitempty"`
	Items                 []orderitem.OrderItem  `json:"items"`
}
