package restaurant

import (
	"github.com/shopspring/decimal"
)

// Restaurant represents a restaurant in the catalog.
type Restaurant struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Cuisine      string          `json:"cuisine"`
	Rating       decimal.Decimal `json:"rating"`
	DeliveryTime string          `json:"deliveryTime"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	IsOpen       bool            `json:"isOpen"`
}
