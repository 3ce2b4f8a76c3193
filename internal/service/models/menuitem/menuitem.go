package menuitem

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Size is an item-level variant with its own price. Items either carry a
// flat price or a regular/big price pair, never both.
type Size string

const (
	SizeRegular Size = "regular"
	SizeBig     Size = "big"
)

var ErrInvalidSize = errors.New("invalid size")

func (s Size) String() string {
	return string(s)
}

// ParseSize parses a size string.
func ParseSize(s string) (Size, error) {
	switch s {
	case SizeRegular.String():
		return SizeRegular, nil
	case SizeBig.String():
		return SizeBig, nil
	default:
		return "", ErrInvalidSize
	}
}

// MenuItem represents a purchasable catalog entry. Read-only to the order
// flow; the admin surface owns its lifecycle.
type MenuItem struct {
	ID             int64            `json:"id"`
	RestaurantID   int64            `json:"restaurantId"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	RegularPrice   *decimal.Decimal `json:"regularPrice,omitempty"`
	BigPrice       *decimal.Decimal `json:"bigPrice,omitempty"`
	HasSizeOptions bool             `json:"hasSizeOptions"`
	Image          string           `json:"image"`
	Category       string           `json:"category"`
	IsAvailable    bool             `json:"isAvailable"`
}

// UnitPrice resolves the price a single unit of this item sells for. For
// sized items the flat price is ignored and the selected size decides; a
// missing selection falls back to regular.
func (m *MenuItem) UnitPrice(size Size) decimal.Decimal {
	if !m.HasSizeOptions {
		return m.Price
	}

	if size == SizeBig && m.BigPrice != nil {
		return *m.BigPrice
	}
	if m.RegularPrice != nil {
		return *m.RegularPrice
	}

	return m.Price
}
