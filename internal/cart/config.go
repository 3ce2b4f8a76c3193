package cart

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config carries the pricing policy the cart derives totals with. Tax rate
// and delivery fee tiers are configuration, not formulas baked into the
// engine.
type Config struct {
	TaxRate decimal.Decimal
	// DeliveryFees maps a delivery location to its flat fee. Unknown
	// locations deliver free, same as the home zone.
	DeliveryFees map[string]decimal.Decimal
}

// DeliveryFee resolves the fee tier for a location.
func (c Config) DeliveryFee(location string) decimal.Decimal {
	if fee, ok := c.DeliveryFees[location]; ok {
		return fee
	}
	return decimal.Zero
}

// MustConfigFromViper reads cart pricing from the loaded config file.
func MustConfigFromViper() Config {
	rate := decimal.Zero
	if s := viper.GetString("cart.tax_rate"); s != "" {
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			panic("invalid cart.tax_rate: " + err.Error())
		}
		rate = parsed
	}

	fees := make(map[string]decimal.Decimal)
	for location, raw := range viper.GetStringMapString("cart.delivery_fees") {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			panic("invalid cart.delivery_fees." + location + ": " + err.Error())
		}
		fees[location] = fee
	}

	return Config{TaxRate: rate, DeliveryFees: fees}
}
