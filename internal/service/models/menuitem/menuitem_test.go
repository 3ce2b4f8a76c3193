package menuitem

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name string
		item MenuItem
		size Size
		want string
	}{
		{
			name: "flat priced item ignores size",
			item: MenuItem{Price: decimal.RequireFromString("16.99")},
			size: SizeBig,
			want: "16.99",
		},
		{
			name: "sized item regular",
			item: MenuItem{
				Price:          decimal.RequireFromString("18.99"),
				RegularPrice:   decPtr("18.99"),
				BigPrice:       decPtr("24.99"),
				HasSizeOptions: true,
			},
			size: SizeRegular,
			want: "18.99",
		},
		{
			name: "sized item big",
			item: MenuItem{
				Price:          decimal.RequireFromString("18.99"),
				RegularPrice:   decPtr("18.99"),
				BigPrice:       decPtr("24.99"),
				HasSizeOptions: true,
			},
			size: SizeBig,
			want: "24.99",
		},
		{
			name: "sized item defaults to regular when no size selected",
			item: MenuItem{
				Price:          decimal.RequireFromString("18.99"),
				RegularPrice:   decPtr("18.99"),
				BigPrice:       decPtr("24.99"),
				HasSizeOptions: true,
			},
			size: "",
			want: "18.99",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := testCase.item.UnitPrice(testCase.size)
			assert.True(t, decimal.RequireFromString(testCase.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize("regular")
	assert.NoError(t, err)
	assert.Equal(t, SizeRegular, got)

	got, err = ParseSize("big")
	assert.NoError(t, err)
	assert.Equal(t, SizeBig, got)

	_, err = ParseSize("medium")
	assert.ErrorIs(t, err, ErrInvalidSize)
}
