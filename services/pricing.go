package services

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknownNeighborhood is returned by DeliveryFee only when the store policy
// rejects unlisted neighborhoods. The default policy charges no fee instead.
var ErrUnknownNeighborhood = errors.New("neighborhood is not served")

// PricedLine is one cart line with its unit price already resolved
// (base price plus option deltas).
type PricedLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal is the unit price of a configured item: base price plus the sum of
// the selected options' additional prices. No rounding happens here; amounts
// are rounded to 2 places at presentation time only.
func LineTotal(basePrice decimal.Decimal, optionPrices []decimal.Decimal) decimal.Decimal {
	total := basePrice
	for _, p := range optionPrices {
		total = total.Add(p)
	}
	return total
}

// CartSubtotal sums unit price times quantity over all lines.
func CartSubtotal(lines []PricedLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// DeliveryFee resolves the fee for an order. Pickup is always free regardless
// of any address content. For delivery, an unknown neighborhood yields zero
// fee unless rejectUnknown is set, in which case it is a validation error.
func DeliveryFee(pickup bool, neighborhoodFee decimal.Decimal, neighborhoodFound, rejectUnknown bool) (decimal.Decimal, error) {
	if pickup {
		return decimal.Zero, nil
	}
	if !neighborhoodFound {
		if rejectUnknown {
			return decimal.Zero, ErrUnknownNeighborhood
		}
		return decimal.Zero, nil
	}
	return neighborhoodFee, nil
}

// GrandTotal is subtotal plus delivery fee.
func GrandTotal(subtotal, fee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(fee)
}
