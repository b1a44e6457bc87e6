package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/fatimaskitchen/storefront/internal/vouchers"
)

var hundred = decimal.NewFromInt(100)

// ApplyDiscount returns the subtotal after the voucher, floored at zero.
// It ignores MinimumOrder; redeeming callers gate on it before a voucher is
// ever handed to the cart.
func ApplyDiscount(subtotal decimal.Decimal, v *vouchers.Voucher) decimal.Decimal {
	if v == nil {
		return subtotal
	}

	var discounted decimal.Decimal
	switch v.Kind {
	case vouchers.KindPercentage:
		discounted = subtotal.Sub(subtotal.Mul(v.Value).Div(hundred))
	case vouchers.KindFixed:
		discounted = subtotal.Sub(v.Value)
	default:
		return subtotal
	}

	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}
