package pricing

import "github.com/shopspring/decimal"

// Totals is the slice of cart state a bill is composed from.
type Totals struct {
	Subtotal       int64
	FinalAmount    decimal.Decimal
	VoucherApplied bool
}

// Bill is the checkout breakdown shown in the cart drawer and on checkout.
type Bill struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Delivery   decimal.Decimal `json:"delivery"`
	Discount   decimal.Decimal `json:"discount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// ComposeBill projects cart totals into a payable bill. Tax is levied on the
// pre-discount subtotal; the discount is whatever the voucher took off.
func ComposeBill(totals Totals, taxRate, deliveryFee decimal.Decimal) Bill {
	subtotal := decimal.NewFromInt(totals.Subtotal)
	final := subtotal
	discount := decimal.Zero
	if totals.VoucherApplied {
		final = totals.FinalAmount
		discount = subtotal.Sub(final)
	}

	tax := subtotal.Mul(taxRate).Round(2)
	return Bill{
		Subtotal:   subtotal,
		Tax:        tax,
		Delivery:   deliveryFee,
		Discount:   discount,
		GrandTotal: final.Add(tax).Add(deliveryFee).Round(2),
	}
}
