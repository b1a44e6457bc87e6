package cart

import (
	"github.com/shopspring/decimal"

	"github.com/fatimaskitchen/storefront/internal/pricing"
	"github.com/fatimaskitchen/storefront/internal/vouchers"
)

// Candidate is what the menu hands the cart when a dish is added.
type Candidate struct {
	ID        string
	Name      string
	UnitPrice int64
	ImageRef  string
}

// LineItem is one distinct dish in the cart. LineTotal always equals
// UnitPrice * Quantity once a mutation settles.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
	ImageRef  string `json:"imageRef"`
}

// State is the cart value object. It doubles as the persisted snapshot shape.
type State struct {
	Items          []LineItem        `json:"items"`
	TotalQuantity  int               `json:"totalQuantity"`
	Subtotal       int64             `json:"subtotal"`
	AppliedVoucher *vouchers.Voucher `json:"appliedVoucher"`
	FinalAmount    decimal.Decimal   `json:"finalAmount"`
}

func emptyState() State {
	return State{Items: []LineItem{}, FinalAmount: decimal.Zero}
}

// IsEmpty reports whether the cart holds no line items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Totals extracts the figures a bill is composed from.
func (s State) Totals() pricing.Totals {
	return pricing.Totals{
		Subtotal:       s.Subtotal,
		FinalAmount:    s.FinalAmount,
		VoucherApplied: s.AppliedVoucher != nil,
	}
}

// Bill composes the checkout breakdown for this state.
func (s State) Bill(taxRate, deliveryFee decimal.Decimal) pricing.Bill {
	return pricing.ComposeBill(s.Totals(), taxRate, deliveryFee)
}

// Equal compares two states field for field, decimals numerically.
func (s State) Equal(other State) bool {
	if len(s.Items) != len(other.Items) ||
		s.TotalQuantity != other.TotalQuantity ||
		s.Subtotal != other.Subtotal ||
		!s.FinalAmount.Equal(other.FinalAmount) {
		return false
	}
	for i := range s.Items {
		if s.Items[i] != other.Items[i] {
			return false
		}
	}
	switch {
	case s.AppliedVoucher == nil && other.AppliedVoucher == nil:
		return true
	case s.AppliedVoucher == nil || other.AppliedVoucher == nil:
		return false
	}
	return s.AppliedVoucher.Equal(*other.AppliedVoucher)
}

func (s State) clone() State {
	out := s
	out.Items = make([]LineItem, len(s.Items))
	copy(out.Items, s.Items)
	if s.AppliedVoucher != nil {
		v := *s.AppliedVoucher
		out.AppliedVoucher = &v
	}
	return out
}

func (s State) indexOf(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// recompute rebuilds Subtotal from the line items and FinalAmount from the
// applied voucher. TotalQuantity is maintained by the mutations themselves.
func (s *State) recompute() {
	var subtotal int64
	for _, item := range s.Items {
		subtotal += item.LineTotal
	}
	s.Subtotal = subtotal
	s.FinalAmount = pricing.ApplyDiscount(decimal.NewFromInt(subtotal), s.AppliedVoucher)
}
