package vouchers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects how a voucher value reduces the subtotal.
type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"

	// kindFlat is the legacy spelling of a fixed-amount voucher.
	kindFlat Kind = "flat"
)

// ParseKind normalizes a catalog kind, accepting the legacy "flat" alias.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindPercentage:
		return KindPercentage, nil
	case KindFixed, kindFlat:
		return KindFixed, nil
	}
	return "", fmt.Errorf("unknown voucher kind %q", raw)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseKind(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Voucher is an immutable promotional rule. MinimumOrder is enforced by
// whoever redeems the code, never by the discount math.
type Voucher struct {
	Code         string          `json:"code" validate:"required,max=32"`
	Kind         Kind            `json:"kind" validate:"required,oneof=percentage fixed"`
	Value        decimal.Decimal `json:"value"`
	MinimumOrder int64           `json:"minimumOrder" validate:"gte=0"`
	Description  string          `json:"description" validate:"max=120"`
}

// NormalizeCode canonicalizes user input the same way catalog keys are stored.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Eligible reports whether a subtotal clears the voucher's minimum-order gate.
func (v Voucher) Eligible(subtotal int64) bool {
	return subtotal >= v.MinimumOrder
}

// Equal compares vouchers by value, treating decimals numerically.
func (v Voucher) Equal(other Voucher) bool {
	return v.Code == other.Code &&
		v.Kind == other.Kind &&
		v.Value.Equal(other.Value) &&
		v.MinimumOrder == other.MinimumOrder &&
		v.Description == other.Description
}
