package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fatimaskitchen/storefront/internal/pricing"
	"github.com/fatimaskitchen/storefront/internal/vouchers"
)

var (
	// ErrSnapshotNotFound is returned by a SnapshotStore when nothing was saved under a key.
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	// ErrCorruptSnapshot marks snapshot bytes that cannot be trusted to rehydrate a cart.
	ErrCorruptSnapshot = errors.New("cart snapshot corrupt")
)

// SnapshotStore is durable storage for the serialized cart.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MarshalSnapshot serializes a state for persistence.
func MarshalSnapshot(state State) ([]byte, error) {
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	return json.Marshal(state)
}

// UnmarshalSnapshot decodes and verifies a persisted state. Any inconsistency
// between the stored totals and the line items is reported as ErrCorruptSnapshot.
func UnmarshalSnapshot(data []byte) (State, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return State{}, fmt.Errorf("%w: empty payload", ErrCorruptSnapshot)
	}

	var state State
	if err := json.Unmarshal(trimmed, &state); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	if err := verify(state); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return state, nil
}

func verify(state State) error {
	seen := make(map[string]struct{}, len(state.Items))
	var subtotal int64
	var quantity int
	for i, item := range state.Items {
		if item.ID == "" {
			return fmt.Errorf("item %d has no id", i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("item %s appears twice", item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Quantity < 1 {
			return fmt.Errorf("item %s has quantity %d", item.ID, item.Quantity)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %s has negative price", item.ID)
		}
		if item.LineTotal != item.UnitPrice*int64(item.Quantity) {
			return fmt.Errorf("item %s line total %d != %d x %d", item.ID, item.LineTotal, item.UnitPrice, item.Quantity)
		}
		subtotal += item.LineTotal
		quantity += item.Quantity
	}
	if state.Subtotal != subtotal {
		return fmt.Errorf("subtotal %d != sum of lines %d", state.Subtotal, subtotal)
	}
	if state.TotalQuantity != quantity {
		return fmt.Errorf("total quantity %d != sum of lines %d", state.TotalQuantity, quantity)
	}
	if v := state.AppliedVoucher; v != nil {
		if v.Code == "" {
			return errors.New("applied voucher has no code")
		}
		if v.Kind != vouchers.KindPercentage && v.Kind != vouchers.KindFixed {
			return fmt.Errorf("applied voucher kind %q unknown", v.Kind)
		}
	}
	want := pricing.ApplyDiscount(decimal.NewFromInt(state.Subtotal), state.AppliedVoucher)
	if !state.FinalAmount.Equal(want) {
		return fmt.Errorf("final amount %s != %s", state.FinalAmount, want)
	}
	return nil
}
