package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

type Status string

const (
	StatusLow    Status = "LOW"
	StatusStable Status = "STABLE"
)

// MaxAdjustment bounds a single stock change.
const MaxAdjustment = 10_000

// Item is a kitchen ingredient counter. Quantity never drops below zero.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	MinLimit int    `json:"min_limit"`
	Status   Status `json:"status"`
}

func statusFor(quantity, minLimit int) Status {
	if quantity <= minLimit {
		return StatusLow
	}
	return StatusStable
}

// Tracker holds toy stock counters in memory. Nothing here gates the menu
// or the cart.
type Tracker struct {
	mu    sync.RWMutex
	order []string
	items map[string]*Item
}

func NewTracker(seed []Item) (*Tracker, error) {
	t := &Tracker{items: make(map[string]*Item, len(seed))}
	for _, item := range seed {
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" || item.Quantity < 0 || item.MinLimit < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid stock item %q", item.ID))
		}
		if _, dup := t.items[item.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("duplicate stock item %s", item.ID))
		}
		item.Status = statusFor(item.Quantity, item.MinLimit)
		stored := item
		t.items[item.ID] = &stored
		t.order = append(t.order, item.ID)
	}
	return t, nil
}

// Default seeds the kitchen's tracked ingredients.
func Default() *Tracker {
	t, err := NewTracker([]Item{
		{ID: "I-001", Name: "Wagyu Beef Patties", Category: "MEAT", Quantity: 45, Unit: "kg", MinLimit: 10},
		{ID: "I-002", Name: "Organic Saffron", Category: "SPICES", Quantity: 2, Unit: "kg", MinLimit: 5},
		{ID: "I-003", Name: "Truffle Oil", Category: "OILS", Quantity: 12, Unit: "liters", MinLimit: 3},
		{ID: "I-004", Name: "Premium Basmati", Category: "GRAINS", Quantity: 120, Unit: "kg", MinLimit: 20},
	})
	if err != nil {
		panic(fmt.Sprintf("built-in inventory invalid: %v", err))
	}
	return t
}

// List returns every item in seed order.
func (t *Tracker) List() []Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Item, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.items[id])
	}
	return out
}

// Adjust adds amount (negative to consume) and recomputes the status.
func (t *Tracker) Adjust(ctx context.Context, id string, amount int) (Item, error) {
	if amount == 0 || amount > MaxAdjustment || amount < -MaxAdjustment {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("amount must be non-zero and within %d", MaxAdjustment)).
			WithDetails(map[string]any{"field": "amount"})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.items[strings.TrimSpace(id)]
	if !ok {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("stock item %s not found", id))
	}
	item.Quantity = max(0, item.Quantity+amount)
	item.Status = statusFor(item.Quantity, item.MinLimit)
	return *item, nil
}
