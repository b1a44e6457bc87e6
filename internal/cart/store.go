package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatimaskitchen/storefront/internal/vouchers"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

const DefaultSnapshotKey = "FATIMAS_KITCHEN_STATE"

// Caps keep every line total and the subtotal far from int64 overflow.
const (
	MaxUnitPrice int64 = 10_000_000
	MaxSubtotal  int64 = 1_000_000_000
)

const (
	OpAdd     = "add_item"
	OpRemove  = "remove_item"
	OpVoucher = "apply_voucher"
	OpClear   = "clear_cart"
)

// Recorder receives cart mutation and persistence outcomes.
type Recorder interface {
	IncMutation(op string)
	IncPersistFailure(op string)
}

type noopRecorder struct{}

func (noopRecorder) IncMutation(string)       {}
func (noopRecorder) IncPersistFailure(string) {}

// Options wires a Store to its collaborators. Snapshots may be nil, in which
// case the cart lives in memory only.
type Options struct {
	Key       string
	Snapshots SnapshotStore
	Logger    *logger.Logger
	Metrics   Recorder
}

// Store is the single owner of the cart state. Every mutation recomputes the
// derived totals and then writes a snapshot; a failed write is logged and the
// in-memory state stays authoritative.
type Store struct {
	mu        sync.Mutex
	state     State
	revision  uint64
	key       string
	snapshots SnapshotStore
	logg      *logger.Logger
	metrics   Recorder
}

// NewStore returns a store holding an empty cart.
func NewStore(opts Options) *Store {
	s := &Store{
		state:     emptyState(),
		key:       strings.TrimSpace(opts.Key),
		snapshots: opts.Snapshots,
		logg:      opts.Logger,
		metrics:   opts.Metrics,
	}
	if s.key == "" {
		s.key = DefaultSnapshotKey
	}
	if s.logg == nil {
		s.logg = logger.New(logger.Options{ServiceName: "cart", Output: io.Discard})
	}
	if s.metrics == nil {
		s.metrics = noopRecorder{}
	}
	return s
}

// FromSnapshot rehydrates a store from persisted bytes, falling back to an
// empty cart when the payload is corrupt.
func FromSnapshot(ctx context.Context, data []byte, opts Options) *Store {
	s := NewStore(opts)
	state, err := UnmarshalSnapshot(data)
	if err != nil {
		s.logg.Warn(s.logg.WithFields(s.ctx(ctx), map[string]any{"reason": err.Error()}), "cart.snapshot_discarded")
		return s
	}
	s.state = state
	return s
}

// Restore reads the snapshot saved under opts.Key once. A missing, unreadable
// or corrupt snapshot yields an empty cart.
func Restore(ctx context.Context, opts Options) *Store {
	if opts.Snapshots == nil {
		return NewStore(opts)
	}
	fresh := NewStore(opts)
	data, err := opts.Snapshots.Load(ctx, fresh.key)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		fresh.logg.Info(fresh.ctx(ctx), "cart.snapshot_missing")
		return fresh
	case err != nil:
		fresh.logg.Error(fresh.ctx(ctx), "cart.snapshot_load_failed", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot"))
		return fresh
	}
	restored := FromSnapshot(ctx, data, opts)
	restored.logg.Info(restored.logg.WithFields(restored.ctx(ctx), map[string]any{
		"items":          len(restored.state.Items),
		"total_quantity": restored.state.TotalQuantity,
	}), "cart.snapshot_restored")
	return restored
}

// Key returns the snapshot key this store persists under.
func (s *Store) Key() string {
	return s.key
}

// State returns a copy of the current cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Snapshot returns a copy of the current cart and its revision. The revision
// changes on every mutation.
func (s *Store) Snapshot() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone(), s.revision
}

// AddItem adds one unit of the candidate. An existing line keeps the unit
// price it was first added at.
func (s *Store) AddItem(ctx context.Context, c Candidate) error {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if c.UnitPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}
	if c.UnitPrice > MaxUnitPrice {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item price cannot exceed %d", MaxUnitPrice))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price := c.UnitPrice
	if idx := s.state.indexOf(c.ID); idx >= 0 {
		price = s.state.Items[idx].UnitPrice
	}
	if s.state.Subtotal+price > MaxSubtotal {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cart subtotal cannot exceed %d", MaxSubtotal)).
			WithDetails(map[string]any{"subtotal": s.state.Subtotal, "unit_price": price})
	}

	if idx := s.state.indexOf(c.ID); idx >= 0 {
		item := &s.state.Items[idx]
		if item.UnitPrice != c.UnitPrice {
			s.logg.Warn(s.logg.WithFields(s.ctx(ctx), map[string]any{
				"item_id":         c.ID,
				"line_unit_price": item.UnitPrice,
				"candidate_price": c.UnitPrice,
			}), "cart.add_price_mismatch")
		}
		item.Quantity++
		item.LineTotal += item.UnitPrice
	} else {
		s.state.Items = append(s.state.Items, LineItem{
			ID:        c.ID,
			Name:      c.Name,
			UnitPrice: c.UnitPrice,
			Quantity:  1,
			LineTotal: c.UnitPrice,
			ImageRef:  c.ImageRef,
		})
	}
	s.state.TotalQuantity++
	s.commit(ctx, OpAdd)
	return nil
}

// RemoveItem takes one unit of id out of the cart and reports whether
// anything changed. Unknown ids are ignored with a warning.
func (s *Store) RemoveItem(ctx context.Context, id string) bool {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.indexOf(id)
	if idx < 0 {
		s.logg.Warn(s.logg.WithFields(s.ctx(ctx), map[string]any{"item_id": id}), "cart.remove_unknown_item")
		return false
	}

	item := &s.state.Items[idx]
	if item.Quantity <= 1 {
		s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
	} else {
		item.Quantity--
		item.LineTotal -= item.UnitPrice
	}

	if s.state.TotalQuantity > 0 {
		s.state.TotalQuantity--
	} else {
		s.logg.Warn(s.logg.WithFields(s.ctx(ctx), map[string]any{"item_id": id}), "cart.total_quantity_underflow")
	}
	s.commit(ctx, OpRemove)
	return true
}

// ApplyVoucher attaches v and recomputes the final amount. It performs no
// eligibility checks; see ApplyVoucherIf.
func (s *Store) ApplyVoucher(ctx context.Context, v vouchers.Voucher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyVoucher(ctx, v)
}

// ApplyVoucherIf applies v only when gate accepts the current state. The gate
// runs under the store lock so the state it inspects is the one discounted.
func (s *Store) ApplyVoucherIf(ctx context.Context, v vouchers.Voucher, gate func(State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gate != nil {
		if err := gate(s.state.clone()); err != nil {
			return err
		}
	}
	s.applyVoucher(ctx, v)
	return nil
}

func (s *Store) applyVoucher(ctx context.Context, v vouchers.Voucher) {
	applied := v
	s.state.AppliedVoucher = &applied
	s.commit(s.logg.WithVoucherCode(s.ctx(ctx), v.Code), OpVoucher)
}

// ClearCart resets the cart to empty, dropping any voucher.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = emptyState()
	s.commit(ctx, OpClear)
}

// ClearIfRevision clears the cart only if no mutation happened since revision
// was observed.
func (s *Store) ClearIfRevision(ctx context.Context, revision uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision != revision {
		return false
	}
	s.state = emptyState()
	s.commit(ctx, OpClear)
	return true
}

// commit must be called with the lock held.
func (s *Store) commit(ctx context.Context, op string) {
	s.state.recompute()
	s.revision++
	s.metrics.IncMutation(op)
	s.persist(ctx, op)
}

func (s *Store) persist(ctx context.Context, op string) {
	if s.snapshots == nil {
		return
	}
	data, err := MarshalSnapshot(s.state)
	if err == nil {
		err = s.snapshots.Save(ctx, s.key, data)
	}
	if err != nil {
		s.metrics.IncPersistFailure(op)
		s.logg.Error(s.logg.WithField(s.ctx(ctx), "op", op), "cart.persist_failed", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart snapshot"))
		return
	}
	s.logg.Debug(s.logg.WithFields(s.ctx(ctx), map[string]any{"op": op, "bytes": len(data)}), "cart.persisted")
}

func (s *Store) ctx(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.logg.WithCartKey(ctx, s.key)
}
