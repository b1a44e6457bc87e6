package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/pkg/enums"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/pagination"
)

const firstOrderNumber = 1001

// Book is the in-process order log. Orders live only as long as the process.
type Book struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order
	next   int
	now    func() time.Time
}

func NewBook() *Book {
	return &Book{
		orders: make(map[uuid.UUID]*Order),
		next:   firstOrderNumber,
		now:    time.Now,
	}
}

// Create records a new order in status new.
func (b *Book) Create(ctx context.Context, in NewOrder) (Order, error) {
	if in.Cart.IsEmpty() {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	if !in.PaymentMethod.IsValid() {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", in.PaymentMethod))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now().UTC()
	order := &Order{
		ID:            uuid.New(),
		Number:        fmt.Sprintf("ORD-%d", b.next),
		seq:           b.next,
		Customer:      in.Customer,
		PaymentMethod: in.PaymentMethod,
		Items:         append([]cart.LineItem(nil), in.Cart.Items...),
		Bill:          in.Bill,
		Status:        enums.OrderStatusNew,
		PlacedAt:      now,
		UpdatedAt:     now,
	}
	if v := in.Cart.AppliedVoucher; v != nil {
		order.VoucherCode = v.Code
	}
	b.next++
	b.orders[order.ID] = order
	return copyOrder(order), nil
}

// Get returns the order with id.
func (b *Book) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	order, ok := b.orders[id]
	if !ok {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return copyOrder(order), nil
}

// ListParams filters and pages the order list. An empty Status matches every order.
type ListParams struct {
	Status enums.OrderStatus
	Limit  int
	Cursor string
}

// ListResult is one page of orders and the cursor for the next page.
type ListResult struct {
	Orders []Order `json:"orders"`
	Cursor string  `json:"cursor"`
}

// List returns orders newest first, one page at a time.
func (b *Book) List(ctx context.Context, params ListParams) (ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return ListResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	b.mu.RLock()
	matched := make([]*Order, 0, len(b.orders))
	for _, order := range b.orders {
		if params.Status != "" && order.Status != params.Status {
			continue
		}
		if cursor != nil && int64(order.seq) >= cursor.Position {
			continue
		}
		matched = append(matched, order)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq > matched[j].seq })

	limit := pagination.NormalizeLimit(params.Limit)
	if window := pagination.LimitWithBuffer(params.Limit); len(matched) > window {
		matched = matched[:window]
	}
	result := ListResult{Orders: make([]Order, 0, limit)}
	if len(matched) > limit {
		last := matched[limit-1]
		result.Cursor = pagination.EncodeCursor(pagination.Cursor{Position: int64(last.seq), ID: last.ID})
		matched = matched[:limit]
	}
	for _, order := range matched {
		result.Orders = append(result.Orders, copyOrder(order))
	}
	b.mu.RUnlock()
	return result, nil
}

// Advance moves the order one step along new, preparing, ready, dispatched.
func (b *Book) Advance(ctx context.Context, id uuid.UUID) (Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := b.orders[id]
	if !ok {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	next, ok := order.Status.Next()
	if !ok {
		return Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order %s is already %s", order.Number, order.Status)).
			WithDetails(map[string]any{"status": order.Status})
	}
	order.Status = next
	order.UpdatedAt = b.now().UTC()
	return copyOrder(order), nil
}

func copyOrder(o *Order) Order {
	out := *o
	out.Items = append([]cart.LineItem(nil), o.Items...)
	return out
}
