package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/orders"
	"github.com/fatimaskitchen/storefront/internal/pricing"
	"github.com/fatimaskitchen/storefront/internal/vouchers"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

const (
	RedemptionApplied       = "applied"
	RedemptionUnknownCode   = "unknown_code"
	RedemptionMinimumNotMet = "minimum_not_met"
)

type cartStore interface {
	State() cart.State
	Snapshot() (cart.State, uint64)
	ApplyVoucherIf(ctx context.Context, v vouchers.Voucher, gate func(cart.State) error) error
	ClearIfRevision(ctx context.Context, revision uint64) bool
}

type voucherCatalog interface {
	Lookup(code string) (vouchers.Voucher, bool)
	Featured() []vouchers.Voucher
}

type orderBook interface {
	Create(ctx context.Context, in orders.NewOrder) (orders.Order, error)
}

// Recorder receives checkout outcomes.
type Recorder interface {
	IncRedemption(result string)
	IncOrderPlaced()
	ObserveCheckout(outcome string, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) IncRedemption(string)                  {}
func (noopRecorder) IncOrderPlaced()                       {}
func (noopRecorder) ObserveCheckout(string, time.Duration) {}

// Settings are the operational constants checkout applies.
type Settings struct {
	TaxRate         decimal.Decimal
	DeliveryFee     decimal.Decimal
	MinimumOrder    int64
	ProcessingDelay time.Duration
}

// Service redeems vouchers, prices the cart and turns it into an order.
type Service interface {
	RedeemVoucher(ctx context.Context, code string) (cart.State, error)
	FeaturedVouchers() []vouchers.Voucher
	Bill(ctx context.Context) (cart.State, pricing.Bill)
	PlaceOrder(ctx context.Context, details Details) (orders.Order, error)
}

type service struct {
	cart     cartStore
	catalog  voucherCatalog
	orders   orderBook
	settings Settings
	logg     *logger.Logger
	metrics  Recorder
	wait     func(ctx context.Context, d time.Duration) error
}

// NewService builds the checkout service.
func NewService(store cartStore, catalog voucherCatalog, book orderBook, settings Settings, logg *logger.Logger, metrics Recorder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("voucher catalog required")
	}
	if book == nil {
		return nil, fmt.Errorf("order book required")
	}
	if settings.TaxRate.IsNegative() || settings.DeliveryFee.IsNegative() || settings.MinimumOrder < 0 {
		return nil, fmt.Errorf("checkout settings must not be negative")
	}
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "checkout", Output: io.Discard})
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &service{
		cart:     store,
		catalog:  catalog,
		orders:   book,
		settings: settings,
		logg:     logg,
		metrics:  metrics,
		wait:     sleep,
	}, nil
}

// RedeemVoucher looks up code and applies it when the current subtotal meets
// its minimum order. The cart is unchanged on failure.
func (s *service) RedeemVoucher(ctx context.Context, code string) (cart.State, error) {
	normalized := vouchers.NormalizeCode(code)
	ctx = s.logg.WithVoucherCode(ctx, normalized)

	v, ok := s.catalog.Lookup(normalized)
	if !ok {
		s.metrics.IncRedemption(RedemptionUnknownCode)
		s.logg.Info(ctx, "checkout.voucher_unknown")
		return s.cart.State(), pkgerrors.New(pkgerrors.CodeInvalidVoucher, "invalid voucher code").
			WithDetails(map[string]any{"code": normalized})
	}

	err := s.cart.ApplyVoucherIf(ctx, v, func(current cart.State) error {
		return voucherGate(v, current.Subtotal)
	})
	if err != nil {
		s.metrics.IncRedemption(RedemptionMinimumNotMet)
		s.logg.Info(ctx, "checkout.voucher_minimum_not_met")
		return s.cart.State(), err
	}

	s.metrics.IncRedemption(RedemptionApplied)
	s.logg.Info(ctx, "checkout.voucher_applied")
	return s.cart.State(), nil
}

func (s *service) FeaturedVouchers() []vouchers.Voucher {
	return s.catalog.Featured()
}

// Bill prices the current cart.
func (s *service) Bill(ctx context.Context) (cart.State, pricing.Bill) {
	state := s.cart.State()
	return state, state.Bill(s.settings.TaxRate, s.settings.DeliveryFee)
}

// PlaceOrder validates details, simulates payment processing and records the
// order. The cart is cleared only if it did not change while processing.
func (s *service) PlaceOrder(ctx context.Context, details Details) (orders.Order, error) {
	started := time.Now()
	order, err := s.placeOrder(ctx, details)
	outcome := "placed"
	if err != nil {
		outcome = "rejected"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = "cancelled"
		}
	}
	s.metrics.ObserveCheckout(outcome, time.Since(started))
	return order, err
}

func (s *service) placeOrder(ctx context.Context, details Details) (orders.Order, error) {
	details = details.normalized()
	if err := details.validate(); err != nil {
		return orders.Order{}, err
	}
	method, err := details.paymentMethod()
	if err != nil {
		return orders.Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	state, revision := s.cart.Snapshot()
	if state.IsEmpty() {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	if state.Subtotal < s.settings.MinimumOrder {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("minimum order is %d", s.settings.MinimumOrder)).
			WithDetails(map[string]any{
				"minimum_order": s.settings.MinimumOrder,
				"subtotal":      state.Subtotal,
			})
	}
	// Removals after redemption can leave the applied voucher below its minimum.
	if v := state.AppliedVoucher; v != nil {
		if err := voucherGate(*v, state.Subtotal); err != nil {
			s.logg.Info(s.logg.WithVoucherCode(ctx, v.Code), "checkout.voucher_no_longer_eligible")
			return orders.Order{}, err
		}
	}
	bill := state.Bill(s.settings.TaxRate, s.settings.DeliveryFee)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"payment_method": method.String(),
		"grand_total":    bill.GrandTotal.String(),
	}), "checkout.processing")

	if err := s.wait(ctx, s.settings.ProcessingDelay); err != nil {
		s.logg.Warn(ctx, "checkout.processing_cancelled")
		return orders.Order{}, err
	}

	if !s.cart.ClearIfRevision(ctx, revision) {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeConflict, "cart changed during checkout, please review and retry")
	}

	order, err := s.orders.Create(ctx, orders.NewOrder{
		Customer:      details.customer(),
		PaymentMethod: method,
		Cart:          state,
		Bill:          bill,
	})
	if err != nil {
		s.logg.Error(ctx, "checkout.order_record_failed", err)
		return orders.Order{}, err
	}

	s.metrics.IncOrderPlaced()
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "checkout.order_placed")
	return order, nil
}

func voucherGate(v vouchers.Voucher, subtotal int64) error {
	if v.Eligible(subtotal) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeInvalidVoucher, fmt.Sprintf("minimum order of %d not met", v.MinimumOrder)).
		WithDetails(map[string]any{
			"code":          v.Code,
			"minimum_order": v.MinimumOrder,
			"subtotal":      subtotal,
		})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
