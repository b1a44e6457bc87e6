package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/orders"
	"github.com/fatimaskitchen/storefront/internal/vouchers"
	"github.com/fatimaskitchen/storefront/pkg/enums"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

var (
	milkCake = cart.Candidate{ID: "dr_1", Name: "Saffron Milk Cake", UnitPrice: 300}
	platter  = cart.Candidate{ID: "sp_1", Name: "The Royal Mughal Platter", UnitPrice: 1000}
)

type fixture struct {
	svc     *service
	store   *cart.Store
	book    *orders.Book
	metrics *fakeRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := cart.NewStore(cart.Options{})
	book := orders.NewBook()
	metrics := &fakeRecorder{redemptions: map[string]int{}, checkouts: map[string]int{}}
	svc, err := NewService(store, vouchers.DefaultCatalog(), book, Settings{
		TaxRate:         decimal.RequireFromString("0.05"),
		DeliveryFee:     decimal.NewFromInt(150),
		MinimumOrder:    500,
		ProcessingDelay: 2500 * time.Millisecond,
	}, nil, metrics)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.wait = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return fixture{svc: impl, store: store, book: book, metrics: metrics}
}

func (f fixture) add(t *testing.T, c cart.Candidate, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.store.AddItem(context.Background(), c))
	}
}

func (f fixture) placed(t *testing.T) []orders.Order {
	t.Helper()
	page, err := f.book.List(context.Background(), orders.ListParams{})
	require.NoError(t, err)
	return page.Orders
}

func validDetails() Details {
	return Details{
		Name:          "Sana",
		Phone:         "+92 300 1234567",
		Email:         "sana@example.com",
		Address:       "Phase 7, Bahria Town",
		City:          "Rawalpindi",
		PaymentMethod: "cod",
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	store := cart.NewStore(cart.Options{})
	book := orders.NewBook()
	catalog := vouchers.DefaultCatalog()

	_, err := NewService(nil, catalog, book, Settings{}, nil, nil)
	assert.Error(t, err)
	_, err = NewService(store, nil, book, Settings{}, nil, nil)
	assert.Error(t, err)
	_, err = NewService(store, catalog, nil, Settings{}, nil, nil)
	assert.Error(t, err)
	_, err = NewService(store, catalog, book, Settings{MinimumOrder: -1}, nil, nil)
	assert.Error(t, err)
}

func TestRedeemRoyal10AndBill(t *testing.T) {
	f := newFixture(t)
	f.add(t, milkCake, 4)

	state, err := f.svc.RedeemVoucher(context.Background(), " royal10 ")
	require.NoError(t, err)
	require.NotNil(t, state.AppliedVoucher)
	assert.Equal(t, "ROYAL10", state.AppliedVoucher.Code)
	assert.True(t, state.FinalAmount.Equal(decimal.NewFromInt(1080)))

	_, bill := f.svc.Bill(context.Background())
	assert.True(t, bill.Subtotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, bill.Tax.Equal(decimal.NewFromInt(60)))
	assert.True(t, bill.Discount.Equal(decimal.NewFromInt(120)))
	assert.True(t, bill.Delivery.Equal(decimal.NewFromInt(150)))
	assert.True(t, bill.GrandTotal.Equal(decimal.NewFromInt(1290)), "got %s", bill.GrandTotal)
	assert.Equal(t, 1, f.metrics.redemptions[RedemptionApplied])
}

func TestRedeemFatima500RequiresMinimumOrder(t *testing.T) {
	f := newFixture(t)
	f.add(t, platter, 2)
	f.add(t, milkCake, 1)
	before := f.store.State()

	state, err := f.svc.RedeemVoucher(context.Background(), "FATIMA500")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidVoucher))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(3000), details["minimum_order"])
	assert.Equal(t, int64(2300), details["subtotal"])
	assert.True(t, before.Equal(state))
	assert.Nil(t, f.store.State().AppliedVoucher)
	assert.Equal(t, 1, f.metrics.redemptions[RedemptionMinimumNotMet])

	f.add(t, platter, 1)
	state, err = f.svc.RedeemVoucher(context.Background(), "fatima500")
	require.NoError(t, err)
	assert.Equal(t, int64(3300), state.Subtotal)
	assert.True(t, state.FinalAmount.Equal(decimal.NewFromInt(2800)))
}

func TestRedeemUnknownCode(t *testing.T) {
	f := newFixture(t)
	f.add(t, platter, 2)

	_, err := f.svc.RedeemVoucher(context.Background(), "FREEFOOD")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidVoucher))
	assert.Nil(t, f.store.State().AppliedVoucher)
	assert.Equal(t, 1, f.metrics.redemptions[RedemptionUnknownCode])

	_, err = f.svc.RedeemVoucher(context.Background(), "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidVoucher))
}

func TestFeaturedVouchers(t *testing.T) {
	f := newFixture(t)
	codes := []string{}
	for _, v := range f.svc.FeaturedVouchers() {
		codes = append(codes, v.Code)
	}
	assert.Equal(t, []string{"ROYAL10", "FIRSTORDER"}, codes)
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newFixture(t)
	f.add(t, milkCake, 4)
	_, err := f.svc.RedeemVoucher(context.Background(), "ROYAL10")
	require.NoError(t, err)

	var waited time.Duration
	f.svc.wait = func(ctx context.Context, d time.Duration) error {
		waited = d
		return nil
	}

	order, err := f.svc.PlaceOrder(context.Background(), validDetails())
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, waited)
	assert.Equal(t, enums.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, enums.OrderStatusNew, order.Status)
	assert.Equal(t, "ROYAL10", order.VoucherCode)
	assert.Equal(t, "Sana", order.Customer.Name)
	assert.True(t, order.Bill.GrandTotal.Equal(decimal.NewFromInt(1290)))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 4, order.Items[0].Quantity)

	assert.True(t, f.store.State().IsEmpty(), "cart must be cleared after checkout")
	assert.Len(t, f.placed(t), 1)
	assert.Equal(t, 1, f.metrics.placed)
	assert.Equal(t, 1, f.metrics.checkouts["placed"])
}

func TestPlaceOrderRejectsInvalidDetails(t *testing.T) {
	f := newFixture(t)
	f.add(t, platter, 1)

	details := validDetails()
	details.Name = ""
	details.Email = "not-an-email"
	details.PaymentMethod = "BITCOIN"

	_, err := f.svc.PlaceOrder(context.Background(), details)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	fields, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "payment_method")
	assert.False(t, f.store.State().IsEmpty())
	assert.Equal(t, 1, f.metrics.checkouts["rejected"])
}

func TestPlaceOrderRejectsEmptyOrSmallCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(context.Background(), validDetails())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	f.add(t, milkCake, 1)
	_, err = f.svc.PlaceOrder(context.Background(), validDetails())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	assert.Equal(t, 1, f.store.State().TotalQuantity)
	assert.Empty(t, f.placed(t))
}

func TestPlaceOrderRegatesAppliedVoucher(t *testing.T) {
	f := newFixture(t)
	f.add(t, milkCake, 4)
	_, err := f.svc.RedeemVoucher(context.Background(), "ROYAL10")
	require.NoError(t, err)

	require.True(t, f.store.RemoveItem(context.Background(), milkCake.ID))
	require.True(t, f.store.RemoveItem(context.Background(), milkCake.ID))
	state := f.store.State()
	require.NotNil(t, state.AppliedVoucher)
	assert.Equal(t, int64(600), state.Subtotal)
	assert.True(t, state.FinalAmount.Equal(decimal.NewFromInt(540)))

	_, err = f.svc.PlaceOrder(context.Background(), validDetails())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidVoucher))
	details, ok := pkgerrors.As(err).Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(1000), details["minimum_order"])
	assert.Equal(t, int64(600), details["subtotal"])
	assert.True(t, state.Equal(f.store.State()), "cart must be left for the customer to fix")
	assert.Empty(t, f.placed(t))
	assert.Equal(t, 1, f.metrics.checkouts["rejected"])
}

func TestPlaceOrderDetectsConcurrentCartChange(t *testing.T) {
	f := newFixture(t)
	f.add(t, platter, 1)

	f.svc.wait = func(ctx context.Context, d time.Duration) error {
		return f.store.AddItem(ctx, milkCake)
	}

	_, err := f.svc.PlaceOrder(context.Background(), validDetails())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
	assert.Equal(t, 2, f.store.State().TotalQuantity, "cart changed mid-checkout must survive")
	assert.Empty(t, f.placed(t))
}

func TestPlaceOrderHonoursCancellation(t *testing.T) {
	f := newFixture(t)
	f.add(t, platter, 1)
	f.svc.wait = sleep

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.PlaceOrder(ctx, validDetails())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.store.State().IsEmpty())
	assert.Equal(t, 1, f.metrics.checkouts["cancelled"])
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), 0))
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, sleep(ctx, time.Minute), context.DeadlineExceeded)
}

type fakeRecorder struct {
	redemptions map[string]int
	checkouts   map[string]int
	placed      int
}

func (f *fakeRecorder) IncRedemption(result string) { f.redemptions[result]++ }
func (f *fakeRecorder) IncOrderPlaced()             { f.placed++ }
func (f *fakeRecorder) ObserveCheckout(outcome string, _ time.Duration) {
	f.checkouts[outcome]++
}
