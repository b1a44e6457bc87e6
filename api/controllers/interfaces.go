package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/inventory"
	"github.com/fatimaskitchen/storefront/internal/menu"
	"github.com/fatimaskitchen/storefront/internal/orders"
	"github.com/fatimaskitchen/storefront/internal/reviews"
)

// MenuReader is the read side of the menu.
type MenuReader interface {
	Categories() []menu.Category
	Lookup(id string) (menu.Item, bool)
	Search(query string) []menu.Item
	Candidate(id string) (cart.Candidate, error)
}

// CartMutator is the subset of the cart store the HTTP layer drives.
type CartMutator interface {
	AddItem(ctx context.Context, c cart.Candidate) error
	RemoveItem(ctx context.Context, id string) bool
	ClearCart(ctx context.Context)
}

// OrderReader exposes the kitchen's order book.
type OrderReader interface {
	Get(ctx context.Context, id uuid.UUID) (orders.Order, error)
	List(ctx context.Context, params orders.ListParams) (orders.ListResult, error)
	Advance(ctx context.Context, id uuid.UUID) (orders.Order, error)
}

// Pinger is implemented by backing stores with a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReviewBoard is the guest review wall.
type ReviewBoard interface {
	List() []reviews.Review
	Summary() reviews.Summary
	Submit(ctx context.Context, in reviews.Submission) (reviews.Review, error)
}

// StockTracker exposes the kitchen's ingredient counters.
type StockTracker interface {
	List() []inventory.Item
	Adjust(ctx context.Context, id string, amount int) (inventory.Item, error)
}
