package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/pricing"
	"github.com/fatimaskitchen/storefront/pkg/enums"
)

// Customer is who the order is delivered to.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
}

// Order is an accepted checkout. Items and Bill are frozen at placement time.
type Order struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	Customer      Customer            `json:"customer"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Items         []cart.LineItem     `json:"items"`
	VoucherCode   string              `json:"voucher_code,omitempty"`
	Bill          pricing.Bill        `json:"bill"`
	Status        enums.OrderStatus   `json:"status"`
	PlacedAt      time.Time           `json:"placed_at"`
	UpdatedAt     time.Time           `json:"updated_at"`

	seq int
}

// NewOrder carries what checkout knows when it records an order.
type NewOrder struct {
	Customer      Customer
	PaymentMethod enums.PaymentMethod
	Cart          cart.State
	Bill          pricing.Bill
}
