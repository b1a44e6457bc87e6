package enums

import "fmt"

// OrderStatus tracks an order through the kitchen.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDispatched OrderStatus = "dispatched"
)

// validOrderStatuses is ordered; each status advances to the next one.
var validOrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDispatched,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Next returns the status that follows s. The second result is false for
// the terminal status and for unknown values.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, candidate := range validOrderStatuses {
		if candidate == s && i+1 < len(validOrderStatuses) {
			return validOrderStatuses[i+1], true
		}
	}
	return "", false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
