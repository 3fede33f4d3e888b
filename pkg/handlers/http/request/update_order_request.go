package request

import (
	"fmt"

	"github.com/VaultPoint/LedgerShield/pkg/domain/order"
)

var allowedOrderStatuses = map[string]struct{}{
	order.StatusPending:   {},
	order.StatusShipped:   {},
	order.StatusCancelled: {},
}

// UpdateOrderRequest replaces every mutable field of an order. Partial
// updates are not supported.
type UpdateOrderRequest struct {
	CustomerName string  `json:"customer_name"` // @required
	Item         string  `json:"item"`          // @required
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Status       string  `json:"status"` // @required
}

func (r *UpdateOrderRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if r.Item == "" {
		return fmt.Errorf("item is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be a positive value")
	}
	if r.UnitPrice < 0 {
		return fmt.Errorf("unit_price cannot be negative")
	}
	if _, ok := allowedOrderStatuses[r.Status]; !ok {
		return fmt.Errorf("status must be one of 'pending', 'shipped' or 'cancelled'")
	}
	return nil
}
