package request

import (
	"fmt"
)

type CreateOrderRequest struct {
	CustomerName string  `json:"customer_name"` // @required
	Item         string  `json:"item"`          // @required
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

func (r *CreateOrderRequest) Validate() error {
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
	return nil
}
