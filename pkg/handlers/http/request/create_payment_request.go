package request

import (
	"fmt"

	"github.com/google/uuid"
)

// CreatePaymentRequest carries raw card data on purpose: the service exists
// to show that card_number and cvv never appear in clear text in the logs.
// The cvv is used for authorization only and is never persisted.
type CreatePaymentRequest struct {
	OrderID    string  `json:"order_id"` // @required
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CardNumber string  `json:"card_number"` // @required
	CardHolder string  `json:"card_holder"`
	Cvv        string  `json:"cvv"`
}

func (r *CreatePaymentRequest) Validate() error {
	if r.OrderID == "" {
		return fmt.Errorf("order_id is required")
	}
	if _, err := uuid.Parse(r.OrderID); err != nil {
		return fmt.Errorf("order_id must be a valid UUID")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be a positive value")
	}
	if len(r.Currency) != 3 {
		return fmt.Errorf("currency must be a three letter code")
	}
	if r.CardNumber == "" {
		return fmt.Errorf("card_number is required")
	}
	if r.CardHolder == "" {
		return fmt.Errorf("card_holder is required")
	}
	if r.Cvv != "" && (len(r.Cvv) < 3 || len(r.Cvv) > 4) {
		return fmt.Errorf("cvv must be three or four digits")
	}
	return nil
}
