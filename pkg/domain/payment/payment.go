package payment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCaptured = "captured"
	StatusRefunded = "refunded"
)

// Payment deliberately echoes the card number it was created with: the
// service demonstrates that sensitive material present in live payloads
// never reaches the structured logs.
type Payment struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    uuid.UUID  `json:"order_id"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	CardNumber string     `json:"card_number"`
	CardHolder string     `json:"card_holder"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`
}
