package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	Item         string    `json:"item"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
