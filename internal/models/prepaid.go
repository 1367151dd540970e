package models

import (
	"time"
)

// PrepaidClient is a client credit recorded before any ticket is issued
// against it.
type PrepaidClient struct {
	ID          string        `json:"id" db:"id"`
	AgentID     string        `json:"agent_id" db:"agent_id"`
	AgentName   string        `json:"agent_name" db:"agent_name"`
	ClientName  string        `json:"client_name" db:"client_name"`
	Amount      float64       `json:"amount" db:"amount"`
	Method      PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	Notes       string        `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
