package models

import (
	"time"
)

// Expense is an office outgoing recorded by an agent.
type Expense struct {
	ID         string        `json:"id" db:"id"`
	AgentID    string        `json:"agent_id" db:"agent_id"`
	Amount     float64       `json:"amount" db:"amount"`
	Method     PaymentMethod `json:"payment_method" db:"payment_method"`
	Commentary string        `json:"commentary,omitempty" db:"commentary"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// Consumption mirrors Expense but lives in its own table; the back office
// tracks the two categories separately.
type Consumption struct {
	ID         string        `json:"id" db:"id"`
	AgentID    string        `json:"agent_id" db:"agent_id"`
	Amount     float64       `json:"amount" db:"amount"`
	Method     PaymentMethod `json:"payment_method" db:"payment_method"`
	Commentary string        `json:"commentary,omitempty" db:"commentary"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}
