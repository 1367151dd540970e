package models

import "time"

// Agent is a back-office user profile. Role is either "agent" or "admin".
type Agent struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Role           string    `json:"role" db:"role"`
	CommissionRate float64   `json:"commission_rate" db:"commission_rate"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	LastLogin      *time.Time `json:"last_login,omitempty" db:"last_login"`
}
