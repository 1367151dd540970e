package models

import (
	"time"
)

// Ticket is a sellable unit: a flight/train ticket, tour package or insurance
// policy. Price is fixed at creation; PaidAmount accumulates through the
// payment ledger and Version guards concurrent reconciliation updates.
type Ticket struct {
	ID                 string        `json:"id" db:"id"`
	PassengerName      string        `json:"passenger_name" db:"passenger_name"`
	OriginCode         string        `json:"origin_code" db:"origin_code"`
	OriginCity         string        `json:"origin_city" db:"origin_city"`
	OriginCountry      string        `json:"origin_country" db:"origin_country"`
	DestinationCode    string        `json:"destination_code" db:"destination_code"`
	DestinationCity    string        `json:"destination_city" db:"destination_city"`
	DestinationCountry string        `json:"destination_country" db:"destination_country"`
	AirlineCode        string        `json:"airline_code" db:"airline_code"`
	AirlineName        string        `json:"airline_name" db:"airline_name"`
	TravelDate         *time.Time    `json:"travel_date" db:"travel_date"`
	Price              float64       `json:"price" db:"price"` // UZS
	BasePrice          float64       `json:"base_price" db:"base_price"`
	Fees               float64       `json:"fees" db:"fees"`
	PaidAmount         float64       `json:"paid_amount" db:"paid_amount"`
	PaymentStatus      PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentDate        *time.Time    `json:"payment_date" db:"payment_date"`
	ServiceType        string        `json:"service_type" db:"service_type"` // flight, train, tour, insurance, other
	Supplier           string        `json:"supplier" db:"supplier"`
	AgentID            string        `json:"agent_id" db:"agent_id"`
	AgentName          string        `json:"agent_name" db:"agent_name"`
	OrderNumber        string        `json:"order_number" db:"order_number"`
	ContactInfo        string        `json:"contact_info" db:"contact_info"`
	Comments           string        `json:"comments" db:"comments"`
	Version            int           `json:"-" db:"version"` // optimistic lock counter
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	Payments           []Payment     `json:"payments,omitempty"`
}

// Remaining is always derived, never stored.
func (t *Ticket) Remaining() float64 {
	return t.Price - t.PaidAmount
}
