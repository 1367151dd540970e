package models

import (
	"time"
)

// PaymentMethod is the instrument a payment was received through.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodTerminal     PaymentMethod = "terminal"
	MethodVisa         PaymentMethod = "visa"
	MethodUzcard       PaymentMethod = "uzcard"
)

// ParsePaymentMethod maps an incoming instrument string to a known method.
// Unrecognized or empty values fall back to cash; the fallback is a documented
// default, not an error.
func ParsePaymentMethod(s string) PaymentMethod {
	switch PaymentMethod(s) {
	case MethodCash, MethodBankTransfer, MethodTerminal, MethodVisa, MethodUzcard:
		return PaymentMethod(s)
	default:
		return MethodCash
	}
}

var methodLabels = map[PaymentMethod]string{
	MethodCash:         "Наличные",
	MethodBankTransfer: "Банковский перевод",
	MethodTerminal:     "Терминал",
	MethodVisa:         "Visa",
	MethodUzcard:       "UzCard",
}

// Label returns the user-facing display name of the instrument.
func (m PaymentMethod) Label() string {
	if label, ok := methodLabels[m]; ok {
		return label
	}
	return methodLabels[MethodCash]
}

// PaymentStatus of a sellable item.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
)

// Payment is one immutable ledger row: money received against a ticket.
// Rows are only ever inserted; there is no update or delete path.
type Payment struct {
	ID          string        `json:"id" db:"id"`
	TicketID    string        `json:"ticket_id" db:"ticket_id"`
	Amount      float64       `json:"amount" db:"amount"` // UZS
	Method      PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
