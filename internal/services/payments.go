package services

import (
	"math"

	"github.com/sayohat/backend/internal/models"
)

// statusTolerance absorbs display/float rounding: a ticket counts as paid
// when the collected total is within one currency unit of the price.
const statusTolerance = 1.0

// DerivePaymentStatus maps (price, paidAmount) to pending/paid. Overpayment
// still reports paid; there is no separate overpaid state.
func DerivePaymentStatus(price, paidAmount float64) models.PaymentStatus {
	if math.Abs(paidAmount-price) < statusTolerance {
		return models.StatusPaid
	}
	return models.StatusPending
}

// PaymentEntry is one normalized amount+instrument pair submitted to the
// reconciliation engine.
type PaymentEntry struct {
	Amount float64              `json:"amount" validate:"required,gt=0"`
	Method models.PaymentMethod `json:"payment_method"`
}

// PaymentFields mirrors the four instrument inputs of the payment form. The
// card field is recorded as a bank transfer and the transfer field as Visa,
// matching how the cashier form has always labeled them.
type PaymentFields struct {
	Cash     float64 `json:"cash" validate:"gte=0"`
	Card     float64 `json:"card" validate:"gte=0"`
	Terminal float64 `json:"terminal" validate:"gte=0"`
	Transfer float64 `json:"transfer" validate:"gte=0"`
}

// Entries normalizes the form fields into an ordered entry list: one entry
// per field that is currently > 0, zero fields emit nothing. Order is stable:
// cash, bank transfer, terminal, visa.
func (f PaymentFields) Entries() []PaymentEntry {
	entries := []PaymentEntry{}
	if f.Cash > 0 {
		entries = append(entries, PaymentEntry{Amount: f.Cash, Method: models.MethodCash})
	}
	if f.Card > 0 {
		entries = append(entries, PaymentEntry{Amount: f.Card, Method: models.MethodBankTransfer})
	}
	if f.Terminal > 0 {
		entries = append(entries, PaymentEntry{Amount: f.Terminal, Method: models.MethodTerminal})
	}
	if f.Transfer > 0 {
		entries = append(entries, PaymentEntry{Amount: f.Transfer, Method: models.MethodVisa})
	}
	return entries
}

// Total sums the four live fields.
func (f PaymentFields) Total() float64 {
	return f.Cash + f.Card + f.Terminal + f.Transfer
}

// PaymentBreakdown carries the display values the form recomputes on every
// field change.
type PaymentBreakdown struct {
	Entries       []PaymentEntry       `json:"entries"`
	ExistingTotal float64              `json:"existing_total"`
	EntryTotal    float64              `json:"entry_total"`
	Remaining     float64              `json:"remaining"`
	Status        models.PaymentStatus `json:"status"`
}

// BuildBreakdown derives the entry list and running totals for a ticket with
// the given price, previously recorded ledger rows and live field values.
// It never blocks on Remaining != 0; whether a partial total is acceptable is
// the caller's decision.
func BuildBreakdown(price float64, existing []models.Payment, f PaymentFields) PaymentBreakdown {
	existingTotal := 0.0
	for _, p := range existing {
		existingTotal += p.Amount
	}
	entryTotal := f.Total()
	return PaymentBreakdown{
		Entries:       f.Entries(),
		ExistingTotal: existingTotal,
		EntryTotal:    entryTotal,
		Remaining:     price - existingTotal - entryTotal,
		Status:        DerivePaymentStatus(price, existingTotal+entryTotal),
	}
}
