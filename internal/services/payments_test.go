package services

import (
	"testing"

	"github.com/sayohat/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		paidAmount float64
		expected   models.PaymentStatus
	}{
		{"exact payment", 1500, 1500, models.StatusPaid},
		{"no payment", 1500, 0, models.StatusPending},
		{"partial payment", 1000, 400, models.StatusPending},
		{"within tolerance below", 1000, 999.5, models.StatusPaid},
		{"within tolerance above", 1000, 1000.5, models.StatusPaid},
		{"exactly one unit short", 1000, 999, models.StatusPending},
		{"overpayment", 1000, 1200, models.StatusPaid},
		{"free ticket", 0, 0, models.StatusPaid},
		{"rounding residue", 1000, 999.9999, models.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DerivePaymentStatus(tt.price, tt.paidAmount))
		})
	}
}

func TestPaymentFields_Entries(t *testing.T) {
	t.Run("all fields filled keeps stable order", func(t *testing.T) {
		f := PaymentFields{Cash: 100, Card: 200, Terminal: 300, Transfer: 400}

		entries := f.Entries()

		assert.Len(t, entries, 4)
		assert.Equal(t, models.MethodCash, entries[0].Method)
		assert.Equal(t, models.MethodBankTransfer, entries[1].Method)
		assert.Equal(t, models.MethodTerminal, entries[2].Method)
		assert.Equal(t, models.MethodVisa, entries[3].Method)
		assert.Equal(t, 100.0, entries[0].Amount)
		assert.Equal(t, 400.0, entries[3].Amount)
	})

	t.Run("zero fields emit nothing", func(t *testing.T) {
		f := PaymentFields{Cash: 500, Transfer: 1000}

		entries := f.Entries()

		assert.Len(t, entries, 2)
		assert.Equal(t, models.MethodCash, entries[0].Method)
		assert.Equal(t, models.MethodVisa, entries[1].Method)
	})

	t.Run("all zero yields empty list", func(t *testing.T) {
		assert.Empty(t, PaymentFields{}.Entries())
	})

	t.Run("negative field emits nothing", func(t *testing.T) {
		f := PaymentFields{Cash: -50, Terminal: 100}

		entries := f.Entries()

		assert.Len(t, entries, 1)
		assert.Equal(t, models.MethodTerminal, entries[0].Method)
	})
}

func TestPaymentFields_Total(t *testing.T) {
	f := PaymentFields{Cash: 100, Card: 200, Terminal: 300, Transfer: 400}
	assert.Equal(t, 1000.0, f.Total())
	assert.Equal(t, 0.0, PaymentFields{}.Total())
}

func TestBuildBreakdown(t *testing.T) {
	t.Run("fresh ticket with partial entry", func(t *testing.T) {
		b := BuildBreakdown(1000, nil, PaymentFields{Cash: 400})

		assert.Equal(t, 0.0, b.ExistingTotal)
		assert.Equal(t, 400.0, b.EntryTotal)
		assert.Equal(t, 600.0, b.Remaining)
		assert.Equal(t, models.StatusPending, b.Status)
		assert.Len(t, b.Entries, 1)
	})

	t.Run("continuation reaching full payment", func(t *testing.T) {
		existing := []models.Payment{
			{Amount: 400, Method: models.MethodCash},
		}

		b := BuildBreakdown(1000, existing, PaymentFields{Transfer: 600})

		assert.Equal(t, 400.0, b.ExistingTotal)
		assert.Equal(t, 600.0, b.EntryTotal)
		assert.Equal(t, 0.0, b.Remaining)
		assert.Equal(t, models.StatusPaid, b.Status)
	})

	t.Run("entries mirror live fields only", func(t *testing.T) {
		existing := []models.Payment{
			{Amount: 200, Method: models.MethodTerminal},
		}

		b := BuildBreakdown(1500, existing, PaymentFields{Card: 300})

		assert.Len(t, b.Entries, 1)
		assert.Equal(t, models.MethodBankTransfer, b.Entries[0].Method)
	})

	t.Run("overpayment yields negative remaining and paid status", func(t *testing.T) {
		b := BuildBreakdown(1000, nil, PaymentFields{Cash: 1200})

		assert.Equal(t, -200.0, b.Remaining)
		assert.Equal(t, models.StatusPaid, b.Status)
	})
}
