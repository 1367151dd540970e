package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected PaymentMethod
	}{
		{"cash", MethodCash},
		{"bank_transfer", MethodBankTransfer},
		{"terminal", MethodTerminal},
		{"visa", MethodVisa},
		{"uzcard", MethodUzcard},
		{"", MethodCash},
		{"bitcoin", MethodCash},
		{"CASH", MethodCash},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePaymentMethod(tt.input))
		})
	}
}

func TestPaymentMethod_Label(t *testing.T) {
	assert.Equal(t, "Наличные", MethodCash.Label())
	assert.Equal(t, "Банковский перевод", MethodBankTransfer.Label())
	assert.Equal(t, "Терминал", MethodTerminal.Label())
	assert.Equal(t, "Visa", MethodVisa.Label())
	assert.Equal(t, "UzCard", MethodUzcard.Label())

	// Unknown instruments display as cash, matching the parse fallback.
	assert.Equal(t, "Наличные", PaymentMethod("crypto").Label())
}
