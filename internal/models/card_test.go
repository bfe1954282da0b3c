package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_MaskedNumber(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "411111******1111"},
		{"41111111111", "411111*1111"},
		{"4111111111", "**********"},
		{"", ""},
	}
	for _, tt := range tests {
		c := &Card{Number: tt.number}
		assert.Equal(t, tt.want, c.MaskedNumber())
	}
}

func TestCard_Clone(t *testing.T) {
	at := time.Now()
	card := &Card{ID: 1, PIN: "1234", LastBorrowAt: &at}

	clone := card.Clone()
	assert.Equal(t, card, clone)

	// Pointer fields are deep-copied.
	later := at.Add(time.Hour)
	*clone.LastBorrowAt = later
	assert.Equal(t, at, *card.LastBorrowAt)
}

func TestCard_JSONHidesSecrets(t *testing.T) {
	card := &Card{
		Number:       "4111111111111111",
		SecurityCode: "123",
		CVV2:         "456",
		PaymentCode:  "12345678",
		PIN:          "9999",
		EscrowCode:   "654321",
	}

	raw, err := json.Marshal(card)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "123")
	assert.NotContains(t, string(raw), "9999")
	assert.NotContains(t, string(raw), "654321")
}
