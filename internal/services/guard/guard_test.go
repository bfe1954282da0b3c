package guard

import (
	"testing"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckPIN(t *testing.T) {
	card := &models.Card{PIN: "4821"}

	tests := []struct {
		name    string
		pin     string
		wantErr error
	}{
		{"matching pin", "4821", nil},
		{"wrong pin", "0000", domain.ErrPINMismatch},
		{"empty pin", "", domain.ErrPINMismatch},
		{"prefix only", "482", domain.ErrPINMismatch},
		{"suffix padded", "48210", domain.ErrPINMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPIN(card, tt.pin)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckCVV2(t *testing.T) {
	card := &models.Card{CVV2: "736"}

	assert.NoError(t, CheckCVV2(card, "736"))
	assert.ErrorIs(t, CheckCVV2(card, "737"), domain.ErrCVV2Mismatch)
	assert.ErrorIs(t, CheckCVV2(card, ""), domain.ErrCVV2Mismatch)
}

func TestChecksDoNotMutate(t *testing.T) {
	card := &models.Card{PIN: "1111", CVV2: "222"}
	before := card.Clone()

	_ = CheckPIN(card, "9999")
	_ = CheckCVV2(card, "999")

	assert.Equal(t, before, card)
}
