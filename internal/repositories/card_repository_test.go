package repositories

import (
	"testing"
	"time"

	"cardvault/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCardSnapshotRoundTrip(t *testing.T) {
	borrowAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	dueAt := borrowAt.Add(7 * 24 * time.Hour)

	card := &models.Card{
		ID:           3,
		Number:       "4111111111111111",
		Expiration:   "09/29",
		ExpiresAt:    time.Date(2029, 9, 30, 23, 59, 59, 0, time.UTC),
		SecurityCode: "123",
		CVV2:         "456",
		PaymentCode:  "12345678",
		PIN:          "9999",
		Network:      models.NetworkVisa,
		Status:       models.CardInactive,
		Country:      "US",
		Issuer:       "Vaulted Issuing Bank",
		BINRange:     "400000-499999",
		Holder:       "VAULT HOLDER 0003",
		Collateral:   decimal.RequireFromString("1.5"),
		Spendable:    decimal.RequireFromString("20.25"),
		Reserved:     decimal.RequireFromString("0.75"),
		Debt:         decimal.RequireFromString("30"),
		LastBorrowAt: &borrowAt,
		RepayDueAt:   &dueAt,
		EscrowCode:   "654321",
		CreatedAt:    borrowAt.Add(-time.Hour),
		UpdatedAt:    borrowAt,
	}

	restored := snapshotFromCard(card).toCard()
	assert.Equal(t, card, restored, "a card must survive the snapshot round trip unchanged")
}

func TestCardSnapshotZeroID(t *testing.T) {
	// Card id 0 is a valid id (the first card); the snapshot keeps it.
	card := &models.Card{ID: 0, Number: "4000000000000002", Status: models.CardActive}
	s := snapshotFromCard(card)
	assert.Equal(t, uint64(0), s.CardID)
	assert.Equal(t, uint64(0), s.toCard().ID)
}
