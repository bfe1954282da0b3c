package repositories

import (
	"context"
	"time"

	"cardvault/internal/models"

	"github.com/shopspring/decimal"
)

// CardRepository persists point-in-time snapshots of card records. The
// ledger's in-memory collection is authoritative; the repository exists
// for restart recovery and offline inspection.
type CardRepository interface {
	SaveCards(ctx context.Context, cards ...*models.Card) error
	LoadAll(ctx context.Context) ([]*models.Card, error)
}

// CardSnapshot is the persisted form of one card. Card ids are assigned
// by the ledger, never by the database.
type CardSnapshot struct {
	CardID uint64 `gorm:"primarykey;autoIncrement:false"`

	Number       string `gorm:"not null;uniqueIndex"`
	Expiration   string `gorm:"not null"`
	ExpiresAt    time.Time
	SecurityCode string `gorm:"not null"`
	CVV2         string `gorm:"not null"`
	PaymentCode  string `gorm:"not null"`
	PIN          string `gorm:"not null"`
	Network      string `gorm:"not null"`
	Status       string `gorm:"not null"`
	Country      string
	Issuer       string
	BINRange     string
	Holder       string

	Collateral decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	Spendable  decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	Reserved   decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	Debt       decimal.Decimal `gorm:"type:decimal(38,18);not null"`

	LastBorrowAt *time.Time
	RepayDueAt   *time.Time
	EscrowCode   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func snapshotFromCard(c *models.Card) CardSnapshot {
	return CardSnapshot{
		CardID:       c.ID,
		Number:       c.Number,
		Expiration:   c.Expiration,
		ExpiresAt:    c.ExpiresAt,
		SecurityCode: c.SecurityCode,
		CVV2:         c.CVV2,
		PaymentCode:  c.PaymentCode,
		PIN:          c.PIN,
		Network:      string(c.Network),
		Status:       string(c.Status),
		Country:      c.Country,
		Issuer:       c.Issuer,
		BINRange:     c.BINRange,
		Holder:       c.Holder,
		Collateral:   c.Collateral,
		Spendable:    c.Spendable,
		Reserved:     c.Reserved,
		Debt:         c.Debt,
		LastBorrowAt: c.LastBorrowAt,
		RepayDueAt:   c.RepayDueAt,
		EscrowCode:   c.EscrowCode,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (s CardSnapshot) toCard() *models.Card {
	return &models.Card{
		ID:           s.CardID,
		Number:       s.Number,
		Expiration:   s.Expiration,
		ExpiresAt:    s.ExpiresAt,
		SecurityCode: s.SecurityCode,
		CVV2:         s.CVV2,
		PaymentCode:  s.PaymentCode,
		PIN:          s.PIN,
		Network:      models.CardNetwork(s.Network),
		Status:       models.CardStatus(s.Status),
		Country:      s.Country,
		Issuer:       s.Issuer,
		BINRange:     s.BINRange,
		Holder:       s.Holder,
		Collateral:   s.Collateral,
		Spendable:    s.Spendable,
		Reserved:     s.Reserved,
		Debt:         s.Debt,
		LastBorrowAt: s.LastBorrowAt,
		RepayDueAt:   s.RepayDueAt,
		EscrowCode:   s.EscrowCode,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
