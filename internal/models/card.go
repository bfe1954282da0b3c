package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CardNetwork is the closed set of card networks the factory can issue.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "VISA"
	NetworkMastercard CardNetwork = "MASTERCARD"
)

// CardStatus is the card lifecycle marker. Cards are never deleted;
// status is the only activity flag the ledger consults.
type CardStatus string

const (
	CardActive   CardStatus = "active"
	CardInactive CardStatus = "inactive"
)

// Card is a synthetic prepaid card record. Cards live in an append-only
// collection; the ID is the card's index in that collection and is
// stable forever.
//
// Balance invariants, enforced by the ledger:
//   - all four balances are non-negative at all times
//   - Collateral only decreases via borrow and only increases via deposit
//   - Spendable decreases exactly when Reserved increases by the same
//     amount, and vice versa on refund
type Card struct {
	ID uint64 `gorm:"primarykey" json:"id"`

	Number       string      `gorm:"not null;uniqueIndex" json:"number"`
	Expiration   string      `gorm:"not null" json:"expiration"` // MM/YY display form
	ExpiresAt    time.Time   `json:"expires_at"`
	SecurityCode string      `gorm:"not null" json:"-"` // CVV
	CVV2         string      `gorm:"not null" json:"-"`
	PaymentCode  string      `gorm:"not null" json:"-"`
	PIN          string      `gorm:"not null" json:"-"`
	Network      CardNetwork `gorm:"not null" json:"network"`
	Status       CardStatus  `gorm:"default:'active'" json:"status"`
	Country      string      `json:"country"`
	Issuer       string      `json:"issuer"`
	BINRange     string      `json:"bin_range"`
	Holder       string      `json:"holder"`

	Collateral decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"collateral"`
	Spendable  decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"spendable"`
	Reserved   decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"reserved"`
	Debt       decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"debt"`

	LastBorrowAt *time.Time `json:"last_borrow_at,omitempty"`
	RepayDueAt   *time.Time `json:"repay_due_at,omitempty"`

	// EscrowCode is the correlation code of the in-flight settlement
	// request; cleared on settlement confirm.
	EscrowCode string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the card may be used by ledger operations.
func (c *Card) Active() bool {
	return c.Status == CardActive
}

// Clone returns a deep copy, used for all-or-nothing mutation staging
// and for before/after snapshots in tests.
func (c *Card) Clone() *Card {
	cp := *c
	if c.LastBorrowAt != nil {
		t := *c.LastBorrowAt
		cp.LastBorrowAt = &t
	}
	if c.RepayDueAt != nil {
		t := *c.RepayDueAt
		cp.RepayDueAt = &t
	}
	return &cp
}

// MaskedNumber returns the PAN with all but the first six and last four
// digits masked, for read endpoints and logs.
func (c *Card) MaskedNumber() string {
	n := len(c.Number)
	if n <= 10 {
		return strings.Repeat("*", n)
	}
	return c.Number[:6] + strings.Repeat("*", n-10) + c.Number[n-4:]
}
