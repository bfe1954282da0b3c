package escrow

import (
	"context"
	"time"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"
	"cardvault/internal/services/cardgen"

	"github.com/shopspring/decimal"
)

// Engine applies the reserve and confirm phases to card balances. It
// must only be invoked under the registry's mutual-exclusion gate.
type Engine struct {
	rail PaymentRail
	now  func() time.Time
}

func NewEngine(rail PaymentRail) *Engine {
	if rail == nil {
		panic("payment rail is required")
	}
	return &Engine{rail: rail, now: time.Now}
}

// RequestSpend reserves spendable funds for a pending settlement and
// stamps the card with a fresh correlation code.
func (e *Engine) RequestSpend(card *models.Card, amount decimal.Decimal, merchantRef string) (SpendRequest, error) {
	if !amount.IsPositive() {
		return SpendRequest{}, domain.ErrInvalidAmount
	}
	if !card.Active() {
		return SpendRequest{}, domain.ErrCardInactive
	}
	if card.Spendable.LessThan(amount) {
		return SpendRequest{}, domain.ErrInsufficientSpendable
	}

	now := e.now().UTC()
	code := cardgen.CorrelationCode(card.ID, now)

	card.Spendable = card.Spendable.Sub(amount)
	card.Reserved = card.Reserved.Add(amount)
	card.EscrowCode = code
	card.UpdatedAt = now

	return SpendRequest{
		CardID:          card.ID,
		Amount:          amount,
		MerchantRef:     merchantRef,
		CorrelationCode: code,
		RequestedAt:     now,
	}, nil
}

// Confirm releases reserved funds. On success the amount is paid out to
// the merchant and leaves the card; on failure it returns to spendable.
// The payout runs before any balance changes, so a rail failure aborts
// the settlement with no effect.
func (e *Engine) Confirm(ctx context.Context, card *models.Card, amount decimal.Decimal, merchant string, success bool) (Settlement, error) {
	if !amount.IsPositive() {
		return Settlement{}, domain.ErrInvalidAmount
	}
	if card.Reserved.LessThan(amount) {
		return Settlement{}, domain.ErrInsufficientReserved
	}

	if success {
		if merchant == "" {
			return Settlement{}, domain.ErrInvalidMerchant
		}
		if err := e.rail.Payout(ctx, merchant, amount); err != nil {
			return Settlement{}, domain.Wrap(domain.ErrPayoutFailed, err)
		}
	}

	now := e.now().UTC()
	card.Reserved = card.Reserved.Sub(amount)
	if !success {
		card.Spendable = card.Spendable.Add(amount)
	}
	card.EscrowCode = ""
	card.UpdatedAt = now

	return Settlement{
		CardID:    card.ID,
		Amount:    amount,
		Merchant:  merchant,
		Success:   success,
		SettledAt: now,
	}, nil
}
