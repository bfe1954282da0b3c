// Package payment provides payment-rail adapters for settlement
// payouts: a token-ledger rail for on-ledger merchants and a Stripe
// rail for external ones.
package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// tokenTransferer is the slice of the token ledger the rail needs.
type tokenTransferer interface {
	Transfer(ctx context.Context, to string, amount decimal.Decimal) error
}

// TokenRail pays merchants by transferring tokens out of the treasury.
type TokenRail struct {
	tokens tokenTransferer
}

func NewTokenRail(tokens tokenTransferer) *TokenRail {
	if tokens == nil {
		panic("token ledger is required")
	}
	return &TokenRail{tokens: tokens}
}

// Payout implements escrow.PaymentRail.
func (r *TokenRail) Payout(ctx context.Context, merchant string, amount decimal.Decimal) error {
	if merchant == "" {
		return fmt.Errorf("merchant identity is required")
	}
	if err := r.tokens.Transfer(ctx, merchant, amount); err != nil {
		return fmt.Errorf("paying merchant %s: %w", merchant, err)
	}
	return nil
}
