package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/transfer"
)

// StripeRail pays merchants through Stripe transfers. The merchant
// identity is a connected Stripe account id.
type StripeRail struct {
	currency string
}

func NewStripeRail(apiKey, currency string) *StripeRail {
	stripe.Key = apiKey
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeRail{currency: currency}
}

// Payout implements escrow.PaymentRail. Amounts are converted to the
// currency's minor unit; sub-cent remainders are truncated.
func (r *StripeRail) Payout(_ context.Context, merchant string, amount decimal.Decimal) error {
	if merchant == "" {
		return fmt.Errorf("merchant identity is required")
	}
	cents := amount.Shift(2).IntPart()
	if cents <= 0 {
		return fmt.Errorf("amount %s is below the minimum transferable unit", amount)
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(cents),
		Currency:    stripe.String(r.currency),
		Destination: stripe.String(merchant),
	}
	if _, err := transfer.New(params); err != nil {
		return fmt.Errorf("stripe transfer to %s: %w", merchant, err)
	}
	return nil
}
