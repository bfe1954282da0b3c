package escrow

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentRail delivers settled funds to a merchant. Payout is assumed
// synchronous; an error aborts the enclosing settlement with no balance
// change.
type PaymentRail interface {
	Payout(ctx context.Context, merchant string, amount decimal.Decimal) error
}
