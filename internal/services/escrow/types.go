package escrow

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendRequest reports a successful reservation.
type SpendRequest struct {
	CardID          uint64          `json:"card_id"`
	Amount          decimal.Decimal `json:"amount"`
	MerchantRef     string          `json:"merchant_ref"`
	CorrelationCode string          `json:"correlation_code"`
	RequestedAt     time.Time       `json:"requested_at"`
}

// Settlement reports the outcome of a confirmation.
type Settlement struct {
	CardID    uint64          `json:"card_id"`
	Amount    decimal.Decimal `json:"amount"`
	Merchant  string          `json:"merchant,omitempty"`
	Success   bool            `json:"success"`
	SettledAt time.Time       `json:"settled_at"`
}
