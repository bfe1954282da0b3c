package collateral

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config tunes the engine. Zero values fall back to the package
// defaults in NewEngine.
type Config struct {
	MaxLeverage int64
	// MaxPriceAge rejects oracle readings older than this. Zero keeps
	// the default; a negative value disables the staleness check.
	MaxPriceAge time.Duration
	RepayWindow time.Duration
}

// BorrowResult reports the balance deltas of a successful borrow.
type BorrowResult struct {
	Amount          decimal.Decimal `json:"amount"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	Price           decimal.Decimal `json:"price"`
	RepayDueAt      time.Time       `json:"repay_due_at"`
}
