package collateral

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceOracle is the external price feed backing borrow valuations.
type PriceOracle interface {
	LatestPrice(ctx context.Context) (PriceReading, error)
}

// PriceReading is one oracle observation. Value is the raw reported
// number scaled by Decimals, e.g. 200000000000 with Decimals=8 for a
// price of 2000.
type PriceReading struct {
	Value     decimal.Decimal
	Decimals  int32
	UpdatedAt time.Time
}

// Normalized returns the price at the engine's 18-place scale.
func (r PriceReading) Normalized() decimal.Decimal {
	return r.Value.Shift(-r.Decimals).Truncate(PriceScale)
}

// ReserveSource reports the transferable value currently held for
// payouts. Implementations must read the backing ledger fresh on every
// call; the engine never caches reserve readings.
type ReserveSource interface {
	ReserveBalance(ctx context.Context) (decimal.Decimal, error)
}
