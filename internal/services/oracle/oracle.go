// Package oracle provides price-feed implementations for the collateral
// engine.
package oracle

import (
	"context"
	"errors"
	"sync"
	"time"

	"cardvault/internal/services/collateral"

	"github.com/shopspring/decimal"
)

// ErrNoPrice is returned before the first price has been published.
var ErrNoPrice = errors.New("no price published")

// Feed is an in-process price feed. An external poller publishes
// readings; the collateral engine consumes the latest one. The zero
// Feed has no price and fails LatestPrice until Publish is called.
type Feed struct {
	mu      sync.RWMutex
	reading collateral.PriceReading
	set     bool
}

func NewFeed() *Feed {
	return &Feed{}
}

// Publish replaces the latest reading.
func (f *Feed) Publish(value decimal.Decimal, decimals int32, updatedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reading = collateral.PriceReading{Value: value, Decimals: decimals, UpdatedAt: updatedAt}
	f.set = true
}

// LatestPrice implements collateral.PriceOracle.
func (f *Feed) LatestPrice(_ context.Context) (collateral.PriceReading, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.set {
		return collateral.PriceReading{}, ErrNoPrice
	}
	return f.reading, nil
}
