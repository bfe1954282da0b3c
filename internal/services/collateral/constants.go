package collateral

import "time"

// PriceScale is the fixed decimal scale of all engine math. Prices and
// intermediate values are truncated to this many places.
const PriceScale int32 = 18

// Defaults applied by NewEngine for zero config values.
const (
	DefaultMaxLeverage = 10
	DefaultMaxPriceAge = time.Hour
	DefaultRepayWindow = 7 * 24 * time.Hour
)
