package collateral

import (
	"context"
	"time"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"

	"github.com/shopspring/decimal"
)

// Engine computes and applies collateralized borrows. It must only be
// invoked under the registry's mutual-exclusion gate.
type Engine struct {
	oracle  PriceOracle
	reserve ReserveSource
	cfg     Config
	now     func() time.Time
}

func NewEngine(oracle PriceOracle, reserve ReserveSource, cfg Config) *Engine {
	if oracle == nil {
		panic("oracle is required")
	}
	if reserve == nil {
		panic("reserve source is required")
	}
	if cfg.MaxLeverage == 0 {
		cfg.MaxLeverage = DefaultMaxLeverage
	}
	if cfg.MaxPriceAge == 0 {
		cfg.MaxPriceAge = DefaultMaxPriceAge
	}
	if cfg.RepayWindow == 0 {
		cfg.RepayWindow = DefaultRepayWindow
	}
	return &Engine{
		oracle:  oracle,
		reserve: reserve,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Borrow converts collateral into spendable balance at the current
// oracle price. Every precondition is checked before the first balance
// mutation, so a failed borrow leaves the card untouched.
func (e *Engine) Borrow(ctx context.Context, card *models.Card, collateralAmount decimal.Decimal, leverage int64) (BorrowResult, error) {
	if leverage <= 0 || leverage > e.cfg.MaxLeverage {
		return BorrowResult{}, domain.ErrLeverageOutOfRange
	}
	if !collateralAmount.IsPositive() {
		return BorrowResult{}, domain.ErrInvalidAmount
	}
	if !card.Active() {
		return BorrowResult{}, domain.ErrCardInactive
	}
	if card.Collateral.LessThan(collateralAmount) {
		return BorrowResult{}, domain.ErrInsufficientCollateral
	}

	price, err := e.currentPrice(ctx)
	if err != nil {
		return BorrowResult{}, err
	}

	collateralValue := collateralAmount.Mul(price).Truncate(PriceScale)
	borrowValue := collateralValue.Mul(decimal.NewFromInt(leverage))
	borrowAmount := borrowValue.DivRound(price, PriceScale)
	if !borrowAmount.IsPositive() {
		return BorrowResult{}, domain.ErrZeroBorrow
	}

	// The reserve is shared and mutated outside this engine; read it
	// fresh on every borrow, never from a cache.
	available, err := e.reserve.ReserveBalance(ctx)
	if err != nil {
		return BorrowResult{}, domain.Wrap(domain.ErrTransferFailed, err)
	}
	if available.LessThan(borrowAmount) {
		return BorrowResult{}, domain.ErrReserveShortfall
	}

	now := e.now().UTC()
	due := now.Add(e.cfg.RepayWindow)

	card.Spendable = card.Spendable.Add(borrowAmount)
	card.Debt = card.Debt.Add(borrowAmount)
	card.Collateral = card.Collateral.Sub(collateralAmount)
	card.LastBorrowAt = &now
	card.RepayDueAt = &due
	card.UpdatedAt = now

	return BorrowResult{
		Amount:          borrowAmount,
		CollateralValue: collateralValue,
		Price:           price,
		RepayDueAt:      due,
	}, nil
}

func (e *Engine) currentPrice(ctx context.Context) (decimal.Decimal, error) {
	reading, err := e.oracle.LatestPrice(ctx)
	if err != nil {
		return decimal.Zero, domain.Wrap(domain.ErrOracleUnset, err)
	}
	if !reading.Value.IsPositive() {
		return decimal.Zero, domain.ErrOracleUnset
	}
	if e.cfg.MaxPriceAge > 0 && e.now().Sub(reading.UpdatedAt) > e.cfg.MaxPriceAge {
		return decimal.Zero, domain.ErrOracleStale
	}
	return reading.Normalized(), nil
}
