package collateral

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	reading PriceReading
	err     error
}

func (o stubOracle) LatestPrice(context.Context) (PriceReading, error) {
	return o.reading, o.err
}

type stubReserve struct {
	balance decimal.Decimal
	err     error
}

func (r stubReserve) ReserveBalance(context.Context) (decimal.Decimal, error) {
	return r.balance, r.err
}

func activeCard(collateral string) *models.Card {
	return &models.Card{
		ID:         3,
		Status:     models.CardActive,
		Collateral: decimal.RequireFromString(collateral),
		Spendable:  decimal.Zero,
		Reserved:   decimal.Zero,
		Debt:       decimal.Zero,
	}
}

func freshPrice(value string, decimals int32) PriceReading {
	return PriceReading{
		Value:     decimal.RequireFromString(value),
		Decimals:  decimals,
		UpdatedAt: time.Now(),
	}
}

func TestEngine_Borrow(t *testing.T) {
	engine := NewEngine(
		stubOracle{reading: freshPrice("200000000000", 8)}, // price 2000
		stubReserve{balance: decimal.NewFromInt(1_000_000)},
		Config{MaxLeverage: 10},
	)

	card := activeCard("10")
	result, err := engine.Borrow(context.Background(), card, decimal.NewFromInt(10), 5)
	require.NoError(t, err)

	// 10 collateral at price 2000 with 5x leverage: value 20000, borrow
	// value 100000, borrow amount 100000 / 2000 = 50.
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(50)), "amount = %s", result.Amount)
	assert.True(t, result.CollateralValue.Equal(decimal.NewFromInt(20000)))
	assert.True(t, result.Price.Equal(decimal.NewFromInt(2000)))

	assert.True(t, card.Collateral.IsZero())
	assert.True(t, card.Spendable.Equal(decimal.NewFromInt(50)))
	assert.True(t, card.Debt.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, card.LastBorrowAt)
	require.NotNil(t, card.RepayDueAt)
	assert.Equal(t, card.LastBorrowAt.Add(DefaultRepayWindow), *card.RepayDueAt)
	assert.Equal(t, *card.RepayDueAt, result.RepayDueAt)
}

func TestEngine_Borrow_PartialCollateral(t *testing.T) {
	engine := NewEngine(
		stubOracle{reading: freshPrice("1.5", 0)},
		stubReserve{balance: decimal.NewFromInt(1000)},
		Config{},
	)

	card := activeCard("8")
	result, err := engine.Borrow(context.Background(), card, decimal.NewFromInt(3), 2)
	require.NoError(t, err)

	// 3 * 1.5 * 2 / 1.5 = 6, leaving 5 collateral behind.
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(6)))
	assert.True(t, card.Collateral.Equal(decimal.NewFromInt(5)))
	assert.True(t, card.Spendable.Equal(decimal.NewFromInt(6)))
	assert.True(t, card.Debt.Equal(decimal.NewFromInt(6)))
}

func TestEngine_Borrow_Failures(t *testing.T) {
	goodOracle := stubOracle{reading: freshPrice("2000", 0)}
	richReserve := stubReserve{balance: decimal.NewFromInt(1_000_000)}

	tests := []struct {
		name       string
		oracle     PriceOracle
		reserve    ReserveSource
		cfg        Config
		card       *models.Card
		collateral decimal.Decimal
		leverage   int64
		wantErr    error
	}{
		{
			name: "zero leverage", oracle: goodOracle, reserve: richReserve,
			card: activeCard("10"), collateral: decimal.NewFromInt(1), leverage: 0,
			wantErr: domain.ErrLeverageOutOfRange,
		},
		{
			name: "leverage above cap", oracle: goodOracle, reserve: richReserve,
			cfg:  Config{MaxLeverage: 5},
			card: activeCard("10"), collateral: decimal.NewFromInt(1), leverage: 6,
			wantErr: domain.ErrLeverageOutOfRange,
		},
		{
			name: "non-positive collateral amount", oracle: goodOracle, reserve: richReserve,
			card: activeCard("10"), collateral: decimal.Zero, leverage: 2,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "inactive card", oracle: goodOracle, reserve: richReserve,
			card: func() *models.Card {
				c := activeCard("10")
				c.Status = models.CardInactive
				return c
			}(),
			collateral: decimal.NewFromInt(1), leverage: 2,
			wantErr: domain.ErrCardInactive,
		},
		{
			name: "collateral balance too low", oracle: goodOracle, reserve: richReserve,
			card: activeCard("1"), collateral: decimal.NewFromInt(2), leverage: 2,
			wantErr: domain.ErrInsufficientCollateral,
		},
		{
			name: "oracle errors", oracle: stubOracle{err: errors.New("feed down")}, reserve: richReserve,
			card: activeCard("10"), collateral: decimal.NewFromInt(1), leverage: 2,
			wantErr: domain.ErrOracleUnset,
		},
		{
			name: "oracle reports zero price", oracle: stubOracle{reading: freshPrice("0", 0)}, reserve: richReserve,
			card: activeCard("10"), collateral: decimal.NewFromInt(1), leverage: 2,
			wantErr: domain.ErrOracleUnset,
		},
		{
			name: "reserve shortfall", oracle: goodOracle,
			reserve: stubReserve{balance: decimal.NewFromInt(1)},
			card:    activeCard("10"), collateral: decimal.NewFromInt(1), leverage: 2,
			wantErr: domain.ErrReserveShortfall,
		},
		{
			name: "reserve read fails", oracle: goodOracle,
			reserve: stubReserve{err: errors.New("ledger down")},
			card:    activeCard("10"), collateral: decimal.NewFromInt(1), leverage: 2,
			wantErr: domain.ErrTransferFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.oracle, tt.reserve, tt.cfg)
			before := tt.card.Clone()

			_, err := engine.Borrow(context.Background(), tt.card, tt.collateral, tt.leverage)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, tt.card, "failed borrow must not touch the card")
		})
	}
}

func TestEngine_Borrow_StalePrice(t *testing.T) {
	engine := NewEngine(
		stubOracle{reading: PriceReading{
			Value:     decimal.NewFromInt(2000),
			UpdatedAt: time.Now().Add(-2 * time.Hour),
		}},
		stubReserve{balance: decimal.NewFromInt(1000)},
		Config{MaxPriceAge: time.Hour},
	)

	card := activeCard("10")
	_, err := engine.Borrow(context.Background(), card, decimal.NewFromInt(1), 2)
	assert.ErrorIs(t, err, domain.ErrOracleStale)
}

func TestEngine_Borrow_DisabledStalenessCheck(t *testing.T) {
	engine := NewEngine(
		stubOracle{reading: PriceReading{
			Value:     decimal.NewFromInt(2000),
			UpdatedAt: time.Now().Add(-24 * time.Hour),
		}},
		stubReserve{balance: decimal.NewFromInt(1000)},
		Config{MaxPriceAge: -1},
	)

	card := activeCard("10")
	_, err := engine.Borrow(context.Background(), card, decimal.NewFromInt(1), 2)
	assert.NoError(t, err)
}

func TestPriceReading_Normalized(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals int32
		want     string
	}{
		{"chainlink style eight decimals", "200000000000", 8, "2000"},
		{"already scaled", "2000", 0, "2000"},
		{"fractional price", "150", 2, "1.5"},
		{"truncated past the scale", "1", 19, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PriceReading{Value: decimal.RequireFromString(tt.value), Decimals: tt.decimals}
			assert.True(t, r.Normalized().Equal(decimal.RequireFromString(tt.want)),
				"got %s", r.Normalized())
		})
	}
}
