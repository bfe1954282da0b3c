package ledger

import (
	"context"

	"cardvault/internal/models"
	"cardvault/internal/services/collateral"
	"cardvault/internal/services/escrow"

	"github.com/shopspring/decimal"
)

// Service is the registry's operation surface. All mutating calls are
// serialized by the gate and atomic: they either apply fully or leave
// no trace.
type Service interface {
	// Deposits, owner-agnostic but still gated.
	DepositReserve(ctx context.Context, req DepositReserveRequest) (*DepositResult, error)
	DepositNativeValue(ctx context.Context, req DepositNativeRequest) (*DepositResult, error)
	DepositCardCollateral(ctx context.Context, req CardDepositRequest) (*DepositResult, error)
	DepositCardSpendable(ctx context.Context, req CardDepositRequest) (*DepositResult, error)

	// Owner-only mutations.
	GenerateCards(ctx context.Context, req GenerateCardsRequest) (*GenerateCardsResult, error)
	Borrow(ctx context.Context, req BorrowRequest) (*collateral.BorrowResult, error)
	RequestSpend(ctx context.Context, req SpendRequest) (*escrow.SpendRequest, error)
	ConfirmSettlement(ctx context.Context, req ConfirmSettlementRequest) (*escrow.Settlement, error)
	TransferOwnership(ctx context.Context, req TransferOwnershipRequest) error

	// Read-only queries.
	GetCard(ctx context.Context, cardID uint64) (*models.Card, error)
	ListCards(ctx context.Context) []*models.Card
	Balances(ctx context.Context, cardID uint64) (*CardBalances, error)
	Owner() string
	ReserveBalance(ctx context.Context) (decimal.Decimal, error)
	NativeReserve() decimal.Decimal
}

// TokenLedger is the external value ledger holding the treasury
// reserve. A failed transfer aborts the enclosing ledger operation.
type TokenLedger interface {
	BalanceOf(ctx context.Context, account string) (decimal.Decimal, error)
	Transfer(ctx context.Context, to string, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, from, to string, amount decimal.Decimal) error
	Approve(ctx context.Context, spender string, amount decimal.Decimal) error
}

// CardStore persists card snapshots after committed mutations. The
// in-memory collection stays authoritative; snapshot failures are
// logged and reported through metrics, not surfaced to callers.
type CardStore interface {
	SaveCards(ctx context.Context, cards ...*models.Card) error
}

// EventEmitter receives the structured domain events produced by
// committed mutations.
type EventEmitter interface {
	Emit(event models.Event)
}
