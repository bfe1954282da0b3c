package ledger

import (
	"time"

	"cardvault/internal/models"
	"cardvault/internal/services/collateral"
	"cardvault/internal/services/escrow"

	"github.com/shopspring/decimal"
)

// Config identifies the registry owner and the treasury account the
// token-ledger reserve lives on.
type Config struct {
	Owner           string
	TreasuryAccount string
	Collateral      collateral.Config
	// InitialCards seeds the collection at construction, typically
	// the snapshots loaded from the store on startup. Ids must equal
	// their slice index.
	InitialCards []*models.Card
}

// Dependencies collects the collaborators wired into the registry.
// Store, Emitter and Metrics are optional; nil values fall back to
// no-op implementations.
type Dependencies struct {
	Tokens  TokenLedger
	Oracle  collateral.PriceOracle
	Rail    escrow.PaymentRail
	Store   CardStore
	Emitter EventEmitter
	Metrics MetricsCollector
}

// DepositReserveRequest funds the treasury reserve from the caller's
// token account.
type DepositReserveRequest struct {
	Caller string          `json:"caller"`
	Amount decimal.Decimal `json:"amount"`
}

// DepositNativeRequest credits the native reserve counter directly.
type DepositNativeRequest struct {
	Caller string          `json:"caller"`
	Amount decimal.Decimal `json:"amount"`
}

// CardDepositRequest funds one card's collateral or spendable balance
// from the caller's token account.
type CardDepositRequest struct {
	Caller string          `json:"caller"`
	CardID uint64          `json:"card_id"`
	Amount decimal.Decimal `json:"amount"`
}

// DepositResult reports a committed deposit.
type DepositResult struct {
	Amount      decimal.Decimal `json:"amount"`
	DepositedAt time.Time       `json:"deposited_at"`
}

// GenerateCardsRequest appends a batch of freshly generated cards.
type GenerateCardsRequest struct {
	Caller string `json:"caller"`
	Count  int    `json:"count"`
}

// GenerateCardsResult reports the id range of the appended batch.
type GenerateCardsResult struct {
	FirstID uint64 `json:"first_id"`
	Count   int    `json:"count"`
}

// BorrowRequest converts card collateral into spendable balance.
type BorrowRequest struct {
	Caller     string          `json:"caller"`
	CardID     uint64          `json:"card_id"`
	Collateral decimal.Decimal `json:"collateral"`
	Leverage   int64           `json:"leverage"`
	CVV2       string          `json:"cvv2"`
}

// SpendRequest reserves spendable funds pending settlement.
type SpendRequest struct {
	Caller      string          `json:"caller"`
	CardID      uint64          `json:"card_id"`
	Amount      decimal.Decimal `json:"amount"`
	MerchantRef string          `json:"merchant_ref"`
	PIN         string          `json:"pin"`
	CVV2        string          `json:"cvv2"`
}

// ConfirmSettlementRequest releases reserved funds to the merchant or
// refunds them.
type ConfirmSettlementRequest struct {
	Caller   string          `json:"caller"`
	CardID   uint64          `json:"card_id"`
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant"`
	Success  bool            `json:"success"`
	CVV2     string          `json:"cvv2"`
}

// TransferOwnershipRequest hands the registry to a new owner.
type TransferOwnershipRequest struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"new_owner"`
}

// CardBalances is the read-side balance view of one card.
type CardBalances struct {
	CardID     uint64          `json:"card_id"`
	Collateral decimal.Decimal `json:"collateral"`
	Spendable  decimal.Decimal `json:"spendable"`
	Reserved   decimal.Decimal `json:"reserved"`
	Debt       decimal.Decimal `json:"debt"`
}
