package ledger

// Operation names used in metrics and event metadata.
const (
	OpDepositReserve        = "deposit_reserve"
	OpDepositNative         = "deposit_native"
	OpDepositCardCollateral = "deposit_card_collateral"
	OpDepositCardSpendable  = "deposit_card_spendable"
	OpGenerateCards         = "generate_cards"
	OpBorrow                = "borrow"
	OpRequestSpend          = "request_spend"
	OpConfirmSettlement     = "confirm_settlement"
	OpTransferOwnership     = "transfer_ownership"
)
