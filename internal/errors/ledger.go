package errors

// Validation failures: the request itself is malformed.
var (
	ErrInvalidCard = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_CARD",
		Message: "card id out of range",
	}
	ErrInvalidAmount = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_AMOUNT",
		Message: "amount must be positive",
	}
	ErrLeverageOutOfRange = &DomainError{
		Kind:    KindValidation,
		Code:    "LEVERAGE_OUT_OF_RANGE",
		Message: "leverage out of range",
	}
	ErrBatchTooLarge = &DomainError{
		Kind:    KindValidation,
		Code:    "BATCH_TOO_LARGE",
		Message: "card batch size exceeds limit",
	}
	ErrInvalidMerchant = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_MERCHANT",
		Message: "invalid merchant identity",
	}
	ErrInvalidOwner = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_OWNER",
		Message: "invalid owner identity",
	}
)

// Auth failures: the caller may not perform the operation.
var (
	ErrNotOwner = &DomainError{
		Kind:    KindAuth,
		Code:    "NOT_OWNER",
		Message: "caller is not the registry owner",
	}
	ErrPINMismatch = &DomainError{
		Kind:    KindAuth,
		Code:    "PIN_MISMATCH",
		Message: "card PIN does not match",
	}
	ErrCVV2Mismatch = &DomainError{
		Kind:    KindAuth,
		Code:    "CVV2_MISMATCH",
		Message: "card CVV2 does not match",
	}
)

// State failures: the ledger cannot satisfy the request right now.
var (
	ErrCardInactive = &DomainError{
		Kind:    KindState,
		Code:    "CARD_INACTIVE",
		Message: "card is not active",
	}
	ErrInsufficientCollateral = &DomainError{
		Kind:    KindState,
		Code:    "INSUFFICIENT_COLLATERAL",
		Message: "insufficient collateral balance",
	}
	ErrInsufficientSpendable = &DomainError{
		Kind:    KindState,
		Code:    "INSUFFICIENT_SPENDABLE",
		Message: "insufficient spendable balance",
	}
	ErrInsufficientReserved = &DomainError{
		Kind:    KindState,
		Code:    "INSUFFICIENT_RESERVED",
		Message: "insufficient reserved balance",
	}
	ErrOracleUnset = &DomainError{
		Kind:    KindState,
		Code:    "ORACLE_UNSET",
		Message: "price oracle is not configured or reports a non-positive price",
	}
	ErrOracleStale = &DomainError{
		Kind:    KindState,
		Code:    "ORACLE_STALE",
		Message: "price oracle reading is stale",
	}
	ErrReserveShortfall = &DomainError{
		Kind:    KindState,
		Code:    "RESERVE_SHORTFALL",
		Message: "treasury reserve cannot cover the borrow",
	}
	ErrOperationInFlight = &DomainError{
		Kind:    KindState,
		Code:    "OPERATION_IN_FLIGHT",
		Message: "another mutating operation is in flight",
	}
	ErrZeroBorrow = &DomainError{
		Kind:    KindState,
		Code:    "ZERO_BORROW",
		Message: "computed borrow amount is zero",
	}
)

// External failures: a collaborator rejected or failed the operation.
var (
	ErrTransferFailed = &DomainError{
		Kind:    KindExternal,
		Code:    "TRANSFER_FAILED",
		Message: "token transfer failed",
	}
	ErrPayoutFailed = &DomainError{
		Kind:    KindExternal,
		Code:    "PAYOUT_FAILED",
		Message: "payment rail payout failed",
	}
	ErrCardGeneration = &DomainError{
		Kind:    KindExternal,
		Code:    "CARD_GENERATION_FAILED",
		Message: "card generation failed",
	}
)
