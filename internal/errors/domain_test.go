package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	assert.ErrorIs(t, ErrPINMismatch, ErrPINMismatch)
	assert.NotErrorIs(t, ErrPINMismatch, ErrCVV2Mismatch)
	assert.NotErrorIs(t, ErrPINMismatch, errors.New("pin mismatch"))
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrTransferFailed, cause)

	assert.ErrorIs(t, err, ErrTransferFailed, "wrapped errors match their sentinel")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, ErrTransferFailed.Code, err.Code)

	// The sentinel itself stays untouched.
	assert.Nil(t, ErrTransferFailed.Err)
}

func TestKindGrouping(t *testing.T) {
	// Callers branch on kind; in particular, a generation failure is an
	// external fault, not a rejection of the caller's input.
	assert.Equal(t, KindExternal, ErrCardGeneration.Kind)
	assert.Equal(t, KindValidation, ErrInvalidAmount.Kind)
	assert.NotErrorIs(t, ErrCardGeneration, ErrInvalidAmount)
}

func TestSentinelTaxonomy(t *testing.T) {
	// Every sentinel carries a kind and a stable code.
	sentinels := []*DomainError{
		ErrInvalidCard, ErrInvalidAmount, ErrLeverageOutOfRange, ErrBatchTooLarge,
		ErrInvalidMerchant, ErrInvalidOwner,
		ErrNotOwner, ErrPINMismatch, ErrCVV2Mismatch,
		ErrCardInactive, ErrInsufficientCollateral, ErrInsufficientSpendable,
		ErrInsufficientReserved, ErrOracleUnset, ErrOracleStale,
		ErrReserveShortfall, ErrOperationInFlight, ErrZeroBorrow,
		ErrTransferFailed, ErrPayoutFailed, ErrCardGeneration,
	}

	codes := make(map[string]bool, len(sentinels))
	for _, s := range sentinels {
		assert.NotEmpty(t, s.Kind)
		assert.NotEmpty(t, s.Code)
		assert.NotEmpty(t, s.Message)
		assert.False(t, codes[s.Code], "duplicate code %s", s.Code)
		codes[s.Code] = true
	}
}
