package cardgen

import "errors"

var (
	ErrUnknownNetwork = errors.New("no reference data for card network")
	ErrBatchTooLarge  = errors.New("batch size exceeds limit")
	ErrEmptyBatch     = errors.New("batch size must be positive")
)
