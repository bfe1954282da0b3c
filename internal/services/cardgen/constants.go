package cardgen

// Per-field HKDF info strings. Each field gets its own constant so the
// derived streams are domain separated; the values themselves are
// arbitrary but must never change once cards are in circulation.
const (
	saltPAN      = "pan"
	saltCVV      = "cvv"
	saltCVV2     = "cvv2"
	saltCode     = "code"
	saltPIN      = "pin"
	saltExpMonth = "expm"
	saltExpYear  = "expy"
	saltEscrow   = "escrow"
)

// Field widths.
const (
	panLength         = 16
	cvvLength         = 3
	cvv2Length        = 3
	paymentCodeLength = 8
	pinLength         = 4
	escrowCodeLength  = 6
)

// Expiry window: month 01-12, year 26-34 (a fixed nine-year window).
const (
	expiryBaseYear  = 26
	expiryYearSpan  = 9
	expiryCentury   = 2000
	expiryMonthSpan = 12
)

// MaxBatchSize bounds the work of a single batch generation call.
const MaxBatchSize = 1000
