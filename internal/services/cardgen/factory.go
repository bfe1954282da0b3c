package cardgen

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"cardvault/internal/models"
	"cardvault/internal/refdata"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/hkdf"
)

// Factory produces fully formed card records from seeds.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Generate builds one card from a seed and its collection index. It is a
// pure function of its inputs.
func (f *Factory) Generate(seed Seed, index uint64) (*models.Card, error) {
	network := models.NetworkVisa
	prefix := "4"
	if seed.variant() == 1 {
		network = models.NetworkMastercard
		prefix = "5"
	}

	ref, ok := refdata.Lookup(network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}

	core := fieldDigits(seed[:], saltPAN, panLength-1-len(prefix))
	body := prefix + core
	pan := body + string(luhnCheckDigit(body))

	month := 1 + int(fieldUint64(seed[:], saltExpMonth)%expiryMonthSpan)
	year := expiryBaseYear + int(fieldUint64(seed[:], saltExpYear)%expiryYearSpan)
	// Last instant of the expiry month; time.Date normalizes month 13.
	expiresAt := time.Date(expiryCentury+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)

	now := time.Now().UTC()
	zero := decimal.Zero

	return &models.Card{
		Number:       pan,
		Expiration:   fmt.Sprintf("%02d/%02d", month, year),
		ExpiresAt:    expiresAt,
		SecurityCode: fieldDigits(seed[:], saltCVV, cvvLength),
		CVV2:         fieldDigits(seed[:], saltCVV2, cvv2Length),
		PaymentCode:  fieldDigits(seed[:], saltCode, paymentCodeLength),
		PIN:          fieldDigits(seed[:], saltPIN, pinLength),
		Network:      network,
		Status:       models.CardActive,
		Country:      ref.Country,
		Issuer:       ref.Issuer,
		BINRange:     ref.BINRange,
		Holder:       fmt.Sprintf("VAULT HOLDER %04d", index),
		Collateral:   zero,
		Spendable:    zero,
		Reserved:     zero,
		Debt:         zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GenerateBatch produces n cards with fresh seeds starting at
// startIndex, in index order. n is bounded by MaxBatchSize.
func (f *Factory) GenerateBatch(startIndex uint64, n int) ([]*models.Card, error) {
	if n <= 0 {
		return nil, ErrEmptyBatch
	}
	if n > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, n, MaxBatchSize)
	}

	cards := make([]*models.Card, 0, n)
	for i := 0; i < n; i++ {
		index := startIndex + uint64(i)
		seed, err := NewSeed(index)
		if err != nil {
			return nil, fmt.Errorf("seeding card %d: %w", index, err)
		}
		card, err := f.Generate(seed, index)
		if err != nil {
			return nil, fmt.Errorf("generating card %d: %w", index, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// CorrelationCode derives the settlement correlation code for a card,
// using the same per-field derivation as card generation, keyed by the
// card id and the request time.
func CorrelationCode(cardID uint64, at time.Time) string {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], cardID)
	binary.BigEndian.PutUint64(buf[8:], uint64(at.UnixNano()))
	key := sha256.Sum256(buf[:])
	return fieldDigits(key[:], saltEscrow, escrowCodeLength)
}

// fieldDigits draws n decimal digits from the field's HKDF stream.
// Rejection sampling (accept bytes below 250, mod 10) keeps the digit
// distribution unbiased.
func fieldDigits(key []byte, salt string, n int) string {
	const threshold = 250 // 256 - (256 % 10)

	r := hkdf.New(sha256.New, key, nil, []byte(salt))
	out := make([]byte, 0, n)
	buf := make([]byte, 32)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			// The HKDF stream yields far more than any field consumes;
			// exhausting it would be a programming error.
			panic(fmt.Sprintf("cardgen: hkdf stream exhausted: %v", err))
		}
		for _, b := range buf {
			if len(out) == n {
				break
			}
			if b < threshold {
				out = append(out, '0'+b%10)
			}
		}
	}
	return string(out)
}

// fieldUint64 draws one unsigned integer from the field's HKDF stream.
func fieldUint64(key []byte, salt string) uint64 {
	r := hkdf.New(sha256.New, key, nil, []byte(salt))
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		panic(fmt.Sprintf("cardgen: hkdf stream exhausted: %v", err))
	}
	return binary.BigEndian.Uint64(buf[:])
}
