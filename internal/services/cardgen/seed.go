package cardgen

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Seed is the 256-bit value driving card generation. Given the same
// seed and index the factory is fully deterministic.
type Seed [32]byte

// NewSeed derives a fresh seed from the host entropy source mixed with
// the current time, the card index and the host identity. The mix is
// hashed so a weak entropy source still yields a well-spread seed.
func NewSeed(index uint64) (Seed, error) {
	var buf [48]byte
	if _, err := rand.Read(buf[:32]); err != nil {
		return Seed{}, fmt.Errorf("reading entropy: %w", err)
	}
	binary.BigEndian.PutUint64(buf[32:40], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(buf[40:48], index)

	h := sha256.New()
	h.Write(buf[:])
	host, _ := os.Hostname()
	h.Write([]byte(host))

	var s Seed
	copy(s[:], h.Sum(nil))
	return s, nil
}

// SeedFromHex parses a 64-character hex string into a seed, for
// reproducible fixtures and tests.
func SeedFromHex(s string) (Seed, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Seed{}, fmt.Errorf("decoding seed: %w", err)
	}
	if len(b) != len(Seed{}) {
		return Seed{}, fmt.Errorf("seed must be %d bytes, got %d", len(Seed{}), len(b))
	}
	var out Seed
	copy(out[:], b)
	return out, nil
}

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// variant selects the card network: the seed taken as a big-endian
// integer mod 2.
func (s Seed) variant() byte {
	return s[len(s)-1] & 1
}
