/*
Package cardgen generates synthetic prepaid-card records.

Generation is a pure function of a 256-bit seed and a numeric index:
the same inputs always produce the same card. Each card field is drawn
from its own HKDF-SHA256 stream keyed by the seed, with a distinct
per-field info string so that PIN, CVV, CVV2 and payment code derived
from one seed are not correlated. Card numbers carry a Luhn check digit
and validate against the standard mod-10 check.

Usage:

	seed, err := cardgen.NewSeed(index)
	card, err := factory.Generate(seed, index)

	cards, err := factory.GenerateBatch(startIndex, n)

A fixture layer (Preset, ApplyPresets) can override generated records at
specific indices for seeded environments; it sits on top of the factory
and is not part of the generation algorithm.
*/
package cardgen
