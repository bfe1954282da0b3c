package cardgen

import "cardvault/internal/models"

// Preset overrides selected fields of a generated card at a specific
// index. Presets let seeded environments pin well-known card numbers
// and secrets without touching the generation algorithm.
type Preset struct {
	Index  uint64
	Number string
	CVV2   string
	PIN    string
	Holder string
	Status models.CardStatus
}

// ApplyPresets overlays presets onto a batch of generated cards, keyed
// by index relative to startIndex. Presets pointing outside the batch
// are ignored. Only non-zero preset fields are applied.
func ApplyPresets(cards []*models.Card, startIndex uint64, presets []Preset) {
	for _, p := range presets {
		if p.Index < startIndex {
			continue
		}
		off := p.Index - startIndex
		if off >= uint64(len(cards)) {
			continue
		}
		c := cards[off]
		if p.Number != "" {
			c.Number = p.Number
		}
		if p.CVV2 != "" {
			c.CVV2 = p.CVV2
		}
		if p.PIN != "" {
			c.PIN = p.PIN
		}
		if p.Holder != "" {
			c.Holder = p.Holder
		}
		if p.Status != "" {
			c.Status = p.Status
		}
	}
}
