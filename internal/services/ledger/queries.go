package ledger

import (
	"context"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"

	"github.com/shopspring/decimal"
)

// GetCard returns a copy of one card record.
func (s *service) GetCard(_ context.Context, cardID uint64) (*models.Card, error) {
	var card *models.Card
	s.gate.read(func() {
		if cardID < uint64(len(s.cards)) {
			card = s.cards[cardID].Clone()
		}
	})
	if card == nil {
		return nil, domain.ErrInvalidCard
	}
	return card, nil
}

// ListCards returns copies of every card in id order.
func (s *service) ListCards(_ context.Context) []*models.Card {
	var out []*models.Card
	s.gate.read(func() {
		out = make([]*models.Card, len(s.cards))
		for i, c := range s.cards {
			out[i] = c.Clone()
		}
	})
	return out
}

// Balances returns the four balances of one card.
func (s *service) Balances(_ context.Context, cardID uint64) (*CardBalances, error) {
	var balances *CardBalances
	s.gate.read(func() {
		if cardID < uint64(len(s.cards)) {
			c := s.cards[cardID]
			balances = &CardBalances{
				CardID:     c.ID,
				Collateral: c.Collateral,
				Spendable:  c.Spendable,
				Reserved:   c.Reserved,
				Debt:       c.Debt,
			}
		}
	})
	if balances == nil {
		return nil, domain.ErrInvalidCard
	}
	return balances, nil
}

// Owner returns the current registry owner identity.
func (s *service) Owner() string {
	var owner string
	s.gate.read(func() {
		owner = s.owner
	})
	return owner
}

// ReserveBalance reads the treasury reserve fresh from the token ledger.
func (s *service) ReserveBalance(ctx context.Context) (decimal.Decimal, error) {
	return s.tokens.BalanceOf(ctx, s.cfg.TreasuryAccount)
}

// NativeReserve returns the native value counter.
func (s *service) NativeReserve() decimal.Decimal {
	var reserve decimal.Decimal
	s.gate.read(func() {
		reserve = s.nativeReserve
	})
	return reserve
}
