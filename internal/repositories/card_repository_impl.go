package repositories

import (
	"context"
	"fmt"

	"cardvault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db    *gorm.DB
	cache *CacheService
}

// NewCardRepository builds the Postgres-backed snapshot store. The
// cache is optional; when present, saved cards invalidate their cached
// read-side entries.
func NewCardRepository(db *gorm.DB, cache *CacheService) CardRepository {
	return &cardRepository{db: db, cache: cache}
}

func (r *cardRepository) SaveCards(ctx context.Context, cards ...*models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	snapshots := make([]CardSnapshot, len(cards))
	for i, c := range cards {
		snapshots[i] = snapshotFromCard(c)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}},
			UpdateAll: true,
		}).
		Create(&snapshots).Error
	if err != nil {
		return fmt.Errorf("saving card snapshots: %w", err)
	}

	if r.cache != nil {
		for _, c := range cards {
			r.cache.InvalidateCard(ctx, c.ID)
		}
	}
	return nil
}

func (r *cardRepository) LoadAll(ctx context.Context) ([]*models.Card, error) {
	var snapshots []CardSnapshot
	if err := r.db.WithContext(ctx).Order("card_id asc").Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("loading card snapshots: %w", err)
	}
	cards := make([]*models.Card, len(snapshots))
	for i, s := range snapshots {
		cards[i] = s.toCard()
	}
	return cards, nil
}
