package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cardvault/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	cardCachePrefix   = "card:"
	cardCacheDuration = 5 * time.Minute
)

// CacheService is the Redis read-side cache for card query endpoints.
// Mutation paths never read from it; the borrow reserve in particular
// is always read fresh from the token ledger.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if ttl == 0 {
		ttl = cardCacheDuration
	}
	return &CacheService{client: client, ttl: ttl}
}

func (s *CacheService) GetCard(ctx context.Context, cardID uint64) (*models.Card, error) {
	val, err := s.client.Get(ctx, cardKey(cardID)).Result()
	if err != nil {
		return nil, err
	}
	var card models.Card
	if err := json.Unmarshal([]byte(val), &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CacheService) SetCard(ctx context.Context, card *models.Card) error {
	data, err := json.Marshal(card)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cardKey(card.ID), data, s.ttl).Err()
}

func (s *CacheService) InvalidateCard(ctx context.Context, cardID uint64) error {
	return s.client.Del(ctx, cardKey(cardID)).Err()
}

// FlushAll clears the cache, used at startup so stale entries never
// survive a restart.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

func cardKey(cardID uint64) string {
	return fmt.Sprintf("%s%d", cardCachePrefix, cardID)
}
