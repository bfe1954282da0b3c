// Command admin_seed provisions a deployment with an initial card
// collection and a funded treasury account. It is idempotent: if
// snapshots already exist it leaves the database untouched.
package main

import (
	"context"
	"log"

	"cardvault/internal/config"
	"cardvault/internal/models"
	"cardvault/internal/repositories"
	"cardvault/internal/services/cardgen"
	"cardvault/internal/services/token"

	"github.com/shopspring/decimal"
)

func main() {
	config.LoadEnv()

	count := config.GetIntEnv("SEED_CARD_COUNT", 10)
	startIndex := uint64(config.GetInt64Env("SEED_START_INDEX", 0))
	treasury := config.GetEnv("TREASURY_ACCOUNT", "treasury")

	db, err := repositories.OpenDB(repositories.DefaultDBConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
		}
	}()

	ctx := context.Background()

	var existing int64
	if err := db.Model(&repositories.CardSnapshot{}).Count(&existing).Error; err != nil {
		log.Fatalf("Failed to inspect card snapshots: %v", err)
	}
	if existing > 0 {
		log.Printf("Card snapshots already present (%d), skipping seed", existing)
		return
	}

	factory := cardgen.NewFactory()
	cards, err := factory.GenerateBatch(startIndex, count)
	if err != nil {
		log.Fatalf("Failed to generate card batch: %v", err)
	}
	for i, card := range cards {
		card.ID = startIndex + uint64(i)
	}

	// Well-known fixtures for local development and demos.
	cardgen.ApplyPresets(cards, startIndex, []cardgen.Preset{
		{Index: startIndex, Number: "4000000000000002", CVV2: "123", PIN: "1234", Holder: "DEMO HOLDER"},
		{Index: startIndex + 1, Status: models.CardInactive},
	})

	repo := repositories.NewCardRepository(db, nil)
	if err := repo.SaveCards(ctx, cards...); err != nil {
		log.Fatalf("Failed to persist card snapshots: %v", err)
	}
	log.Printf("Seeded %d cards starting at index %d", len(cards), startIndex)

	if amount := config.GetDecimalEnv("SEED_TREASURY_BALANCE", decimal.Zero); amount.IsPositive() {
		tokens := token.NewGormLedger(db, treasury)
		if err := tokens.Mint(ctx, treasury, amount); err != nil {
			log.Fatalf("Failed to fund treasury: %v", err)
		}
		log.Printf("Funded treasury %s with %s", treasury, amount)
	}
}
