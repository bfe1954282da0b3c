// Package routes defines the API routing configuration: route groups,
// middleware and handler wiring.
package routes

import (
	"cardvault/internal/handlers"
	"cardvault/internal/middleware"
	"cardvault/internal/repositories"
	"cardvault/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes over the card registry.
func SetupRoutes(app *fiber.App, svc ledger.Service, cache *repositories.CacheService) {
	ledgerHandler := handlers.NewLedgerHandler(svc)
	queryHandler := handlers.NewCardQueryHandler(svc, cache)

	app.Get("/health", handlers.Health)

	api := app.Group("/api", middleware.Auth)

	// Read-only queries.
	api.Get("/cards", queryHandler.ListCards)
	api.Get("/cards/:id", queryHandler.GetCard)
	api.Get("/cards/:id/balances", queryHandler.GetBalances)
	api.Get("/owner", queryHandler.GetOwner)
	api.Get("/reserve", queryHandler.GetReserve)

	// Deposits: owner-agnostic, still serialized by the registry gate.
	api.Post("/deposits/reserve", ledgerHandler.DepositReserve)
	api.Post("/deposits/native", ledgerHandler.DepositNativeValue)
	api.Post("/cards/:id/deposits/collateral", ledgerHandler.DepositCardCollateral)
	api.Post("/cards/:id/deposits/spendable", ledgerHandler.DepositCardSpendable)

	// Owner-only mutations.
	owner := api.Group("", middleware.RequireOwnerRole)
	owner.Post("/cards/generate", ledgerHandler.GenerateCards)
	owner.Post("/cards/:id/borrow", ledgerHandler.Borrow)
	owner.Post("/cards/:id/spend", ledgerHandler.RequestSpend)
	owner.Post("/cards/:id/settle", ledgerHandler.ConfirmSettlement)
	owner.Post("/ownership", ledgerHandler.TransferOwnership)
}
