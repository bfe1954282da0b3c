package handlers

import (
	"time"

	"cardvault/internal/models"
	"cardvault/internal/repositories"
	"cardvault/internal/services/ledger"
	"cardvault/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CardQueryHandler serves the read-only card endpoints, backed by the
// redis cache where harmless.
type CardQueryHandler struct {
	svc   ledger.Service
	cache *repositories.CacheService
}

func NewCardQueryHandler(svc ledger.Service, cache *repositories.CacheService) *CardQueryHandler {
	return &CardQueryHandler{svc: svc, cache: cache}
}

// cardView is the public shape of a card record: PAN masked, secrets
// omitted.
type cardView struct {
	ID         uint64          `json:"id"`
	Number     string          `json:"number"`
	Expiration string          `json:"expiration"`
	Network    string          `json:"network"`
	Status     string          `json:"status"`
	Country    string          `json:"country"`
	Issuer     string          `json:"issuer"`
	BINRange   string          `json:"bin_range"`
	Holder     string          `json:"holder"`
	Collateral decimal.Decimal `json:"collateral"`
	Spendable  decimal.Decimal `json:"spendable"`
	Reserved   decimal.Decimal `json:"reserved"`
	Debt       decimal.Decimal `json:"debt"`
	RepayDueAt *time.Time      `json:"repay_due_at,omitempty"`
}

func viewOf(card *models.Card) cardView {
	return cardView{
		ID:         card.ID,
		Number:     card.MaskedNumber(),
		Expiration: card.Expiration,
		Network:    string(card.Network),
		Status:     string(card.Status),
		Country:    card.Country,
		Issuer:     card.Issuer,
		BINRange:   card.BINRange,
		Holder:     card.Holder,
		Collateral: card.Collateral,
		Spendable:  card.Spendable,
		Reserved:   card.Reserved,
		Debt:       card.Debt,
		RepayDueAt: card.RepayDueAt,
	}
}

func (h *CardQueryHandler) GetCard(c *fiber.Ctx) error {
	cardID, err := cardIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid card id")
	}

	if h.cache != nil {
		if card, err := h.cache.GetCard(c.Context(), cardID); err == nil {
			return utils.Success(c, fiber.Map{"card": viewOf(card)})
		}
	}

	card, err := h.svc.GetCard(c.Context(), cardID)
	if err != nil {
		return utils.NotFound(c, "card not found")
	}

	if h.cache != nil {
		h.cache.SetCard(c.Context(), card)
	}
	return utils.Success(c, fiber.Map{"card": viewOf(card)})
}

func (h *CardQueryHandler) ListCards(c *fiber.Ctx) error {
	cards := h.svc.ListCards(c.Context())
	views := make([]cardView, len(cards))
	for i, card := range cards {
		views[i] = viewOf(card)
	}
	return utils.Success(c, fiber.Map{"cards": views})
}

func (h *CardQueryHandler) GetBalances(c *fiber.Ctx) error {
	cardID, err := cardIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid card id")
	}

	balances, err := h.svc.Balances(c.Context(), cardID)
	if err != nil {
		return utils.NotFound(c, "card not found")
	}
	return utils.Success(c, fiber.Map{"balances": balances})
}

func (h *CardQueryHandler) GetOwner(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"owner": h.svc.Owner()})
}

func (h *CardQueryHandler) GetReserve(c *fiber.Ctx) error {
	reserve, err := h.svc.ReserveBalance(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to read reserve")
	}
	return utils.Success(c, fiber.Map{
		"reserve":        reserve,
		"native_reserve": h.svc.NativeReserve(),
	})
}
