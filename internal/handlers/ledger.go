// Package handlers exposes the registry operation surface over HTTP.
package handlers

import (
	"strconv"

	"cardvault/internal/services/ledger"
	"cardvault/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LedgerHandler adapts HTTP requests onto the card registry.
type LedgerHandler struct {
	svc ledger.Service
}

func NewLedgerHandler(svc ledger.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

func cardIDParam(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

func (h *LedgerHandler) DepositReserve(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	res, err := h.svc.DepositReserve(c.Context(), ledger.DepositReserveRequest{
		Caller: claims.Address,
		Amount: input.Amount,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) DepositNativeValue(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	res, err := h.svc.DepositNativeValue(c.Context(), ledger.DepositNativeRequest{
		Caller: claims.Address,
		Amount: input.Amount,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) DepositCardCollateral(c *fiber.Ctx) error {
	return h.depositCard(c, false)
}

func (h *LedgerHandler) DepositCardSpendable(c *fiber.Ctx) error {
	return h.depositCard(c, true)
}

func (h *LedgerHandler) depositCard(c *fiber.Ctx, spendable bool) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := cardIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	req := ledger.CardDepositRequest{
		Caller: claims.Address,
		CardID: cardID,
		Amount: input.Amount,
	}
	var res *ledger.DepositResult
	if spendable {
		res, err = h.svc.DepositCardSpendable(c.Context(), req)
	} else {
		res, err = h.svc.DepositCardCollateral(c.Context(), req)
	}
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) GenerateCards(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Count int `json:"count"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	res, err := h.svc.GenerateCards(c.Context(), ledger.GenerateCardsRequest{
		Caller: claims.Address,
		Count:  input.Count,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) Borrow(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := cardIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Collateral decimal.Decimal `json:"collateral"`
		Leverage   int64           `json:"leverage"`
		CVV2       string          `json:"cvv2"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	res, err := h.svc.Borrow(c.Context(), ledger.BorrowRequest{
		Caller:     claims.Address,
		CardID:     cardID,
		Collateral: input.Collateral,
		Leverage:   input.Leverage,
		CVV2:       input.CVV2,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) RequestSpend(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := cardIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Amount      decimal.Decimal `json:"amount"`
		MerchantRef string          `json:"merchant_ref"`
		PIN         string          `json:"pin"`
		CVV2        string          `json:"cvv2"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	res, err := h.svc.RequestSpend(c.Context(), ledger.SpendRequest{
		Caller:      claims.Address,
		CardID:      cardID,
		Amount:      input.Amount,
		MerchantRef: input.MerchantRef,
		PIN:         input.PIN,
		CVV2:        input.CVV2,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) ConfirmSettlement(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := cardIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Amount   decimal.Decimal `json:"amount"`
		Merchant string          `json:"merchant"`
		Success  bool            `json:"success"`
		CVV2     string          `json:"cvv2"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	res, err := h.svc.ConfirmSettlement(c.Context(), ledger.ConfirmSettlementRequest{
		Caller:   claims.Address,
		CardID:   cardID,
		Amount:   input.Amount,
		Merchant: input.Merchant,
		Success:  input.Success,
		CVV2:     input.CVV2,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, res)
}

func (h *LedgerHandler) TransferOwnership(c *fiber.Ctx) error {
	claims, err := utils.GetOperatorClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		NewOwner string `json:"new_owner"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	if err := h.svc.TransferOwnership(c.Context(), ledger.TransferOwnershipRequest{
		Caller:   claims.Address,
		NewOwner: input.NewOwner,
	}); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"owner": input.NewOwner})
}
