package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardvault/internal/models"
	"cardvault/internal/services/ledger"
	"cardvault/internal/services/oracle"
	"cardvault/internal/services/payment"
	"cardvault/internal/services/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, address, role string) string {
	t.Helper()
	claims := models.OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Address: address,
		Role:    role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("cardvault"))
	require.NoError(t, err)
	return token
}

func newTestApp(t *testing.T) (*fiber.App, *token.MemoryLedger) {
	t.Helper()
	tokens := token.NewMemoryLedger("treasury")
	feed := oracle.NewFeed()
	feed.Publish(decimal.NewFromInt(2000), 0, time.Now())

	svc := ledger.NewService(ledger.Config{
		Owner:           "owner",
		TreasuryAccount: "treasury",
	}, ledger.Dependencies{
		Tokens: tokens,
		Oracle: feed,
		Rail:   payment.NewTokenRail(tokens),
	})

	app := fiber.New()
	SetupRoutes(app, svc, nil)
	return app, tokens
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func TestHealthIsPublic(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAPIRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/cards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/cards", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnerEndpointsRejectDepositorRole(t *testing.T) {
	app, _ := newTestApp(t)
	depositor := signToken(t, "alice", models.RoleDepositor)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cards/generate", depositor, fiber.Map{"count": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGenerateAndReadCards(t *testing.T) {
	app, _ := newTestApp(t)
	owner := signToken(t, "owner", models.RoleOwner)

	resp, body := doJSON(t, app, http.MethodPost, "/api/cards/generate", owner, fiber.Map{"count": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["first_id"])
	assert.EqualValues(t, 2, body["count"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/cards/0", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	card := body["card"].(map[string]interface{})
	number := card["number"].(string)
	require.Len(t, number, 16)
	assert.Contains(t, number, "******", "PAN must be masked in responses")
	assert.NotContains(t, card, "pin")
	assert.NotContains(t, card, "cvv2")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/cards/99", owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDepositAndBorrowFlow(t *testing.T) {
	app, tokens := newTestApp(t)
	owner := signToken(t, "owner", models.RoleOwner)
	depositor := signToken(t, "alice", models.RoleDepositor)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cards/generate", owner, fiber.Map{"count": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tokens.Mint("alice", decimal.NewFromInt(1000))
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cards/0/deposits/collateral", depositor, fiber.Map{"amount": "10"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tokens.Mint("treasury", decimal.NewFromInt(1_000_000))

	// Wrong CVV2 maps to 403 via the auth error kind.
	resp, body := doJSON(t, app, http.MethodPost, "/api/cards/0/borrow", owner, fiber.Map{
		"collateral": "10", "leverage": 5, "cvv2": "000",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CVV2_MISMATCH", body["code"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/cards/0/balances", depositor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balances := body["balances"].(map[string]interface{})
	assert.Equal(t, "10", balances["collateral"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/reserve", depositor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1000010", body["reserve"])
}

func TestDomainErrorStatusMapping(t *testing.T) {
	app, _ := newTestApp(t)
	owner := signToken(t, "owner", models.RoleOwner)

	// Validation failures map to 400.
	resp, body := doJSON(t, app, http.MethodPost, "/api/cards/generate", owner, fiber.Map{"count": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_AMOUNT", body["code"])

	// External transfer failures map to 502.
	resp, body = doJSON(t, app, http.MethodPost, "/api/deposits/reserve", owner, fiber.Map{"amount": "5"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "TRANSFER_FAILED", body["code"])
}

func TestTransferOwnershipEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	owner := signToken(t, "owner", models.RoleOwner)

	resp, body := doJSON(t, app, http.MethodPost, "/api/ownership", owner, fiber.Map{"new_owner": "successor"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "successor", body["owner"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/owner", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "successor", body["owner"])
}
