package token

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger_Transfers(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger("treasury")
	l.Mint("alice", decimal.NewFromInt(100))

	require.NoError(t, l.TransferFrom(ctx, "alice", "treasury", decimal.NewFromInt(40)))

	alice, err := l.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, alice.Equal(decimal.NewFromInt(60)))

	treasury, err := l.BalanceOf(ctx, "treasury")
	require.NoError(t, err)
	assert.True(t, treasury.Equal(decimal.NewFromInt(40)))

	// Transfer acts as the ledger's own identity.
	require.NoError(t, l.Transfer(ctx, "bob", decimal.NewFromInt(15)))
	bob, err := l.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, bob.Equal(decimal.NewFromInt(15)))
}

func TestMemoryLedger_TransferFailures(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger("treasury")
	l.Mint("alice", decimal.NewFromInt(10))

	assert.Error(t, l.TransferFrom(ctx, "alice", "bob", decimal.NewFromInt(11)))
	assert.Error(t, l.TransferFrom(ctx, "alice", "bob", decimal.Zero))
	assert.Error(t, l.TransferFrom(ctx, "alice", "bob", decimal.NewFromInt(-1)))
	assert.Error(t, l.TransferFrom(ctx, "", "bob", decimal.NewFromInt(1)))
	assert.Error(t, l.TransferFrom(ctx, "nobody", "bob", decimal.NewFromInt(1)))

	// Failed transfers leave balances alone.
	alice, err := l.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, alice.Equal(decimal.NewFromInt(10)))
}

func TestMemoryLedger_ApproveNotRequired(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger("treasury")
	l.Mint("alice", decimal.NewFromInt(5))

	// Transfers work without any prior grant; Approve is a no-op.
	require.NoError(t, l.Approve(ctx, "spender", decimal.NewFromInt(1)))
	assert.NoError(t, l.TransferFrom(ctx, "alice", "bob", decimal.NewFromInt(5)))
}

func TestMemoryLedger_UnknownAccountIsZero(t *testing.T) {
	l := NewMemoryLedger("treasury")
	balance, err := l.BalanceOf(context.Background(), "ghost")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
