package token

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryLedger is an in-process token ledger used in tests and
// single-node deployments without an external value ledger.
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
	// self is the identity the ledger acts as when Transfer and
	// TransferFrom are invoked without an explicit spender.
	self string
}

func NewMemoryLedger(self string) *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]decimal.Decimal),
		self:     self,
	}
}

// Mint credits an account out of thin air, for seeding tests and
// fixtures.
func (l *MemoryLedger) Mint(account string, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = l.balance(account).Add(amount)
}

func (l *MemoryLedger) BalanceOf(_ context.Context, account string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance(account), nil
}

func (l *MemoryLedger) Transfer(_ context.Context, to string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(l.self, to, amount)
}

func (l *MemoryLedger) TransferFrom(_ context.Context, from, to string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

// Approve is accepted and ignored, matching the gorm-backed ledger:
// the registry is a trusted operator and transfers are not
// allowance-gated.
func (l *MemoryLedger) Approve(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

func (l *MemoryLedger) balance(account string) decimal.Decimal {
	if b, ok := l.balances[account]; ok {
		return b
	}
	return decimal.Zero
}

func (l *MemoryLedger) move(from, to string, amount decimal.Decimal) error {
	if from == "" || to == "" {
		return fmt.Errorf("transfer requires both accounts")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive")
	}
	if l.balance(from).LessThan(amount) {
		return fmt.Errorf("account %s has insufficient balance", from)
	}
	l.balances[from] = l.balance(from).Sub(amount)
	l.balances[to] = l.balance(to).Add(amount)
	return nil
}
