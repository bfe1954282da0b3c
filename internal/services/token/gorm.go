// Package token implements the value-ledger collaborator the registry
// transfers against: an in-memory ledger for tests and a gorm-backed
// ledger for deployments without an external one.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Account is one token balance row.
type Account struct {
	Address string          `gorm:"primarykey"`
	Balance decimal.Decimal `gorm:"type:decimal(38,18);not null"`
}

// GormLedger is a token ledger persisted in Postgres. Each transfer
// runs in one database transaction so a failed leg rolls back both
// sides.
type GormLedger struct {
	db   *gorm.DB
	self string
}

func NewGormLedger(db *gorm.DB, self string) *GormLedger {
	return &GormLedger{db: db, self: self}
}

// Migrate creates the account table.
func (l *GormLedger) Migrate() error {
	return l.db.AutoMigrate(&Account{})
}

// Mint credits an account without a funding source. Only seeding
// tooling should call this.
func (l *GormLedger) Mint(ctx context.Context, account string, amount decimal.Decimal) error {
	if account == "" {
		return fmt.Errorf("mint requires an account")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("mint amount must be positive")
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "address = ?", account).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&Account{Address: account, Balance: amount}).Error
		case err != nil:
			return fmt.Errorf("reading account: %w", err)
		default:
			row.Balance = row.Balance.Add(amount)
			return tx.Save(&row).Error
		}
	})
}

func (l *GormLedger) BalanceOf(ctx context.Context, account string) (decimal.Decimal, error) {
	var row Account
	err := l.db.WithContext(ctx).First(&row, "address = ?", account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading balance: %w", err)
	}
	return row.Balance, nil
}

func (l *GormLedger) Transfer(ctx context.Context, to string, amount decimal.Decimal) error {
	return l.TransferFrom(ctx, l.self, to, amount)
}

func (l *GormLedger) TransferFrom(ctx context.Context, from, to string, amount decimal.Decimal) error {
	if from == "" || to == "" {
		return fmt.Errorf("transfer requires both accounts")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive")
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&src, "address = ?", from).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %s has insufficient balance", from)
			}
			return fmt.Errorf("reading source account: %w", err)
		}
		if src.Balance.LessThan(amount) {
			return fmt.Errorf("account %s has insufficient balance", from)
		}
		src.Balance = src.Balance.Sub(amount)
		if err := tx.Save(&src).Error; err != nil {
			return fmt.Errorf("debiting source account: %w", err)
		}

		var dst Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dst, "address = ?", to).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			dst = Account{Address: to, Balance: amount}
			if err := tx.Create(&dst).Error; err != nil {
				return fmt.Errorf("creating destination account: %w", err)
			}
		case err != nil:
			return fmt.Errorf("reading destination account: %w", err)
		default:
			dst.Balance = dst.Balance.Add(amount)
			if err := tx.Save(&dst).Error; err != nil {
				return fmt.Errorf("crediting destination account: %w", err)
			}
		}
		return nil
	})
}

// Approve is accepted and ignored. The registry operates this ledger
// as a trusted operator, so transfers are not allowance-gated and
// grants are not tracked.
func (l *GormLedger) Approve(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}
