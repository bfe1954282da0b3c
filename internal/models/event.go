package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType identifies a structured domain event emitted by the ledger.
type EventType string

const (
	EventCardCreated         EventType = "card.created"
	EventValueDeposited      EventType = "value.deposited"
	EventBorrowed            EventType = "borrowed"
	EventSettlementRequested EventType = "settlement.requested"
	EventSettlementConfirmed EventType = "settlement.confirmed"
	EventSpendExecuted       EventType = "spend.executed"
)

// Event is one observable fact about a completed mutation. Events are
// consumed by external logging and indexing only; the ledger itself
// never reads them back.
type Event struct {
	ID       uuid.UUID       `json:"id"`
	Type     EventType       `json:"type"`
	CardID   *uint64         `json:"card_id,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Metadata JSON            `json:"metadata,omitempty"`
	At       time.Time       `json:"at"`
}

// NewEvent builds an event stamped with a fresh id and the current time.
func NewEvent(t EventType, cardID *uint64, amount decimal.Decimal, meta JSON) Event {
	return Event{
		ID:       uuid.New(),
		Type:     t,
		CardID:   cardID,
		Amount:   amount,
		Metadata: meta,
		At:       time.Now().UTC(),
	}
}
