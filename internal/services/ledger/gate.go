package ledger

import (
	"sync"

	domain "cardvault/internal/errors"
)

// gate is the registry's mutual-exclusion mechanism. The op mutex is
// held for the whole of a mutating operation; a second mutating call
// arriving while it is held is rejected outright rather than queued,
// matching the transaction-atomicity semantics the ledger promises.
// The state lock guards the card collection itself: writers hold it
// only for the brief commit of staged changes, readers share it, so
// queries never observe a mutation mid-flight.
type gate struct {
	op    sync.Mutex
	state sync.RWMutex
}

// enter acquires the mutation gate, failing fast when another mutating
// operation is in flight.
func (g *gate) enter() error {
	if !g.op.TryLock() {
		return domain.ErrOperationInFlight
	}
	return nil
}

func (g *gate) exit() {
	g.op.Unlock()
}

// commit runs fn while holding the state write lock.
func (g *gate) commit(fn func()) {
	g.state.Lock()
	defer g.state.Unlock()
	fn()
}

// read runs fn while holding the state read lock.
func (g *gate) read(fn func()) {
	g.state.RLock()
	defer g.state.RUnlock()
	fn()
}
