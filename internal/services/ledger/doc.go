/*
Package ledger owns the prepaid-card registry: the append-only card
collection, the registry owner identity, and the native reserve counter.

Every mutating operation passes through the same sequence: the
process-wide mutual-exclusion gate is acquired (re-entry is rejected,
never queued), the caller's authorization and the card's PIN/CVV2
preconditions are checked, the relevant engine computes and applies the
balance deltas on a staged copy of the card, and only then is the copy
committed to the collection. A failure at any point leaves the ledger
exactly as it was; there is no partial application.

Read-only queries run concurrently with each other and never observe a
mutation mid-flight.

Each committed mutation emits structured domain events for external
logging and indexing, records metrics, and writes a card snapshot
through to the persistence layer.
*/
package ledger
