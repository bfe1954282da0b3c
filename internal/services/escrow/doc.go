/*
Package escrow implements the two-phase spend settlement flow.

A spend request moves funds from the card's spendable balance into its
reserved balance and records a correlation code for the in-flight
request. Confirmation later releases the reserved amount: on success it
is paid out to the merchant through the payment rail and does not return
to spendable; on failure it is refunded to spendable.

Confirmation draws against the aggregate reserved balance rather than a
specific correlation code, so concurrent reservations on one card are
fungible (pooled escrow).
*/
package escrow
