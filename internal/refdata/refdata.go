// Package refdata holds the static card-network reference table consulted
// at card generation time. The table is fixed at startup and read-only
// afterwards.
package refdata

import "cardvault/internal/models"

// Entry is the issuer metadata attached to every card of a network.
type Entry struct {
	Country  string
	Issuer   string
	BINRange string
}

var networks = map[models.CardNetwork]Entry{
	models.NetworkVisa: {
		Country:  "US",
		Issuer:   "Vaulted Issuing Bank",
		BINRange: "400000-499999",
	},
	models.NetworkMastercard: {
		Country:  "US",
		Issuer:   "Vaulted Issuing Bank",
		BINRange: "510000-559999",
	},
}

// Lookup returns the reference entry for a network. The second return
// value is false for networks the factory cannot issue.
func Lookup(network models.CardNetwork) (Entry, bool) {
	e, ok := networks[network]
	return e, ok
}
