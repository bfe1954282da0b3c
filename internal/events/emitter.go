// Package events delivers the ledger's structured domain events to
// external consumers. The default emitter writes them as structured log
// lines for downstream indexing.
package events

import (
	"cardvault/internal/models"

	"github.com/sirupsen/logrus"
)

// LogEmitter writes each event as one structured logrus entry.
type LogEmitter struct {
	log *logrus.Logger
}

func NewLogEmitter(log *logrus.Logger) *LogEmitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogEmitter{log: log}
}

// Emit implements ledger.EventEmitter.
func (e *LogEmitter) Emit(event models.Event) {
	fields := logrus.Fields{
		"event_id": event.ID.String(),
		"type":     string(event.Type),
		"amount":   event.Amount.String(),
		"at":       event.At,
	}
	if event.CardID != nil {
		fields["card_id"] = *event.CardID
	}
	for k, v := range event.Metadata {
		fields["meta_"+k] = v
	}
	e.log.WithFields(fields).Info("ledger event")
}
