package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsCollector receives operation telemetry from the registry.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordAmount(operation string, amount decimal.Decimal)
	RecordError(operation, code string)
}

// NoopMetricsCollector is the default no-op MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (NoopMetricsCollector) RecordOperationResult(string, string)         {}
func (NoopMetricsCollector) RecordAmount(string, decimal.Decimal)         {}
func (NoopMetricsCollector) RecordError(string, string)                   {}
