// Package metrics defines the observability interfaces the engine and
// service report into. Implementations live under infra/metrics.
package metrics

import "time"

// AnalysisEvent summarises one full analysis pass over a network.
type AnalysisEvent struct {
	ProjectName        string
	Nodes              int
	Connections        int
	Errors             int
	Warnings           int
	DailyConsumptionAh float64
	DailyProductionAh  float64
	AutonomyDays       float64
	Duration           time.Duration
	Time               time.Time
}

// Sink records analysis events for observability purposes.
type Sink interface {
	RecordAnalysis(ev AnalysisEvent) error
}

// NopSink discards every event.
type NopSink struct{}

// RecordAnalysis implements Sink.
func (NopSink) RecordAnalysis(AnalysisEvent) error { return nil }
