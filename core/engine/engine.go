// Package engine is the façade over the calculators: one synchronous
// Analyze call turns a node/connection snapshot into the energy balance,
// battery sizing, per-cable analyses and validation findings the editor
// renders. The engine never mutates its inputs and keeps no state
// between calls.
package engine

import (
	"fmt"
	"time"

	"github.com/kerguelen/boatgrid/core/battery"
	"github.com/kerguelen/boatgrid/core/cable"
	"github.com/kerguelen/boatgrid/core/energy"
	"github.com/kerguelen/boatgrid/core/logger"
	"github.com/kerguelen/boatgrid/core/metrics"
	"github.com/kerguelen/boatgrid/core/model"
	"github.com/kerguelen/boatgrid/core/validate"
)

// Config carries the project-level assumptions every calculator reads.
// Values are passed explicitly so parallel analyses with differing
// scenarios never share state.
type Config struct {
	// SunHoursPerDay is the equivalent full-sun hours for solar yield.
	SunHoursPerDay float64 `json:"sun_hours_per_day"`
	// ShoreHoursPerDay is the daily shore-power charging time.
	ShoreHoursPerDay float64 `json:"shore_hours_per_day"`
	// DaysAutonomy is the battery autonomy target in days.
	DaysAutonomy float64 `json:"days_autonomy"`
	// MaxVoltageDropPercent is the acceptable cable voltage drop.
	MaxVoltageDropPercent float64 `json:"max_voltage_drop_percent"`
	// CopperResistivity is in ohm·mm²/m.
	CopperResistivity float64 `json:"copper_resistivity"`
	// MinProductionRatio is the production/consumption ratio under which
	// the energy balance is flagged.
	MinProductionRatio float64 `json:"min_production_ratio"`
}

// SetDefaults applies the documented defaults for unset fields.
func (c *Config) SetDefaults() {
	if c.SunHoursPerDay == 0 {
		c.SunHoursPerDay = 5
	}
	if c.DaysAutonomy == 0 {
		c.DaysAutonomy = 2
	}
	if c.MaxVoltageDropPercent == 0 {
		c.MaxVoltageDropPercent = 3
	}
	if c.CopperResistivity == 0 {
		c.CopperResistivity = 0.0175
	}
	if c.MinProductionRatio == 0 {
		c.MinProductionRatio = 0.8
	}
}

// Validate checks the configuration is physically sensible.
func (c Config) Validate() error {
	if c.SunHoursPerDay < 0 || c.SunHoursPerDay > 24 {
		return fmt.Errorf("sun_hours_per_day out of range: %v", c.SunHoursPerDay)
	}
	if c.ShoreHoursPerDay < 0 || c.ShoreHoursPerDay > 24 {
		return fmt.Errorf("shore_hours_per_day out of range: %v", c.ShoreHoursPerDay)
	}
	if c.DaysAutonomy <= 0 {
		return fmt.Errorf("days_autonomy must be positive")
	}
	if c.MaxVoltageDropPercent <= 0 {
		return fmt.Errorf("max_voltage_drop_percent must be positive")
	}
	if c.CopperResistivity <= 0 {
		return fmt.Errorf("copper_resistivity must be positive")
	}
	return nil
}

func (c Config) energyParams() energy.Params {
	return energy.Params{SunHoursPerDay: c.SunHoursPerDay, ShoreHoursPerDay: c.ShoreHoursPerDay}
}

func (c Config) cableParams() cable.Params {
	return cable.Params{MaxDropPercent: c.MaxVoltageDropPercent, Resistivity: c.CopperResistivity}
}

func (c Config) validateConfig() validate.Config {
	return validate.Config{
		Energy:             c.energyParams(),
		Cable:              c.cableParams(),
		TargetAutonomyDays: c.DaysAutonomy,
		MinProductionRatio: c.MinProductionRatio,
	}
}

// Result is the full derived picture of a network, recomputed from
// scratch on every Analyze call. Cables preserves the order of the input
// connections.
type Result struct {
	Balance    energy.Balance   `json:"balance"`
	Battery    battery.Sizing   `json:"battery"`
	Cables     []cable.Analysis `json:"cables"`
	Validation validate.Result  `json:"validation"`
}

// Engine runs analyses under a fixed configuration. The logger and sink
// observe; they never influence the result.
type Engine struct {
	cfg  Config
	log  logger.Logger
	sink metrics.Sink
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger attaches a logger to the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSink attaches a metrics sink to the engine.
func WithSink(s metrics.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// New creates an Engine. The configuration gets defaults filled in and
// is validated once here so Analyze never fails.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{cfg: cfg, sink: metrics.NopSink{}}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Analyze derives the full result for a network snapshot. The call is
// synchronous and pure with respect to its inputs; connections whose
// endpoints cannot be resolved degrade to zero-valued cable rows.
func (e *Engine) Analyze(nodes []model.Node, conns []model.Connection) Result {
	start := time.Now()

	bal := energy.ComputeBalance(nodes, e.cfg.energyParams())
	siz := battery.Size(nodes, bal.DailyConsumptionAh, e.cfg.DaysAutonomy)
	analyses := cable.AnalyzeAll(nodes, conns, e.cfg.cableParams())
	val := validate.Evaluate(nodes, conns, analyses, bal, siz, e.cfg.validateConfig())

	res := Result{Balance: bal, Battery: siz, Cables: analyses, Validation: val}

	if e.log != nil {
		e.log.Debugw("analysis complete", map[string]any{
			"nodes":       len(nodes),
			"connections": len(conns),
			"errors":      len(val.Errors),
			"warnings":    len(val.Warnings),
		})
	}
	if err := e.sink.RecordAnalysis(metrics.AnalysisEvent{
		Nodes:              len(nodes),
		Connections:        len(conns),
		Errors:             len(val.Errors),
		Warnings:           len(val.Warnings),
		DailyConsumptionAh: bal.DailyConsumptionAh,
		DailyProductionAh:  bal.DailyProductionAh,
		AutonomyDays:       siz.EstimatedAutonomyDays,
		Duration:           time.Since(start),
		Time:               start,
	}); err != nil && e.log != nil {
		e.log.Warnf("metrics sink: %v", err)
	}
	return res
}
