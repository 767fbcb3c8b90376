package engine

import (
	"math"
	"testing"

	"github.com/kerguelen/boatgrid/core/battery"
	coremetrics "github.com/kerguelen/boatgrid/core/metrics"
	"github.com/kerguelen/boatgrid/core/model"
	"github.com/kerguelen/boatgrid/core/validate"
)

// sailboat returns a small but complete 12V network: house bank, solar,
// alternator, a switch panel and three loads.
func sailboat() ([]model.Node, []model.Connection) {
	nodes := []model.Node{
		{ID: "house", Type: model.NodeBattery, Voltage: 12,
			Battery: &model.BatteryAttrs{CapacityAh: 200, Chemistry: model.ChemistryAGM, Quantity: 2}},
		{ID: "panel", Type: model.NodeSolar, Voltage: 12,
			Solar: &model.SolarAttrs{MaxPowerW: 200}},
		{ID: "alt", Type: model.NodeAlternator, Voltage: 12,
			Alternator: &model.AlternatorAttrs{MaxPowerW: 500, EngineHoursPerDay: 0.5}},
		{ID: "bus", Type: model.NodeBus, Voltage: 12},
		{ID: "fridge", Type: model.NodeConsumer, Voltage: 12,
			Consumer: &model.ConsumerAttrs{PowerW: 45, DailyHours: 24, DutyCycle: 0.35}},
		{ID: "nav", Type: model.NodeConsumer, Voltage: 12,
			Consumer: &model.ConsumerAttrs{PowerW: 120, DailyHours: 4, DutyCycle: 0.5}},
		{ID: "pump", Type: model.NodeConsumer, Voltage: 12,
			Consumer: &model.ConsumerAttrs{CurrentA: 4, DailyHours: 0.5, DutyCycle: 1}},
	}
	conns := []model.Connection{
		{ID: "k1", FromNodeID: "house", ToNodeID: "bus", SectionMm2: 25, LengthM: 1.5},
		{ID: "k2", FromNodeID: "panel", ToNodeID: "bus", SectionMm2: 6, LengthM: 4},
		{ID: "k3", FromNodeID: "alt", ToNodeID: "house", SectionMm2: 16, LengthM: 1},
		{ID: "k4", FromNodeID: "bus", ToNodeID: "fridge", SectionMm2: 4, LengthM: 3},
		{ID: "k5", FromNodeID: "bus", ToNodeID: "nav", SectionMm2: 6, LengthM: 5},
		{ID: "k6", FromNodeID: "bus", ToNodeID: "pump", SectionMm2: 2.5, LengthM: 4},
	}
	return nodes, conns
}

func TestDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.SunHoursPerDay != 5 || cfg.DaysAutonomy != 2 ||
		cfg.MaxVoltageDropPercent != 3 || cfg.CopperResistivity != 0.0175 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := Config{SunHoursPerDay: 30}
	bad.SetDefaults()
	if err := bad.Validate(); err == nil {
		t.Fatal("30 sun hours should not validate")
	}
}

func TestAnalyzeFullPicture(t *testing.T) {
	eng, err := New(Config{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	nodes, conns := sailboat()
	res := eng.Analyze(nodes, conns)

	// Consumption: fridge 3.75A×24×0.35=31.5, nav 10A×4×0.5=20, pump 4A×0.5=2.
	if math.Abs(res.Balance.DailyConsumptionAh-53.5) > 1e-9 {
		t.Fatalf("daily consumption = %v, want 53.5", res.Balance.DailyConsumptionAh)
	}
	if res.Battery.TotalCapacityAh != 400 {
		t.Fatalf("bank capacity = %v, want 400", res.Battery.TotalCapacityAh)
	}
	if res.Battery.DominantChemistry != model.ChemistryAGM {
		t.Fatalf("dominant chemistry = %v", res.Battery.DominantChemistry)
	}
	if res.Battery.Status != battery.StatusOK {
		t.Fatalf("battery status = %v, want ok (%.2f days)", res.Battery.Status, res.Battery.EstimatedAutonomyDays)
	}
	if len(res.Cables) != len(conns) {
		t.Fatalf("got %d cable rows, want %d", len(res.Cables), len(conns))
	}
	for i, c := range conns {
		if res.Cables[i].ConnectionID != c.ID {
			t.Fatalf("cable rows must preserve input order: row %d is %s", i, res.Cables[i].ConnectionID)
		}
	}
	if !res.Validation.IsValid {
		t.Fatalf("sailboat layout should be valid, errors: %+v", res.Validation.Errors)
	}
}

func TestAnalyzeDoesNotMutateInputs(t *testing.T) {
	eng, err := New(Config{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	nodes, conns := sailboat()
	nodesCopy := make([]model.Node, len(nodes))
	copy(nodesCopy, nodes)
	connsCopy := make([]model.Connection, len(conns))
	copy(connsCopy, conns)

	_ = eng.Analyze(nodes, conns)

	for i := range nodes {
		if nodes[i] != nodesCopy[i] {
			t.Fatalf("node %d mutated", i)
		}
	}
	for i := range conns {
		if conns[i] != connsCopy[i] {
			t.Fatalf("connection %d mutated", i)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	eng, err := New(Config{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	nodes, conns := sailboat()
	a := eng.Analyze(nodes, conns)
	b := eng.Analyze(nodes, conns)
	if a.Balance != b.Balance || a.Battery != b.Battery {
		t.Fatal("repeated analysis of the same snapshot must match")
	}
}

type captureSink struct {
	events []coremetrics.AnalysisEvent
}

func (c *captureSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func TestAnalyzeRecordsMetrics(t *testing.T) {
	sink := &captureSink{}
	eng, err := New(Config{}, WithSink(sink))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	nodes, conns := sailboat()
	res := eng.Analyze(nodes, conns)

	if len(sink.events) != 1 {
		t.Fatalf("want one metrics event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Nodes != len(nodes) || ev.Connections != len(conns) {
		t.Fatalf("event sizes = %d/%d", ev.Nodes, ev.Connections)
	}
	if ev.Errors != len(res.Validation.Errors) || ev.Warnings != len(res.Validation.Warnings) {
		t.Fatalf("event finding counts do not match the result")
	}
}

func TestAnalyzeDanglingConnection(t *testing.T) {
	eng, err := New(Config{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	nodes, conns := sailboat()
	conns = append(conns, model.Connection{ID: "ghost", FromNodeID: "bus", ToNodeID: "nowhere", SectionMm2: 2.5, LengthM: 1})
	res := eng.Analyze(nodes, conns)
	last := res.Cables[len(res.Cables)-1]
	if last.ConnectionID != "ghost" || last.Resolved {
		t.Fatalf("dangling connection should yield an unresolved row: %+v", last)
	}
	for _, f := range append(res.Validation.Errors, res.Validation.Warnings...) {
		if f.ConnectionID == "ghost" && f.Type != validate.TypeUndersizedCable {
			t.Fatalf("dangling connection leaked a finding: %+v", f)
		}
	}
}
