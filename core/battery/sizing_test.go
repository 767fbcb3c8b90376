package battery

import (
	"math"
	"testing"

	"github.com/kerguelen/boatgrid/core/model"
)

func bank(id string, capacity float64, chem model.Chemistry, qty int, cfg model.BankConfiguration) model.Node {
	return model.Node{
		ID: id, Type: model.NodeBattery, Voltage: 12,
		Battery: &model.BatteryAttrs{CapacityAh: capacity, Chemistry: chem, Quantity: qty, Configuration: cfg},
	}
}

func TestParallelCapacityScalesWithQuantity(t *testing.T) {
	nodes := []model.Node{bank("b1", 100, model.ChemistryAGM, 3, model.BankParallel)}
	if got := TotalCapacityAh(nodes); got != 300 {
		t.Fatalf("parallel capacity = %v, want 300", got)
	}
}

func TestSeriesCapacityIgnoresQuantity(t *testing.T) {
	nodes := []model.Node{bank("b1", 100, model.ChemistryAGM, 4, model.BankSeries)}
	if got := TotalCapacityAh(nodes); got != 100 {
		t.Fatalf("series capacity = %v, want 100", got)
	}
}

func TestTotalCapacityMixedBanks(t *testing.T) {
	nodes := []model.Node{
		bank("b1", 100, model.ChemistryAGM, 2, model.BankParallel),
		bank("b2", 200, model.ChemistryLiFePO4, 2, model.BankSeries),
	}
	if got := TotalCapacityAh(nodes); got != 400 {
		t.Fatalf("mixed capacity = %v, want 400", got)
	}
}

func TestDominantChemistry(t *testing.T) {
	nodes := []model.Node{
		bank("b1", 100, model.ChemistryLead, 1, model.BankParallel),
		bank("b2", 120, model.ChemistryLiFePO4, 2, model.BankParallel),
	}
	chem, ok := DominantChemistry(nodes)
	if !ok || chem != model.ChemistryLiFePO4 {
		t.Fatalf("dominant = %v, want lifepo4", chem)
	}
}

func TestDominantChemistryTieFirstEncountered(t *testing.T) {
	nodes := []model.Node{
		bank("b1", 100, model.ChemistryGel, 1, model.BankParallel),
		bank("b2", 100, model.ChemistryLithium, 1, model.BankParallel),
	}
	chem, ok := DominantChemistry(nodes)
	if !ok || chem != model.ChemistryGel {
		t.Fatalf("tie should keep first-encountered chemistry, got %v", chem)
	}
}

func TestDominantChemistryNoBattery(t *testing.T) {
	if _, ok := DominantChemistry(nil); ok {
		t.Fatal("no batteries should report no dominant chemistry")
	}
}

func TestRequiredCapacity(t *testing.T) {
	if got := RequiredCapacityAh(100, 2, 0.5); got != 400 {
		t.Fatalf("required = %v, want 400", got)
	}
	if got := RequiredCapacityAh(100, 2, 0); !math.IsInf(got, 1) {
		t.Fatalf("zero DoD should yield +Inf, got %v", got)
	}
}

func TestEstimatedAutonomy(t *testing.T) {
	if got := EstimatedAutonomyDays(200, 50); got != 4 {
		t.Fatalf("autonomy = %v, want 4", got)
	}
	if got := EstimatedAutonomyDays(200, 0); !math.IsInf(got, 1) {
		t.Fatalf("zero consumption should yield +Inf, got %v", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		days   float64
		target float64
		want   Status
	}{
		{2, 2, StatusOK},
		{5, 2, StatusOK},
		{1.5, 2, StatusWarning},
		{1, 2, StatusWarning},
		{0.9, 2, StatusCritical},
		{math.Inf(1), 2, StatusOK},
	}
	for _, c := range cases {
		if got := Classify(c.days, c.target); got != c.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", c.days, c.target, got, c.want)
		}
	}
}

func TestSize(t *testing.T) {
	nodes := []model.Node{bank("b1", 200, model.ChemistryLead, 2, model.BankParallel)}
	s := Size(nodes, 100, 2)
	if s.TotalCapacityAh != 400 {
		t.Fatalf("total = %v, want 400", s.TotalCapacityAh)
	}
	if s.EffectiveDoD != 0.5 {
		t.Fatalf("dod = %v, want 0.5", s.EffectiveDoD)
	}
	if s.UsableCapacityAh != 200 {
		t.Fatalf("usable = %v, want 200", s.UsableCapacityAh)
	}
	if s.RequiredCapacityAh != 400 {
		t.Fatalf("required = %v, want 400", s.RequiredCapacityAh)
	}
	if s.EstimatedAutonomyDays != 2 {
		t.Fatalf("autonomy = %v, want 2", s.EstimatedAutonomyDays)
	}
	if s.Status != StatusOK {
		t.Fatalf("status = %v, want ok", s.Status)
	}
}

func TestSizeNoBattery(t *testing.T) {
	s := Size(nil, 100, 2)
	if s.TotalCapacityAh != 0 || s.UsableCapacityAh != 0 {
		t.Fatal("empty network should size to zero capacity")
	}
	if !math.IsInf(s.RequiredCapacityAh, 1) {
		t.Fatalf("required with zero DoD should be +Inf, got %v", s.RequiredCapacityAh)
	}
	if s.Status != StatusCritical {
		t.Fatalf("status = %v, want critical", s.Status)
	}
}
