// Package battery sizes the battery bank of a network: installed and
// usable capacity, the capacity a target autonomy requires and the
// autonomy the installed bank actually delivers.
package battery

import (
	"math"

	"github.com/kerguelen/boatgrid/core/model"
	"github.com/kerguelen/boatgrid/core/reference"
)

// Status classifies the bank against the autonomy target.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Sizing is the result of sizing the installed bank against a daily
// consumption and an autonomy target.
type Sizing struct {
	TotalCapacityAh       float64         `json:"total_capacity_ah"`
	UsableCapacityAh      float64         `json:"usable_capacity_ah"`
	RequiredCapacityAh    float64         `json:"required_capacity_ah"`
	EstimatedAutonomyDays float64         `json:"estimated_autonomy_days"`
	EffectiveDoD          float64         `json:"effective_dod"`
	DominantChemistry     model.Chemistry `json:"dominant_chemistry,omitempty"`
	Status                Status          `json:"status"`
}

// bankCapacityAh returns the installed capacity of a single battery node.
// Parallel banks multiply by quantity; series banks raise voltage, not
// capacity, so quantity is deliberately ignored there.
func bankCapacityAh(b model.BatteryAttrs) float64 {
	if b.Wiring() == model.BankSeries {
		return b.CapacityAh
	}
	return b.CapacityAh * float64(b.Count())
}

// TotalCapacityAh sums the installed capacity over all battery nodes.
func TotalCapacityAh(nodes []model.Node) float64 {
	var total float64
	for _, n := range nodes {
		if n.Type == model.NodeBattery && n.Battery != nil {
			total += bankCapacityAh(*n.Battery)
		}
	}
	return total
}

// DominantChemistry returns the chemistry holding the largest installed
// capacity. Ties resolve to the chemistry encountered first in node
// order. The boolean is false when the network has no battery.
func DominantChemistry(nodes []model.Node) (model.Chemistry, bool) {
	totals := make(map[model.Chemistry]float64)
	var order []model.Chemistry
	for _, n := range nodes {
		if n.Type != model.NodeBattery || n.Battery == nil {
			continue
		}
		c := n.Battery.Chemistry
		if _, seen := totals[c]; !seen {
			order = append(order, c)
		}
		totals[c] += bankCapacityAh(*n.Battery)
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, c := range order[1:] {
		if totals[c] > totals[best] {
			best = c
		}
	}
	return best, true
}

// RequiredCapacityAh returns the nominal capacity needed to cover the
// daily consumption for the given number of days at the given depth of
// discharge. A zero DoD yields +Inf: the requirement is unsatisfiable,
// not an error.
func RequiredCapacityAh(dailyConsumptionAh, daysAutonomy, dod float64) float64 {
	if dod == 0 {
		return math.Inf(1)
	}
	return dailyConsumptionAh * daysAutonomy / dod
}

// EstimatedAutonomyDays returns how many days the usable capacity covers
// the daily consumption. Zero consumption yields +Inf.
func EstimatedAutonomyDays(usableCapacityAh, dailyConsumptionAh float64) float64 {
	if dailyConsumptionAh == 0 {
		return math.Inf(1)
	}
	return usableCapacityAh / dailyConsumptionAh
}

// Classify grades an estimated autonomy against the target: ok at or
// above target, warning down to half the target, critical below.
func Classify(estimatedDays, targetDays float64) Status {
	switch {
	case estimatedDays >= targetDays:
		return StatusOK
	case estimatedDays >= targetDays*0.5:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// Size computes the full sizing picture for the installed bank.
func Size(nodes []model.Node, dailyConsumptionAh, targetDays float64) Sizing {
	s := Sizing{TotalCapacityAh: TotalCapacityAh(nodes)}
	if chem, ok := DominantChemistry(nodes); ok {
		s.DominantChemistry = chem
		s.EffectiveDoD = reference.DepthOfDischarge(chem)
	}
	s.UsableCapacityAh = s.TotalCapacityAh * s.EffectiveDoD
	s.RequiredCapacityAh = RequiredCapacityAh(dailyConsumptionAh, targetDays, s.EffectiveDoD)
	s.EstimatedAutonomyDays = EstimatedAutonomyDays(s.UsableCapacityAh, dailyConsumptionAh)
	s.Status = Classify(s.EstimatedAutonomyDays, targetDays)
	return s
}
