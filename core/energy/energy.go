// Package energy derives current, power and daily energy figures for the
// nodes of a network. Every function is pure: same inputs, same outputs,
// no mutation of the caller's slices.
package energy

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kerguelen/boatgrid/core/model"
)

// Params are the project-level assumptions production estimates depend on.
type Params struct {
	// SunHoursPerDay is the equivalent full-sun hours used for solar yield.
	SunHoursPerDay float64
	// ShoreHoursPerDay is how long shore-power chargers run per day.
	// Zero models autonomy at anchor.
	ShoreHoursPerDay float64
}

// Current returns the draw of a consumer node in amperes. An explicit
// current wins; otherwise it is derived from power. Non-consumer nodes
// draw nothing.
func Current(n model.Node) float64 {
	if n.Type != model.NodeConsumer || n.Consumer == nil {
		return 0
	}
	if n.Consumer.CurrentA != 0 {
		return n.Consumer.CurrentA
	}
	if n.Consumer.PowerW != 0 && n.Voltage > 0 {
		return n.Consumer.PowerW / n.Voltage
	}
	return 0
}

// Power returns the draw of a consumer node in watts, the symmetric
// inverse of Current: an explicit power wins, otherwise derived from
// current.
func Power(n model.Node) float64 {
	if n.Type != model.NodeConsumer || n.Consumer == nil {
		return 0
	}
	if n.Consumer.PowerW != 0 {
		return n.Consumer.PowerW
	}
	return n.Consumer.CurrentA * n.Voltage
}

// DailyEnergyAh returns the daily consumption of a node in ampere-hours.
func DailyEnergyAh(n model.Node) float64 {
	if n.Type != model.NodeConsumer || n.Consumer == nil {
		return 0
	}
	return Current(n) * n.Consumer.DailyHours * n.Consumer.DutyCycle
}

// DailyEnergyWh returns the daily consumption of a node in watt-hours.
func DailyEnergyWh(n model.Node) float64 {
	return DailyEnergyAh(n) * n.Voltage
}

// DailyProductionAh returns the estimated daily yield of a producer node
// in ampere-hours. Non-producer nodes yield nothing.
func DailyProductionAh(n model.Node, p Params) float64 {
	switch n.Type {
	case model.NodeSolar:
		if n.Solar == nil || n.Voltage <= 0 {
			return 0
		}
		return n.Solar.MaxPowerW * float64(n.Solar.Count()) * p.SunHoursPerDay * n.Solar.EffectiveEfficiency() / n.Voltage
	case model.NodeAlternator:
		if n.Alternator == nil || n.Voltage <= 0 {
			return 0
		}
		return n.Alternator.MaxPowerW * n.Alternator.EffectiveEfficiency() / n.Voltage * n.Alternator.EngineHoursPerDay
	case model.NodeCharger:
		if n.Charger == nil || n.Voltage <= 0 {
			return 0
		}
		return n.Charger.MaxPowerW / n.Voltage * p.ShoreHoursPerDay
	default:
		return 0
	}
}

// Balance aggregates consumption and production over a whole network.
type Balance struct {
	DailyConsumptionAh float64 `json:"daily_consumption_ah"`
	DailyConsumptionWh float64 `json:"daily_consumption_wh"`
	TotalLoadW         float64 `json:"total_load_w"`

	DailyProductionAh float64 `json:"daily_production_ah"`
	SolarDailyAh      float64 `json:"solar_daily_ah"`
	AlternatorDailyAh float64 `json:"alternator_daily_ah"`
	ChargerDailyAh    float64 `json:"charger_daily_ah"`
}

// ComputeBalance sums per-node figures over the network. The sums are
// plain additions, so the result does not depend on node order.
func ComputeBalance(nodes []model.Node, p Params) Balance {
	consAh := make([]float64, 0, len(nodes))
	consWh := make([]float64, 0, len(nodes))
	loadW := make([]float64, 0, len(nodes))
	var b Balance
	for _, n := range nodes {
		switch n.Type {
		case model.NodeConsumer:
			consAh = append(consAh, DailyEnergyAh(n))
			consWh = append(consWh, DailyEnergyWh(n))
			loadW = append(loadW, Power(n))
		case model.NodeSolar:
			b.SolarDailyAh += DailyProductionAh(n, p)
		case model.NodeAlternator:
			b.AlternatorDailyAh += DailyProductionAh(n, p)
		case model.NodeCharger:
			b.ChargerDailyAh += DailyProductionAh(n, p)
		case model.NodeBattery, model.NodeInverter, model.NodeBus, model.NodeFuse, model.NodeSwitch:
			// Storage and topology nodes neither consume nor produce daily energy.
		}
	}
	b.DailyConsumptionAh = floats.Sum(consAh)
	b.DailyConsumptionWh = floats.Sum(consWh)
	b.TotalLoadW = floats.Sum(loadW)
	b.DailyProductionAh = b.SolarDailyAh + b.AlternatorDailyAh + b.ChargerDailyAh
	return b
}
