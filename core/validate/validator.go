// Package validate runs the whole-graph consistency checks over a
// network: source presence, voltage compatibility, cable adequacy,
// reachability and energy balance. Findings are values handed back to
// the editor, never errors.
package validate

import (
	"fmt"

	"github.com/kerguelen/boatgrid/core/battery"
	"github.com/kerguelen/boatgrid/core/cable"
	"github.com/kerguelen/boatgrid/core/energy"
	"github.com/kerguelen/boatgrid/core/model"
)

// Finding types, used as stable tags by the editor.
const (
	TypeNoSource            = "no_source"
	TypeVoltageMismatch     = "voltage_mismatch"
	TypeOvercurrent         = "overcurrent"
	TypeVoltageDrop         = "voltage_drop"
	TypeUndersizedCable     = "undersized_cable"
	TypeDisconnectedNode    = "disconnected_node"
	TypeUnpoweredConsumer   = "unpowered_consumer"
	TypeInsufficientBattery = "insufficient_battery"
	TypeEnergyImbalance     = "energy_imbalance"
)

// Finding is one validation error or warning.
type Finding struct {
	Type         string   `json:"type"`
	NodeIDs      []string `json:"node_ids,omitempty"`
	ConnectionID string   `json:"connection_id,omitempty"`
	Message      string   `json:"message"`
}

// Result aggregates every finding of a validation pass. IsValid is false
// exactly when at least one error was found; warnings alone leave the
// circuit valid.
type Result struct {
	IsValid  bool      `json:"is_valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// Config carries the calculator parameters the checks depend on.
type Config struct {
	Energy             energy.Params
	Cable              cable.Params
	TargetAutonomyDays float64
	// MinProductionRatio is the production/consumption ratio below which
	// the energy balance is reported as deficient.
	MinProductionRatio float64
}

// Validate derives the energy balance, battery sizing and cable analyses
// for the network and evaluates every check against them.
func Validate(nodes []model.Node, conns []model.Connection, cfg Config) Result {
	bal := energy.ComputeBalance(nodes, cfg.Energy)
	siz := battery.Size(nodes, bal.DailyConsumptionAh, cfg.TargetAutonomyDays)
	analyses := cable.AnalyzeAll(nodes, conns, cfg.Cable)
	return Evaluate(nodes, conns, analyses, bal, siz, cfg)
}

// Evaluate runs the checks against already-derived calculator outputs.
// Every check contributes independently; none short-circuits another.
func Evaluate(nodes []model.Node, conns []model.Connection, analyses []cable.Analysis, bal energy.Balance, siz battery.Sizing, cfg Config) Result {
	r := Result{Errors: []Finding{}, Warnings: []Finding{}}
	idx := model.NodeIndex(nodes)

	checkSource(nodes, &r)
	checkVoltages(conns, idx, &r)
	checkCables(conns, analyses, &r)
	checkDisconnected(nodes, conns, &r)
	checkReachability(nodes, conns, &r)
	checkBattery(siz, &r)
	checkEnergyBalance(bal, cfg.MinProductionRatio, &r)

	r.IsValid = len(r.Errors) == 0
	return r
}

func checkSource(nodes []model.Node, r *Result) {
	for _, n := range nodes {
		if n.Type == model.NodeBattery {
			return
		}
	}
	r.Errors = append(r.Errors, Finding{
		Type:    TypeNoSource,
		Message: "the circuit has no battery to supply it",
	})
}

func checkVoltages(conns []model.Connection, idx map[string]*model.Node, r *Result) {
	for _, c := range conns {
		from, to := idx[c.FromNodeID], idx[c.ToNodeID]
		if from == nil || to == nil {
			// Dangling reference: data-integrity condition, not a finding.
			continue
		}
		if from.Voltage != to.Voltage {
			r.Errors = append(r.Errors, Finding{
				Type:         TypeVoltageMismatch,
				NodeIDs:      []string{from.ID, to.ID},
				ConnectionID: c.ID,
				Message: fmt.Sprintf("cable connects %gV (%s) to %gV (%s)",
					from.Voltage, from.ID, to.Voltage, to.ID),
			})
		}
	}
}

func checkCables(conns []model.Connection, analyses []cable.Analysis, r *Result) {
	for i, a := range analyses {
		if !a.Resolved {
			continue
		}
		switch a.Status {
		case cable.StatusOverload:
			r.Errors = append(r.Errors, Finding{
				Type:         TypeOvercurrent,
				ConnectionID: a.ConnectionID,
				Message: fmt.Sprintf("cable carries %.1fA, above the rating of its %.1fmm² section",
					a.CurrentA, conns[i].SectionMm2),
			})
		case cable.StatusWarning:
			r.Warnings = append(r.Warnings, Finding{
				Type:         TypeVoltageDrop,
				ConnectionID: a.ConnectionID,
				Message:      fmt.Sprintf("voltage drop of %.1f%% exceeds the acceptable maximum", a.VoltageDropPercent),
			})
		case cable.StatusOK:
		}
		if i < len(conns) && conns[i].SectionMm2 < a.RecommendedSectionMm2 {
			r.Warnings = append(r.Warnings, Finding{
				Type:         TypeUndersizedCable,
				ConnectionID: a.ConnectionID,
				Message: fmt.Sprintf("installed section %.1fmm² is below the recommended %.1fmm²",
					conns[i].SectionMm2, a.RecommendedSectionMm2),
			})
		}
	}
}

func checkDisconnected(nodes []model.Node, conns []model.Connection, r *Result) {
	wired := make(map[string]bool, len(nodes))
	for _, c := range conns {
		wired[c.FromNodeID] = true
		wired[c.ToNodeID] = true
	}
	for _, n := range nodes {
		if n.Type.ConnectionOptional() || wired[n.ID] {
			continue
		}
		r.Warnings = append(r.Warnings, Finding{
			Type:    TypeDisconnectedNode,
			NodeIDs: []string{n.ID},
			Message: fmt.Sprintf("%s %s is not wired to anything", n.Type, n.ID),
		})
	}
}

func checkReachability(nodes []model.Node, conns []model.Connection, r *Result) {
	g := newCircuitGraph(nodes, conns)
	for _, n := range nodes {
		if n.Type != model.NodeConsumer {
			continue
		}
		if !g.reachesSource(n.ID) {
			r.Warnings = append(r.Warnings, Finding{
				Type:    TypeUnpoweredConsumer,
				NodeIDs: []string{n.ID},
				Message: fmt.Sprintf("consumer %s has no path to any power source", n.ID),
			})
		}
	}
}

func checkBattery(siz battery.Sizing, r *Result) {
	switch siz.Status {
	case battery.StatusWarning:
		r.Warnings = append(r.Warnings, Finding{
			Type: TypeInsufficientBattery,
			Message: fmt.Sprintf("battery bank covers %.1f days, below the autonomy target",
				siz.EstimatedAutonomyDays),
		})
	case battery.StatusCritical:
		r.Warnings = append(r.Warnings, Finding{
			Type: TypeInsufficientBattery,
			Message: fmt.Sprintf("battery bank covers only %.1f days, well short of the autonomy target",
				siz.EstimatedAutonomyDays),
		})
	case battery.StatusOK:
	}
}

func checkEnergyBalance(bal energy.Balance, minRatio float64, r *Result) {
	if bal.DailyProductionAh <= 0 || bal.DailyConsumptionAh <= 0 {
		return
	}
	ratio := bal.DailyProductionAh / bal.DailyConsumptionAh
	if ratio < minRatio {
		r.Warnings = append(r.Warnings, Finding{
			Type: TypeEnergyImbalance,
			Message: fmt.Sprintf("daily production covers only %.0f%% of consumption",
				ratio*100),
		})
	}
}
