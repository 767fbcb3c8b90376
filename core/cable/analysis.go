// Package cable analyses one cable at a time: the current it carries,
// the voltage it drops, whether its section is adequate and what section
// and fuse the standards tables recommend for it.
package cable

import (
	"math"

	"github.com/kerguelen/boatgrid/core/energy"
	"github.com/kerguelen/boatgrid/core/model"
	"github.com/kerguelen/boatgrid/core/reference"
)

// Status classifies a cable's adequacy for the current it carries.
type Status string

const (
	StatusOK Status = "ok"
	// StatusWarning means the voltage drop exceeds the configured maximum.
	StatusWarning Status = "warning"
	// StatusOverload means the current exceeds the section's rating.
	StatusOverload Status = "overload"
)

// Params are the physical assumptions of the analysis.
type Params struct {
	// MaxDropPercent is the acceptable voltage drop in percent of nominal.
	MaxDropPercent float64
	// Resistivity is copper resistivity in ohm·mm²/m.
	Resistivity float64
}

// Analysis is the derived picture of one connection. A connection whose
// endpoints cannot be resolved yields a zero-valued row with Resolved
// false.
type Analysis struct {
	ConnectionID          string  `json:"connection_id"`
	Resolved              bool    `json:"resolved"`
	CurrentA              float64 `json:"current_a"`
	VoltageDropV          float64 `json:"voltage_drop_v"`
	VoltageDropPercent    float64 `json:"voltage_drop_percent"`
	PowerLossW            float64 `json:"power_loss_w"`
	Status                Status  `json:"status"`
	RecommendedSectionMm2 float64 `json:"recommended_section_mm2"`
	FuseRatingA           float64 `json:"fuse_rating_a"`
	Oversized             bool    `json:"oversized"`
}

// fuseMargin is the safety factor applied to the carried current when
// picking a fuse or an ampacity-driven section.
const fuseMargin = 1.25

// oversizeThreshold is the utilisation below which a cable larger than
// the smallest standard section is flagged as oversized.
const oversizeThreshold = 0.3

// InferCurrent estimates the current a cable carries from its endpoints.
// A consumer endpoint fixes the current to its draw. Failing that, a
// battery endpoint is assumed to see its C/5 charge/discharge current.
// TODO: let the editor attach an explicit current annotation per cable
// and prefer it over this inference.
func InferCurrent(from, to *model.Node) float64 {
	for _, n := range []*model.Node{from, to} {
		if n != nil && n.Type == model.NodeConsumer {
			return energy.Current(*n)
		}
	}
	for _, n := range []*model.Node{from, to} {
		if n != nil && n.Type == model.NodeBattery && n.Battery != nil {
			return n.Battery.CapacityAh / 5
		}
	}
	return 0
}

// VoltageDrop returns the voltage lost over the out-and-return run of a
// cable at the given current.
func VoltageDrop(currentA, lengthM, sectionMm2 float64, p Params) float64 {
	if sectionMm2 <= 0 {
		return 0
	}
	return 2 * p.Resistivity * lengthM * currentA / sectionMm2
}

// PowerLoss returns the heat dissipated in the cable in watts.
func PowerLoss(currentA, lengthM, sectionMm2 float64, p Params) float64 {
	if sectionMm2 <= 0 {
		return 0
	}
	return currentA * currentA * (2 * p.Resistivity * lengthM / sectionMm2)
}

// RecommendedSection returns the standard section to install for the
// given current, run length and nominal voltage. Both the drop-derived
// section and the ampacity-derived one are lower bounds; the larger of
// the two is rounded up to the next standard section, so the
// recommendation never overloads.
func RecommendedSection(currentA, lengthM, voltage float64, p Params) float64 {
	if currentA <= 0 {
		return reference.SmallestSectionMm2()
	}
	byAmpacity := reference.SectionForCurrent(currentA * fuseMargin)
	required := byAmpacity
	if voltage > 0 && p.MaxDropPercent > 0 {
		maxDropV := voltage * p.MaxDropPercent / 100
		byDrop := 2 * p.Resistivity * lengthM * currentA / maxDropV
		if byDrop > required {
			required = byDrop
		}
	}
	return reference.SectionAtLeast(required)
}

// RecommendFuse returns the smallest standard fuse rating covering the
// current with the safety margin. Currents beyond the table get the
// largest rating rather than an error.
func RecommendFuse(currentA float64) float64 {
	return reference.FuseAtLeast(currentA * fuseMargin)
}

// Oversized reports whether a cable is much larger than its load needs:
// utilisation under 30% of the rated current and a section above the
// smallest standard one. Advisory only.
func Oversized(currentA float64, spec reference.CableSpec) bool {
	return currentA < spec.MaxCurrentA*oversizeThreshold &&
		spec.SectionMm2 > reference.SmallestSectionMm2()
}

// Analyze derives the full picture for one connection given its resolved
// endpoints. Either endpoint may be nil; the row then stays zero-valued.
func Analyze(conn model.Connection, from, to *model.Node, p Params) Analysis {
	a := Analysis{ConnectionID: conn.ID}
	if from == nil || to == nil {
		return a
	}
	a.Resolved = true
	a.CurrentA = InferCurrent(from, to)
	a.VoltageDropV = VoltageDrop(a.CurrentA, conn.LengthM, conn.SectionMm2, p)
	a.PowerLossW = PowerLoss(a.CurrentA, conn.LengthM, conn.SectionMm2, p)

	voltage := from.Voltage
	if voltage > 0 {
		a.VoltageDropPercent = a.VoltageDropV / voltage * 100
	}

	a.Status = StatusOK
	spec, known := reference.SpecForSection(conn.SectionMm2)
	switch {
	case known && a.CurrentA > spec.MaxCurrentA:
		a.Status = StatusOverload
	case a.VoltageDropPercent > p.MaxDropPercent:
		a.Status = StatusWarning
	}
	if known {
		a.Oversized = Oversized(a.CurrentA, spec)
	}

	a.RecommendedSectionMm2 = RecommendedSection(a.CurrentA, conn.LengthM, voltage, p)
	a.FuseRatingA = RecommendFuse(a.CurrentA)
	return a
}

// AnalyzeAll analyses every connection, preserving input order. Rows for
// connections with a dangling endpoint are zero-valued, never dropped, so
// the caller can align results with its own connection list by index.
func AnalyzeAll(nodes []model.Node, conns []model.Connection, p Params) []Analysis {
	idx := model.NodeIndex(nodes)
	out := make([]Analysis, len(conns))
	for i, c := range conns {
		out[i] = Analyze(c, idx[c.FromNodeID], idx[c.ToNodeID], p)
	}
	return out
}

// TotalLossW sums the resistive losses over a set of analyses.
func TotalLossW(analyses []Analysis) float64 {
	var total float64
	for _, a := range analyses {
		total += a.PowerLossW
	}
	return total
}

// WorstDropPercent returns the largest voltage drop percentage seen.
func WorstDropPercent(analyses []Analysis) float64 {
	worst := 0.0
	for _, a := range analyses {
		worst = math.Max(worst, a.VoltageDropPercent)
	}
	return worst
}
