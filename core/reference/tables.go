// Package reference holds the static engineering tables the calculators
// look values up in: standard cable cross-sections with their ratings,
// standard fuse ratings and the usable depth of discharge per battery
// chemistry.
package reference

import (
	"sort"

	"github.com/kerguelen/boatgrid/core/model"
)

// CableSpec is one row of the standard cable table.
type CableSpec struct {
	SectionMm2       float64 `json:"section_mm2"`
	MaxCurrentA      float64 `json:"max_current_a"`
	RecommendedFuseA float64 `json:"recommended_fuse_a"`
	ResistancePerKm  float64 `json:"resistance_per_km"` // ohm/km at 20°C, copper
}

// cableSpecs lists the standard marine DC sections, ascending.
var cableSpecs = []CableSpec{
	{SectionMm2: 1.5, MaxCurrentA: 15, RecommendedFuseA: 10, ResistancePerKm: 11.67},
	{SectionMm2: 2.5, MaxCurrentA: 20, RecommendedFuseA: 15, ResistancePerKm: 7.0},
	{SectionMm2: 4, MaxCurrentA: 30, RecommendedFuseA: 25, ResistancePerKm: 4.38},
	{SectionMm2: 6, MaxCurrentA: 40, RecommendedFuseA: 30, ResistancePerKm: 2.92},
	{SectionMm2: 10, MaxCurrentA: 60, RecommendedFuseA: 50, ResistancePerKm: 1.75},
	{SectionMm2: 16, MaxCurrentA: 80, RecommendedFuseA: 70, ResistancePerKm: 1.09},
	{SectionMm2: 25, MaxCurrentA: 110, RecommendedFuseA: 100, ResistancePerKm: 0.7},
	{SectionMm2: 35, MaxCurrentA: 140, RecommendedFuseA: 125, ResistancePerKm: 0.5},
	{SectionMm2: 50, MaxCurrentA: 180, RecommendedFuseA: 150, ResistancePerKm: 0.35},
	{SectionMm2: 70, MaxCurrentA: 225, RecommendedFuseA: 200, ResistancePerKm: 0.25},
	{SectionMm2: 95, MaxCurrentA: 275, RecommendedFuseA: 250, ResistancePerKm: 0.18},
}

// fuseRatings lists the standard fuse ratings in amperes, ascending.
var fuseRatings = []float64{5, 10, 15, 20, 25, 30, 40, 50, 60, 70, 80, 100, 125, 150, 175, 200, 250, 300}

// depthOfDischarge maps a chemistry to the fraction of nominal capacity
// that can be drawn without harming the bank.
var depthOfDischarge = map[model.Chemistry]float64{
	model.ChemistryLead:    0.5,
	model.ChemistryAGM:     0.5,
	model.ChemistryGel:     0.5,
	model.ChemistryLiFePO4: 0.8,
	model.ChemistryLithium: 0.8,
}

// CableSpecs returns a copy of the standard cable table, ascending by
// section.
func CableSpecs() []CableSpec {
	out := make([]CableSpec, len(cableSpecs))
	copy(out, cableSpecs)
	return out
}

// SmallestSectionMm2 returns the smallest standard section.
func SmallestSectionMm2() float64 { return cableSpecs[0].SectionMm2 }

// LargestSectionMm2 returns the largest standard section.
func LargestSectionMm2() float64 { return cableSpecs[len(cableSpecs)-1].SectionMm2 }

// SpecForSection returns the table row for an exact section match.
func SpecForSection(sectionMm2 float64) (CableSpec, bool) {
	for _, s := range cableSpecs {
		if s.SectionMm2 == sectionMm2 {
			return s, true
		}
	}
	return CableSpec{}, false
}

// SectionAtLeast rounds a raw section requirement up to the next standard
// section. Requirements above the table fall back to the largest section.
func SectionAtLeast(sectionMm2 float64) float64 {
	i := sort.Search(len(cableSpecs), func(i int) bool {
		return cableSpecs[i].SectionMm2 >= sectionMm2
	})
	if i == len(cableSpecs) {
		return LargestSectionMm2()
	}
	return cableSpecs[i].SectionMm2
}

// SectionForCurrent returns the smallest standard section whose rated
// current covers the given current, falling back to the largest section.
func SectionForCurrent(currentA float64) float64 {
	i := sort.Search(len(cableSpecs), func(i int) bool {
		return cableSpecs[i].MaxCurrentA >= currentA
	})
	if i == len(cableSpecs) {
		return LargestSectionMm2()
	}
	return cableSpecs[i].SectionMm2
}

// FuseRatings returns a copy of the standard fuse ratings, ascending.
func FuseRatings() []float64 {
	out := make([]float64, len(fuseRatings))
	copy(out, fuseRatings)
	return out
}

// FuseAtLeast returns the smallest standard fuse rating covering the
// target. When the target exceeds every rating the largest one is
// returned rather than an error.
func FuseAtLeast(targetA float64) float64 {
	i := sort.Search(len(fuseRatings), func(i int) bool {
		return fuseRatings[i] >= targetA
	})
	if i == len(fuseRatings) {
		return fuseRatings[len(fuseRatings)-1]
	}
	return fuseRatings[i]
}

// DepthOfDischarge returns the usable capacity fraction for a chemistry.
// Unknown chemistries get the conservative lead-acid figure.
func DepthOfDischarge(c model.Chemistry) float64 {
	if dod, ok := depthOfDischarge[c]; ok {
		return dod
	}
	return depthOfDischarge[model.ChemistryLead]
}
