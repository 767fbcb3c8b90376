package reference

import (
	"testing"

	"github.com/kerguelen/boatgrid/core/model"
)

func TestCableSpecsAscending(t *testing.T) {
	specs := CableSpecs()
	if len(specs) == 0 {
		t.Fatal("cable table is empty")
	}
	for i := 1; i < len(specs); i++ {
		if specs[i].SectionMm2 <= specs[i-1].SectionMm2 {
			t.Fatalf("sections not ascending at index %d", i)
		}
		if specs[i].MaxCurrentA <= specs[i-1].MaxCurrentA {
			t.Fatalf("ratings not ascending at index %d", i)
		}
	}
}

func TestSpecForSection(t *testing.T) {
	spec, ok := SpecForSection(2.5)
	if !ok {
		t.Fatal("2.5mm² missing from table")
	}
	if spec.MaxCurrentA != 20 {
		t.Fatalf("2.5mm² rating = %v, want 20", spec.MaxCurrentA)
	}
	if _, ok := SpecForSection(3.3); ok {
		t.Fatal("non-standard section should not match")
	}
}

func TestSectionAtLeast(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.5, 1.5},
		{1.5, 1.5},
		{2.6, 4},
		{4.861, 6},
		{95, 95},
		{200, 95}, // beyond the table falls back to the largest section
	}
	for _, c := range cases {
		if got := SectionAtLeast(c.in); got != c.want {
			t.Errorf("SectionAtLeast(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSectionForCurrent(t *testing.T) {
	if got := SectionForCurrent(12.5); got != 1.5 {
		t.Fatalf("SectionForCurrent(12.5) = %v, want 1.5", got)
	}
	if got := SectionForCurrent(25); got != 4 {
		t.Fatalf("SectionForCurrent(25) = %v, want 4", got)
	}
	if got := SectionForCurrent(1000); got != 95 {
		t.Fatalf("SectionForCurrent(1000) = %v, want largest section", got)
	}
}

func TestFuseAtLeast(t *testing.T) {
	if got := FuseAtLeast(12.5); got != 15 {
		t.Fatalf("FuseAtLeast(12.5) = %v, want 15", got)
	}
	if got := FuseAtLeast(0); got != 5 {
		t.Fatalf("FuseAtLeast(0) = %v, want smallest rating", got)
	}
	if got := FuseAtLeast(10000); got != 300 {
		t.Fatalf("FuseAtLeast(10000) = %v, want largest rating", got)
	}
}

func TestDepthOfDischarge(t *testing.T) {
	cases := map[model.Chemistry]float64{
		model.ChemistryLead:    0.5,
		model.ChemistryAGM:     0.5,
		model.ChemistryGel:     0.5,
		model.ChemistryLiFePO4: 0.8,
		model.ChemistryLithium: 0.8,
	}
	for chem, want := range cases {
		if got := DepthOfDischarge(chem); got != want {
			t.Errorf("DoD(%s) = %v, want %v", chem, got, want)
		}
	}
	if got := DepthOfDischarge("unobtainium"); got != 0.5 {
		t.Errorf("unknown chemistry should get the conservative DoD, got %v", got)
	}
}
