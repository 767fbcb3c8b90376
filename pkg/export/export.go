// Package export writes analysis results in formats other tools consume.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kerguelen/boatgrid/core/cable"
	"github.com/kerguelen/boatgrid/core/engine"
)

// WriteJSON writes the full analysis result to w in JSON format.
func WriteJSON(w io.Writer, res engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCableCSV writes the per-cable analyses to w as CSV.
func WriteCableCSV(w io.Writer, analyses []cable.Analysis) error {
	cw := csv.NewWriter(w)
	header := []string{
		"connection_id", "current_a", "voltage_drop_v", "voltage_drop_percent",
		"power_loss_w", "status", "recommended_section_mm2", "fuse_rating_a",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range analyses {
		rec := []string{
			a.ConnectionID,
			fmtFloat(a.CurrentA),
			fmtFloat(a.VoltageDropV),
			fmtFloat(a.VoltageDropPercent),
			fmtFloat(a.PowerLossW),
			string(a.Status),
			fmtFloat(a.RecommendedSectionMm2),
			fmtFloat(a.FuseRatingA),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
