package model

import "math"

// SpoolEstimate holds the results of a wire purchasing calculation for one diameter.
type SpoolEstimate struct {
	Diameter          float64 `json:"diameter"`            // mm
	TotalLength       float64 `json:"total_length"`        // Sum of piece lengths (mm)
	UnitLength        float64 `json:"unit_length"`         // Length of one spool (mm)
	SpoolsNeededExact float64 `json:"spools_needed_exact"` // Exact fractional number of spools
	SpoolsNeededMin   int     `json:"spools_needed_min"`   // Minimum spools (ceiling of exact)
	SpoolsWithWaste   int     `json:"spools_with_waste"`   // Recommended spools including waste factor
	SpoolsOrdered     int     `json:"spools_ordered"`      // Whole spools on hand
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 10 for 10%)
	UsedPercent       float64 `json:"used_percent"`        // Total length as a share of ordered length
}

// Shortfall returns how many extra spools must be bought, never negative.
func (e SpoolEstimate) Shortfall() int {
	if e.SpoolsWithWaste > e.SpoolsOrdered {
		return e.SpoolsWithWaste - e.SpoolsOrdered
	}
	return 0
}

// CalculateSpoolEstimate computes how many spools a list of piece lengths needs.
// It ignores how pieces fall across spools; see the arrangement validator for that.
func CalculateSpoolEstimate(lengths []float64, spec SpoolSpec, wastePercent float64) SpoolEstimate {
	var total float64
	for _, l := range lengths {
		total += l
	}

	est := SpoolEstimate{
		Diameter:      spec.Diameter,
		TotalLength:   total,
		UnitLength:    spec.UnitLength,
		SpoolsOrdered: spec.Spools(),
		WastePercent:  wastePercent,
	}
	if spec.OrderedLength > 0 {
		est.UsedPercent = total / spec.OrderedLength * 100
	}
	if spec.UnitLength <= 0 {
		return est
	}

	est.SpoolsNeededExact = total / spec.UnitLength
	est.SpoolsNeededMin = int(math.Ceil(est.SpoolsNeededExact))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.SpoolsWithWaste = int(math.Ceil(est.SpoolsNeededExact * wasteFactor))
	if est.SpoolsWithWaste < est.SpoolsNeededMin {
		est.SpoolsWithWaste = est.SpoolsNeededMin
	}
	return est
}
