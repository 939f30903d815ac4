package model

import (
	"sort"

	"github.com/google/uuid"
)

// Remnant is a usable length of wire left on a spool after cutting.
type Remnant struct {
	ID       string  `json:"id"`
	Diameter float64 `json:"diameter"` // mm
	Spool    int     `json:"spool"`    // 1-based spool number it came from
	Length   float64 `json:"length"`   // mm
}

// MinRemnantLength is the shortest leftover (in mm) still worth keeping.
// Anything shorter is scrap.
const MinRemnantLength = 20.0

// DetectRemnants lists the usable leftovers of a spool plan. spools holds
// the piece lengths cut from each spool, in spool order.
func DetectRemnants(diameter, unitLength float64, spools [][]float64) []Remnant {
	var remnants []Remnant
	for i, pieces := range spools {
		var used float64
		for _, l := range pieces {
			used += l
		}
		left := unitLength - used
		if left < MinRemnantLength {
			continue
		}
		remnants = append(remnants, Remnant{
			ID:       uuid.New().String()[:8],
			Diameter: diameter,
			Spool:    i + 1,
			Length:   left,
		})
	}

	// Longest first
	sort.Slice(remnants, func(i, j int) bool {
		return remnants[i].Length > remnants[j].Length
	})
	return remnants
}

// TotalRemnantLength returns the summed length of all remnants in mm.
func TotalRemnantLength(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Length
	}
	return total
}
