package model

import (
	"fmt"
	"math"
)

// SpoolSpec describes the wire stocked for one diameter.
type SpoolSpec struct {
	Diameter      float64 `json:"diameter"`       // mm
	Label         string  `json:"label"`          // Display name
	UnitLength    float64 `json:"unit_length"`    // Length of one purchased spool (mm)
	OrderedLength float64 `json:"ordered_length"` // Total length on hand (mm)
	Color         string  `json:"color"`          // Schematic color; empty if the diameter cannot be drawn
}

// Spools returns how many whole spools the ordered length represents.
func (s SpoolSpec) Spools() int {
	if s.UnitLength <= 0 {
		return 0
	}
	return int(math.Floor(s.OrderedLength/s.UnitLength + 1e-9))
}

// Inventory holds the wire spools available to the build.
type Inventory struct {
	Spools       []SpoolSpec `json:"spools"`
	WarningColor string      `json:"warning_color"` // Schematic color for twisted pieces
}

// DefaultInventory returns the stocked wire: 0.5 and 1.0 mm steel on 300 mm
// spools and 1.58 mm wire on 304 mm spools.
func DefaultInventory() Inventory {
	return Inventory{
		Spools: []SpoolSpec{
			{Diameter: 0.5, Label: "Steel 0.5mm", UnitLength: 300, OrderedLength: 300 * 5, Color: "gray"},
			{Diameter: 1.0, Label: "Steel 1.0mm", UnitLength: 300, OrderedLength: 300 * 4, Color: "black"},
			{Diameter: 1.58, Label: "Brass 1.58mm", UnitLength: 304, OrderedLength: 304 * 2 * 2},
		},
		WarningColor: "red",
	}
}

// Find returns a pointer to the spool spec for the given diameter, or nil.
func (inv *Inventory) Find(diameter float64) *SpoolSpec {
	for i := range inv.Spools {
		if inv.Spools[i].Diameter == diameter {
			return &inv.Spools[i]
		}
	}
	return nil
}

// Spec returns the spool spec for a diameter or ErrUnknownDiameter.
func (inv *Inventory) Spec(diameter float64) (SpoolSpec, error) {
	s := inv.Find(diameter)
	if s == nil {
		return SpoolSpec{}, fmt.Errorf("%w: %g mm not stocked", ErrUnknownDiameter, diameter)
	}
	return *s, nil
}

// ColorFor returns the schematic color for a diameter. Diameters that are
// stocked but have no color cannot be drawn and yield ErrUnknownDiameter.
func (inv *Inventory) ColorFor(diameter float64) (string, error) {
	s := inv.Find(diameter)
	if s == nil || s.Color == "" {
		return "", fmt.Errorf("%w: no color for %g mm", ErrUnknownDiameter, diameter)
	}
	return s.Color, nil
}

// Diameters returns the stocked diameters in inventory order.
func (inv *Inventory) Diameters() []float64 {
	ds := make([]float64, len(inv.Spools))
	for i, s := range inv.Spools {
		ds[i] = s.Diameter
	}
	return ds
}
