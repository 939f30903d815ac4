package scene

// Ledger records the total length of every committed piece, grouped by
// diameter. Diameters are kept in the order they were first seen.
type Ledger struct {
	order   []float64
	lengths map[float64][]float64
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{lengths: make(map[float64][]float64)}
}

// Append records one piece length for a diameter.
func (l *Ledger) Append(diameter, length float64) {
	if _, ok := l.lengths[diameter]; !ok {
		l.order = append(l.order, diameter)
	}
	l.lengths[diameter] = append(l.lengths[diameter], length)
}

// Diameters returns the recorded diameters in first-seen order.
func (l *Ledger) Diameters() []float64 {
	out := make([]float64, len(l.order))
	copy(out, l.order)
	return out
}

// Lengths returns a copy of the piece lengths recorded for a diameter.
func (l *Ledger) Lengths(diameter float64) []float64 {
	src := l.lengths[diameter]
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Count returns the number of pieces recorded for a diameter.
func (l *Ledger) Count(diameter float64) int {
	return len(l.lengths[diameter])
}

// Total returns the summed length for a diameter.
func (l *Ledger) Total(diameter float64) float64 {
	var total float64
	for _, v := range l.lengths[diameter] {
		total += v
	}
	return total
}
