package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/WireBend/internal/model"
	"github.com/rs/zerolog/log"
)

// fitTolerance absorbs float noise when a piece exactly fills a spool.
const fitTolerance = 1e-9

// Arrangement is an ordering of piece lengths that fits the ordered spools.
type Arrangement struct {
	Diameter     float64
	Order        []float64 // Piece lengths in cutting order
	Spools       [][]int   // Per spool, indices into the validated length list
	Permutations int       // Orderings tried, including the successful one
}

// SpoolLengths returns, per spool, the lengths cut from it.
func (a Arrangement) SpoolLengths(lengths []float64) [][]float64 {
	out := make([][]float64, len(a.Spools))
	for i, idxs := range a.Spools {
		out[i] = make([]float64, len(idxs))
		for j, idx := range idxs {
			out[i][j] = lengths[idx]
		}
	}
	return out
}

// Remnants returns the usable leftovers of the arrangement.
func (a Arrangement) Remnants(lengths []float64, unitLength float64) []model.Remnant {
	return model.DetectRemnants(a.Diameter, unitLength, a.SpoolLengths(lengths))
}

// Validator checks whether a diameter's pieces can be cut from the spools
// on hand, searching orderings of the pieces.
type Validator struct {
	Inventory       model.Inventory
	MaxPermutations int // 0 means unbounded
}

func New(inv model.Inventory, maxPermutations int) *Validator {
	return &Validator{Inventory: inv, MaxPermutations: maxPermutations}
}

// Validate searches the distinct orderings of lengths for one that, cut in
// sequence with next-fit spool changes, uses no more spools than ordered.
// An empty list always succeeds.
func (v *Validator) Validate(diameter float64, lengths []float64) (Arrangement, error) {
	spec, err := v.Inventory.Spec(diameter)
	if err != nil {
		return Arrangement{}, err
	}
	return v.validate(spec, lengths)
}

func (v *Validator) validate(spec model.SpoolSpec, lengths []float64) (Arrangement, error) {
	res := Arrangement{Diameter: spec.Diameter}
	if len(lengths) == 0 {
		return res, nil
	}

	maxSpools := spec.Spools()
	var total float64
	for i, l := range lengths {
		if math.IsNaN(l) || math.IsInf(l, 0) || l <= 0 {
			return res, fmt.Errorf("%w: piece %d of %g mm wire is %g mm",
				model.ErrInvalidLength, i, spec.Diameter, l)
		}
		if l > spec.UnitLength+fitTolerance {
			return res, fmt.Errorf("%w: %.1f mm piece exceeds %.0f mm spool of %g mm wire",
				model.ErrNoArrangementFound, l, spec.UnitLength, spec.Diameter)
		}
		total += l
	}
	if total > float64(maxSpools)*spec.UnitLength+fitTolerance {
		return res, fmt.Errorf("%w: %.1f mm of %g mm wire needed, %.0f mm ordered",
			model.ErrNoArrangementFound, total, spec.Diameter, spec.OrderedLength)
	}

	// Start from the lexicographically smallest ordering so each distinct
	// ordering of equal lengths is visited exactly once.
	idx := make([]int, len(lengths))
	for i := range idx {
		idx[i] = i
	}
	less := func(a, b int) bool { return lengths[a] < lengths[b] }
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })

	for {
		res.Permutations++
		if spools, ok := pack(idx, lengths, spec.UnitLength, maxSpools); ok {
			res.Spools = spools
			res.Order = make([]float64, len(idx))
			for i, k := range idx {
				res.Order[i] = lengths[k]
			}
			log.Debug().
				Float64("diameter", spec.Diameter).
				Int("pieces", len(lengths)).
				Int("spools", len(spools)).
				Int("permutations", res.Permutations).
				Msg("arrangement found")
			return res, nil
		}
		if !nextPermutation(idx, less) {
			break
		}
		if v.MaxPermutations > 0 && res.Permutations >= v.MaxPermutations {
			return res, fmt.Errorf("%w: %d orderings of %g mm wire tried",
				model.ErrSearchExhausted, res.Permutations, spec.Diameter)
		}
	}
	return res, fmt.Errorf("%w: %d orderings of %g mm wire tried",
		model.ErrNoArrangementFound, res.Permutations, spec.Diameter)
}

// pack cuts pieces in order, opening a new spool whenever the next piece
// does not fit the remainder of the current one.
func pack(order []int, lengths []float64, unit float64, maxSpools int) ([][]int, bool) {
	var spools [][]int
	remaining := 0.0
	for _, k := range order {
		l := lengths[k]
		if len(spools) == 0 || l > remaining+fitTolerance {
			if len(spools) == maxSpools {
				return nil, false
			}
			spools = append(spools, nil)
			remaining = unit
		}
		spools[len(spools)-1] = append(spools[len(spools)-1], k)
		remaining -= l
	}
	return spools, true
}

// nextPermutation rearranges s into the next ordering in lexicographic order
// under less. It returns false once s holds the last ordering.
func nextPermutation(s []int, less func(a, b int) bool) bool {
	i := len(s) - 2
	for i >= 0 && !less(s[i], s[i+1]) {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(s) - 1
	for !less(s[i], s[j]) {
		j--
	}
	s[i], s[j] = s[j], s[i]
	for a, b := i+1, len(s)-1; a < b; a, b = a+1, b-1 {
		s[a], s[b] = s[b], s[a]
	}
	return true
}

// ValidateAll validates every diameter in the given order. A failing
// diameter does not stop the others.
func (v *Validator) ValidateAll(diameters []float64, lengthsOf func(float64) []float64) (map[float64]Arrangement, map[float64]error) {
	found := make(map[float64]Arrangement)
	failed := make(map[float64]error)
	for _, d := range diameters {
		arr, err := v.Validate(d, lengthsOf(d))
		if err != nil {
			failed[d] = err
			continue
		}
		found[d] = arr
	}
	return found, failed
}
