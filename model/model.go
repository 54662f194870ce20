package model

// WorkUnit pairs one group's samples with the points its density is
// evaluated at. Units are independent: the engine never lets one unit
// observe another unit's data or result.
//
// Both slices are read-only for the duration of the computation.
// EvalPoints may be shared by reference across many units.
type WorkUnit struct {
	Samples    []float32
	EvalPoints []float32
}

// DensityResult is one unit's output. Values[i] is the density at the
// unit's EvalPoints[i]; Valid[i] is false where the point is null.
// Both slices always have the same length as the unit's EvalPoints.
type DensityResult struct {
	Values []float32
	Valid  []bool
}

// NullDensity builds an all-null result for a unit with n eval points,
// used when the unit has no samples to estimate from.
func NullDensity(n int) DensityResult {
	return DensityResult{
		Values: make([]float32, n),
		Valid:  make([]bool, n),
	}
}

func (d DensityResult) Len() int {
	return len(d.Values)
}

// IsNull reports whether every point of the result is null.
func (d DensityResult) IsNull() bool {
	for _, ok := range d.Valid {
		if ok {
			return false
		}
	}
	return len(d.Valid) > 0
}

// AllValid reports whether no point of the result is null.
func (d DensityResult) AllValid() bool {
	for _, ok := range d.Valid {
		if !ok {
			return false
		}
	}
	return true
}

// GridDensity is the output of grid evaluation: the generated evaluation
// grid together with the density at each grid point. A nil Grid marks a
// unit that had no samples.
type GridDensity struct {
	Grid   []float32 `json:"grid,omitempty"`
	Values []float32 `json:"values,omitempty"`
}

func (g GridDensity) IsNull() bool {
	return g.Grid == nil
}

// QuantileValue is the estimated value at one requested quantile.
type QuantileValue struct {
	Value    float32 `json:"v,omitempty"`
	Quantile float64 `json:"q,omitempty"`
}
