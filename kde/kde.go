package kde

import (
	"github.com/groupkde/groupkde/common"
	"github.com/groupkde/groupkde/model"
	"gonum.org/v1/gonum/floats"
)

// Engine runs the full estimate for one unit of work: bandwidth from the
// unit's samples, then the kernel at each eval point in order. An Engine
// holds no per-unit state, so one instance may serve any number of units
// concurrently.
type Engine struct {
	bandwidth BandwidthEstimator
	kernel    *GaussianKernel
	cut       float64
}

// NewEngine builds an engine around the given bandwidth estimator.
// A nil estimator selects Silverman's rule with the default floor.
func NewEngine(bandwidth BandwidthEstimator) *Engine {
	if bandwidth == nil {
		bandwidth = NewSilverman()
	}
	return &Engine{
		bandwidth: bandwidth,
		kernel:    NewGaussianKernel(),
		cut:       DefaultCut,
	}
}

// Estimate produces one unit's density curve: Values[i] is the density
// at unit.EvalPoints[i]. A unit with no samples yields an all-null
// result of the same length; an empty group is data, not an error.
func (e *Engine) Estimate(unit model.WorkUnit) model.DensityResult {
	return e.estimateWith(unit, e.kernel.Density)
}

// EstimateCDF is Estimate with the distribution function in place of
// the density.
func (e *Engine) EstimateCDF(unit model.WorkUnit) model.DensityResult {
	return e.estimateWith(unit, e.kernel.CDF)
}

func (e *Engine) estimateWith(unit model.WorkUnit, eval func([]float64, float64, float64) float64) model.DensityResult {
	if len(unit.Samples) == 0 {
		return model.NullDensity(len(unit.EvalPoints))
	}

	xs := widenSorted(unit.Samples)
	h, err := e.bandwidthFor(xs)
	if err != nil {
		return model.NullDensity(len(unit.EvalPoints))
	}

	hw := float64(h)
	values := make([]float32, len(unit.EvalPoints))
	valid := make([]bool, len(unit.EvalPoints))
	for i, x := range unit.EvalPoints {
		values[i] = float32(eval(xs, hw, float64(x)))
		valid[i] = true
	}
	return model.DensityResult{Values: values, Valid: valid}
}

// bandwidthFor narrows the double-precision bandwidth to the working
// storage width, the same narrowing every density value gets. A
// bandwidth that vanishes in that narrowing would poison every kernel
// sum, so the default floor is the last resort whatever the estimator
// answered.
func (e *Engine) bandwidthFor(sorted []float64) (float32, error) {
	h, err := e.bandwidth.Bandwidth(sorted)
	if err != nil {
		return 0, err
	}
	hw := float32(h)
	if !(hw >= minNarrowedBandwidth) { // catches zero, negatives, NaN
		hw = float32(DefaultBandwidthFloor)
	}
	return hw, nil
}

// EstimateGrid evaluates the unit's density over a generated grid
// spanning [min - cut*h, max + cut*h], so the curve runs past the data
// until the kernel tails reach zero. gridSize <= 0 selects
// max(len(samples), DefaultGridSize). A unit with no samples yields the
// zero GridDensity.
func (e *Engine) EstimateGrid(samples []float32, gridSize int) model.GridDensity {
	if len(samples) == 0 {
		return model.GridDensity{}
	}
	if gridSize <= 0 {
		gridSize = max(len(samples), DefaultGridSize)
	}

	xs := widenSorted(samples)
	h, err := e.bandwidthFor(xs)
	if err != nil {
		return model.GridDensity{}
	}
	hw := float64(h)

	a := floats.Min(xs) - e.cut*hw
	b := floats.Max(xs) + e.cut*hw
	grid := linspace(a, b, gridSize)

	out := model.GridDensity{
		Grid:   make([]float32, len(grid)),
		Values: make([]float32, len(grid)),
	}
	for i, x := range grid {
		out.Grid[i] = float32(x)
		out.Values[i] = float32(e.kernel.Density(xs, hw, x))
	}
	return out
}

// Quantiles inverts the estimated distribution at each requested
// probability. The CDF is evaluated over a grid spanning the data plus
// cut*h on both sides, then each p is linearly interpolated back to a
// value. Probabilities must lie strictly inside (0, 1); an empty sample
// set fails with common.ErrorInsufficientData.
func (e *Engine) Quantiles(samples []float32, ps []float64) ([]model.QuantileValue, error) {
	if len(samples) == 0 {
		return nil, common.ErrorInsufficientData
	}
	if err := validateQuantileProbs(ps); err != nil {
		return nil, err
	}

	xs := widenSorted(samples)
	h, err := e.bandwidthFor(xs)
	if err != nil {
		return nil, err
	}
	hw := float64(h)

	gridSize := max(len(xs), DefaultGridSize)
	grid := linspace(floats.Min(xs)-e.cut*hw, floats.Max(xs)+e.cut*hw, gridSize)
	cdf := make([]float64, len(grid))
	for i, x := range grid {
		cdf[i] = e.kernel.CDF(xs, hw, x)
	}

	res := make([]model.QuantileValue, len(ps))
	for i, p := range ps {
		res[i] = model.QuantileValue{
			Quantile: p,
			Value:    float32(invertCDF(grid, cdf, p)),
		}
	}
	return res, nil
}

// invertCDF interpolates the value at probability p out of a monotone
// CDF sampled on grid, clamping at the grid ends.
func invertCDF(grid, cdf []float64, p float64) float64 {
	if p <= cdf[0] {
		return grid[0]
	}
	last := len(cdf) - 1
	if p >= cdf[last] {
		return grid[last]
	}

	for i := 1; i <= last; i++ {
		if cdf[i] > p {
			lowerX, lowerP := grid[i-1], cdf[i-1]
			upperX, upperP := grid[i], cdf[i]
			return lowerX + (upperX-lowerX)*(p-lowerP)/(upperP-lowerP)
		}
	}
	return grid[last]
}
