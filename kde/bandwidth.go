package kde

import (
	"math"

	"github.com/groupkde/groupkde/common"
	"gonum.org/v1/gonum/stat"
)

// BandwidthEstimator derives a smoothing bandwidth from one sample set.
// Samples must be sorted ascending; the engine hands every estimator a
// sorted private copy, so caller data is never reordered.
type BandwidthEstimator interface {
	Bandwidth(sorted []float64) (float64, error)
}

// Silverman implements Silverman's rule of thumb.
//
// Degenerate sample sets are the consequential policy here: a single
// sample or an all-equal set has zero spread, and a literal reading of
// the rule would return h = 0 and blow the kernel sum up to Inf. A
// spread so small that the bandwidth vanishes when narrowed to float32
// is zero spread as far as the engine can tell. Both kinds of set get
// the Floor bandwidth instead, so every density stays finite.
type Silverman struct {
	// Floor is the bandwidth used when the estimated spread is zero or
	// too small to survive narrowing to float32. Must be positive and
	// finite at the float32 working width.
	Floor float64

	// Adjust scales the estimated bandwidth (h becomes h * Adjust).
	// The floor applies after scaling, so the floor guarantee holds
	// for any positive Adjust.
	Adjust float64
}

func NewSilverman() *Silverman {
	return &Silverman{
		Floor:  DefaultBandwidthFloor,
		Adjust: DefaultBandwidthAdjust,
	}
}

// Bandwidth returns h = 0.9 * spread * n^(-1/5), computed in double
// precision. Spreads too small to survive the float32 narrowing take
// the Floor, the same as zero spread. n = 0 has no defined bandwidth
// and fails with common.ErrorInsufficientData.
func (s *Silverman) Bandwidth(sorted []float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return 0, common.ErrorInsufficientData
	}

	h := silvermanConstant * selectSpread(sorted) * math.Pow(float64(n), -0.2)
	h *= s.Adjust
	if !positiveFinite(h) || float32(h) < minNarrowedBandwidth {
		h = s.Floor
	}
	return h, nil
}

// selectSpread picks the spread Silverman's rule smooths over:
// min(sigma, iqr/1.34) when both are positive and finite, whichever is
// usable when only one is, and zero otherwise.
func selectSpread(sorted []float64) float64 {
	stdDev := stat.StdDev(sorted, nil)

	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	iqr := (q75 - q25) / iqrNormalizer

	sigmaOk, iqrOk := positiveFinite(stdDev), positiveFinite(iqr)
	switch {
	case sigmaOk && iqrOk:
		return math.Min(stdDev, iqr)
	case sigmaOk:
		return stdDev
	case iqrOk:
		return iqr
	default:
		return 0
	}
}
