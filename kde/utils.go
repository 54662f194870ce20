package kde

import (
	"fmt"
	"math"
	"sort"

	"github.com/groupkde/groupkde/common"
)

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make([]float64, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	return grid
}

// widenSorted copies the unit's samples into a sorted float64 slice.
// All internal arithmetic runs in double precision; the caller's slice
// is never touched.
func widenSorted(samples []float32) []float64 {
	xs := make([]float64, len(samples))
	for i, v := range samples {
		xs[i] = float64(v)
	}
	sort.Float64s(xs)
	return xs
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// validateSampleSets rejects NaN and infinite samples before any
// computation starts, so a failed batch never returns partial results.
// Empty sample sets pass: they become null results downstream.
func validateSampleSets(samples [][]float32) error {
	for i, set := range samples {
		for _, v := range set {
			if !finite32(v) {
				return fmt.Errorf("unit %d holds sample %v: %w", i, v, common.ErrorInvalidSample)
			}
		}
	}
	return nil
}

func validateEvalPoints(evalPoints []float32) error {
	for _, v := range evalPoints {
		if !finite32(v) {
			return fmt.Errorf("eval point %v: %w", v, common.ErrorInvalidEvalPoint)
		}
	}
	return nil
}

func validateQuantileProbs(ps []float64) error {
	for _, p := range ps {
		if math.IsNaN(p) || p <= 0 || p >= 1 {
			return fmt.Errorf("quantile %v outside (0, 1): %w", p, common.ErrorInvalidValue)
		}
	}
	return nil
}
