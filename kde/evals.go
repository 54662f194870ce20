package kde

import (
	"context"
	"fmt"

	"github.com/groupkde/groupkde/common"
	"github.com/groupkde/groupkde/model"
	"github.com/groupkde/groupkde/utils"
	"go.uber.org/zap"
)

// StaticEvals estimates one density curve per sample set, every curve
// evaluated at the same shared points. results[i] belongs to samples[i]
// whatever order units finish in. The shared eval points are validated
// once, shared by reference, and never written by any worker. A unit
// with no samples produces an all-null curve.
//
// Non-finite inputs fail the whole call before any unit is computed:
// samples with common.ErrorInvalidSample, eval points with
// common.ErrorInvalidEvalPoint.
func StaticEvals(ctx context.Context, samples [][]float32, evalPoints []float32, opts ...Option) ([]model.DensityResult, error) {
	return staticCurve(ctx, samples, evalPoints, opts, false)
}

// Agg is StaticEvals for hosts that aggregate rows into per-key sample
// sets upstream. The computation is identical once the groups exist, so
// it delegates outright.
func Agg(ctx context.Context, samples [][]float32, evalPoints []float32, opts ...Option) ([]model.DensityResult, error) {
	return StaticEvals(ctx, samples, evalPoints, opts...)
}

// CdfStaticEvals is StaticEvals with the estimated distribution function
// in place of the density: values lie in [0, 1] and are nondecreasing
// along ascending eval points.
func CdfStaticEvals(ctx context.Context, samples [][]float32, evalPoints []float32, opts ...Option) ([]model.DensityResult, error) {
	return staticCurve(ctx, samples, evalPoints, opts, true)
}

func staticCurve(ctx context.Context, samples [][]float32, evalPoints []float32, opts []Option, cdf bool) ([]model.DensityResult, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger(ctx)
	if err := validateEvalPoints(evalPoints); err != nil {
		logger.Error("kde input rejected", zap.Error(err))
		return nil, err
	}
	if err := validateSampleSets(samples); err != nil {
		logger.Error("kde input rejected", zap.Error(err))
		return nil, err
	}

	engine := cfg.engine()
	estimate := engine.Estimate
	if cdf {
		estimate = engine.EstimateCDF
	}

	units := make([]model.WorkUnit, len(samples))
	for i := range samples {
		units[i] = model.WorkUnit{Samples: samples[i], EvalPoints: evalPoints}
	}
	return runParallel(ctx, cfg.workers, len(units), func(i int) model.DensityResult {
		return estimate(units[i])
	})
}

// DynamicEvals estimates one curve per sample set, each evaluated at its
// own points: samples[i] pairs with evalPoints[i]. A unit-count mismatch
// fails with common.ErrorShapeMismatch before anything is validated or
// computed.
func DynamicEvals(ctx context.Context, samples [][]float32, evalPoints [][]float32, opts ...Option) ([]model.DensityResult, error) {
	logger := utils.GetLogger(ctx)

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if len(samples) != len(evalPoints) {
		err := fmt.Errorf("%d sample sets vs %d eval point sets: %w",
			len(samples), len(evalPoints), common.ErrorShapeMismatch)
		logger.Error("kde input rejected", zap.Error(err))
		return nil, err
	}
	if err := validateSampleSets(samples); err != nil {
		logger.Error("kde input rejected", zap.Error(err))
		return nil, err
	}
	for i, points := range evalPoints {
		if err := validateEvalPoints(points); err != nil {
			err = fmt.Errorf("unit %d: %w", i, err)
			logger.Error("kde input rejected", zap.Error(err))
			return nil, err
		}
	}

	engine := cfg.engine()
	units := make([]model.WorkUnit, len(samples))
	for i := range samples {
		units[i] = model.WorkUnit{Samples: samples[i], EvalPoints: evalPoints[i]}
	}
	return runParallel(ctx, cfg.workers, len(units), func(i int) model.DensityResult {
		return engine.Estimate(units[i])
	})
}

// AggByKey groups row values by key in first-seen key order, then runs
// the aggregated path over the resulting sample sets. It serves hosts
// without a group-by of their own; hosts that group upstream should call
// Agg directly. keys and values are positionally paired and must have
// equal length. The returned keys align with the returned results.
func AggByKey[K comparable](ctx context.Context, keys []K, values []float32, evalPoints []float32, opts ...Option) ([]K, []model.DensityResult, error) {
	if len(keys) != len(values) {
		err := fmt.Errorf("%d keys vs %d values: %w", len(keys), len(values), common.ErrorShapeMismatch)
		utils.GetLogger(ctx).Error("kde input rejected", zap.Error(err))
		return nil, nil, err
	}

	grouped := make(map[K][]float32)
	order := make([]K, 0)
	for i, key := range keys {
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], values[i])
	}

	samples := make([][]float32, len(order))
	for i, key := range order {
		samples[i] = grouped[key]
	}

	res, err := Agg(ctx, samples, evalPoints, opts...)
	if err != nil {
		return nil, nil, err
	}
	return order, res, nil
}

// GridEvals derives each unit's eval points from its own data instead of
// taking them from the caller: a gridSize-point grid spanning the
// samples plus cut*h on each side (WithCut). gridSize <= 0 selects
// max(len(samples), DefaultGridSize) per unit. Units with no samples
// yield a null GridDensity.
func GridEvals(ctx context.Context, samples [][]float32, gridSize int, opts ...Option) ([]model.GridDensity, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := validateSampleSets(samples); err != nil {
		utils.GetLogger(ctx).Error("kde input rejected", zap.Error(err))
		return nil, err
	}

	engine := cfg.engine()
	return runParallel(ctx, cfg.workers, len(samples), func(i int) model.GridDensity {
		return engine.EstimateGrid(samples[i], gridSize)
	})
}

// QuantileEvals estimates, for every sample set, the values at the
// requested probabilities. Probabilities are validated once and must
// lie strictly inside (0, 1). Units with no samples yield a nil slice.
func QuantileEvals(ctx context.Context, samples [][]float32, ps []float64, opts ...Option) ([][]model.QuantileValue, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger(ctx)
	if err := validateQuantileProbs(ps); err != nil {
		logger.Error("kde input rejected", zap.Error(err))
		return nil, err
	}
	if err := validateSampleSets(samples); err != nil {
		logger.Error("kde input rejected", zap.Error(err))
		return nil, err
	}

	engine := cfg.engine()
	return runParallel(ctx, cfg.workers, len(samples), func(i int) []model.QuantileValue {
		qs, err := engine.Quantiles(samples[i], ps)
		if err != nil {
			return nil
		}
		return qs
	})
}
