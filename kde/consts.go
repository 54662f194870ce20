package kde

import "math"

const (
	// Silverman's rule of thumb: h = 0.9 * min(sigma, iqr/1.34) * n^(-1/5)
	silvermanConstant = 0.9
	iqrNormalizer     = 1.34

	// 1 / sqrt(2 * pi)
	gaussNorm = 0.3989422804014327

	// minNarrowedBandwidth is the narrowest float32 bandwidth the kernel
	// can take: below it the peak density gaussNorm/h no longer fits in a
	// float32, and at exactly zero the kernel sum turns into NaN. A
	// bandwidth (or floor) under it is degenerate at working precision.
	minNarrowedBandwidth = 2 * gaussNorm / math.MaxFloat32

	// DefaultBandwidthFloor replaces the bandwidth of degenerate sample
	// sets (a single sample, or all samples equal) where the spread is
	// zero. A zero bandwidth would turn the kernel sum into NaN or Inf;
	// the floor keeps every density value finite.
	DefaultBandwidthFloor = 1e-3

	// DefaultBandwidthAdjust leaves Silverman's bandwidth unscaled.
	DefaultBandwidthAdjust = 1.0

	// DefaultCut extends a generated grid cut*h past the sample extremes
	// so the kernel tails decay to zero inside the grid.
	DefaultCut = 3.0

	DefaultGridSize = 100
)
