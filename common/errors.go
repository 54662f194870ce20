package common

import "errors"

var (
	// ErrorInsufficientData is returned when a bandwidth is requested for an
	// empty sample set. At the batch level an empty group is not fatal: the
	// engine maps it to a null density result instead.
	ErrorInsufficientData = errors.New("insufficient data")

	// ErrorShapeMismatch is returned when paired per-unit inputs disagree on
	// the unit count. The whole call fails before any computation starts.
	ErrorShapeMismatch = errors.New("shape mismatch")

	// ErrorInvalidSample marks a NaN or infinite sample value.
	ErrorInvalidSample = errors.New("invalid sample")

	// ErrorInvalidEvalPoint marks a NaN or infinite evaluation point.
	ErrorInvalidEvalPoint = errors.New("invalid eval point")

	// ErrorInvalidValue marks malformed configuration or parameters.
	ErrorInvalidValue = errors.New("invalid value")
)
