package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullDensity(t *testing.T) {
	res := NullDensity(4)
	assert.Equal(t, 4, res.Len())
	assert.True(t, res.IsNull())
	assert.False(t, res.AllValid())
	for i := range res.Values {
		assert.Zero(t, res.Values[i])
		assert.False(t, res.Valid[i])
	}
}

func TestDensityResultValidity(t *testing.T) {
	mixed := DensityResult{Values: []float32{1, 0, 2}, Valid: []bool{true, false, true}}
	assert.False(t, mixed.IsNull())
	assert.False(t, mixed.AllValid())

	full := DensityResult{Values: []float32{1, 2}, Valid: []bool{true, true}}
	assert.False(t, full.IsNull())
	assert.True(t, full.AllValid())

	// A zero-length result is empty, not null.
	var empty DensityResult
	assert.False(t, empty.IsNull())
	assert.True(t, empty.AllValid())
	assert.Zero(t, empty.Len())
}

func TestGridDensityNull(t *testing.T) {
	assert.True(t, GridDensity{}.IsNull())
	assert.False(t, GridDensity{Grid: []float32{1}, Values: []float32{0.2}}.IsNull())
}
