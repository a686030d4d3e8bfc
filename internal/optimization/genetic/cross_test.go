package genetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenyay/optlib/internal/optimization"
)

func TestCrossBits(t *testing.T) {
	const max = ^uint64(0)

	// High bits from the first parent, low bits from the second.
	assert.Equal(t, uint64(0b1111), CrossBits(uint64(0), max, 4))
	assert.Equal(t, max&^uint64(0b1111), CrossBits(max, uint64(0), 4))

	// At position 63 only the top bit comes from the first parent.
	assert.Equal(t, uint64(1)<<63|(max>>1), CrossBits(uint64(1)<<63, max>>1, 63))

	// Narrow widths share the same routine.
	assert.Equal(t, uint16(0xabcd), CrossBits(uint16(0xab00), uint16(0x00cd), 8))
}

func TestCrossFloat64(t *testing.T) {
	// Crossing above the mantissa keeps the second parent's mantissa bits
	// and takes sign and exponent from the first.
	child := CrossFloat64(2.0, 3.0, 52)
	bits2, bits3 := math.Float64bits(2.0), math.Float64bits(3.0)
	assert.Equal(t, bits2&^uint64(1<<52-1)|bits3&(1<<52-1), math.Float64bits(child))

	// Identical parents always reproduce themselves.
	for pos := 1; pos < 64; pos++ {
		assert.Equal(t, 1.5, CrossFloat64(1.5, 1.5, pos))
	}
}

func TestCrossBitwiseParentCount(t *testing.T) {
	cross := NewCrossBitwise(optimization.NewRand(1))
	assert.Panics(t, func() { cross.Cross([]float64{1.0}) })
	assert.Panics(t, func() { cross.Cross([]float64{1.0, 2.0, 3.0}) })

	children := cross.Cross([]float64{4.0, 4.0})
	require.Len(t, children, 1)
	assert.Equal(t, 4.0, children[0])
}

func TestIntegerDecode(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"positive", 6.25},
		{"negative", -123.456},
		{"small", 1e-30},
		{"large", 1e30},
		{"subnormal", 5e-324},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mantissa, exponent, sign := integerDecode(tt.value)
			rebuilt := float64(sign) * float64(mantissa) * math.Exp2(float64(exponent))
			assert.Equal(t, tt.value, rebuilt)
		})
	}
}

func TestFloatCrossExpIdenticalParents(t *testing.T) {
	cross := NewFloatCrossExp(optimization.NewRand(3))
	for i := 0; i < 100; i++ {
		children := cross.Cross([]float64{42.5, 42.5})
		require.Len(t, children, 1)
		assert.Equal(t, 42.5, children[0])
	}
}

func TestCrossMean(t *testing.T) {
	cross := NewCrossMean()
	assert.Panics(t, func() { cross.Cross([]float64{1.0}) })

	assert.Equal(t, []float64{2.0}, cross.Cross([]float64{1.0, 3.0}))
	assert.Equal(t, []float64{2.0}, cross.Cross([]float64{1.0, 2.0, 3.0}))
}

func TestCrossGeometricMean(t *testing.T) {
	cross := NewCrossGeometricMean()
	assert.Panics(t, func() { cross.Cross([]float64{1.0}) })

	children := cross.Cross([]float64{2.0, 8.0})
	require.Len(t, children, 1)
	assert.InDelta(t, 4.0, children[0], 1e-12)
}

func TestVecCrossAllGenes(t *testing.T) {
	cross := NewVecCrossAllGenes(NewCrossMean())
	assert.Panics(t, func() { cross.Cross([][]float64{{1, 2}}) })

	children := cross.Cross([][]float64{{1, 10}, {3, 20}})
	require.Len(t, children, 1)
	assert.Equal(t, []float64{2, 15}, children[0])
}
