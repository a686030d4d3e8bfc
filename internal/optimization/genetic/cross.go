package genetic

import (
	"math"
	"math/rand"
)

// unsignedBits is a fixed-width unsigned view of a gene's bit pattern. The
// bit-level operators are written once against this view instead of being
// duplicated per width.
type unsignedBits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// CrossBits performs single-point crossing of two bit patterns. The child
// takes a's bits at position pos and above and b's bits below pos; pos is
// counted from the least significant bit.
func CrossBits[U unsignedBits](a, b U, pos int) U {
	mask := ^U(0) << pos
	return a&mask | b&^mask
}

// CrossFloat32 performs single-point bit crossing on the IEEE-754
// representation of two float32 genes.
func CrossFloat32(a, b float32, pos int) float32 {
	return math.Float32frombits(CrossBits(math.Float32bits(a), math.Float32bits(b), pos))
}

// CrossFloat64 performs single-point bit crossing on the IEEE-754
// representation of two float64 genes.
func CrossFloat64(a, b float64, pos int) float64 {
	return math.Float64frombits(CrossBits(math.Float64bits(a), math.Float64bits(b), pos))
}

// CrossBitwise crosses two float64 genes at a uniformly random bit position.
// It returns a single child.
type CrossBitwise struct {
	rng *rand.Rand
}

// NewCrossBitwise creates a CrossBitwise drawing positions from rng.
func NewCrossBitwise(rng *rand.Rand) *CrossBitwise {
	return &CrossBitwise{rng: rng}
}

// Cross implements Cross for a single float64 gene. It panics unless called
// with exactly two parents.
func (c *CrossBitwise) Cross(parents []float64) []float64 {
	if len(parents) != 2 {
		panic("genetic: CrossBitwise needs exactly two parents")
	}
	pos := 1 + c.rng.Intn(63)
	return []float64{CrossFloat64(parents[0], parents[1], pos)}
}

// FloatCrossExp crosses two float64 genes by decoding them into sign,
// mantissa and exponent, single-point-crossing mantissa and exponent
// independently and taking the sign from a random parent.
type FloatCrossExp struct {
	rng *rand.Rand
}

// NewFloatCrossExp creates a FloatCrossExp drawing from rng.
func NewFloatCrossExp(rng *rand.Rand) *FloatCrossExp {
	return &FloatCrossExp{rng: rng}
}

// Cross implements Cross for a single float64 gene. It panics unless called
// with exactly two parents.
func (c *FloatCrossExp) Cross(parents []float64) []float64 {
	if len(parents) != 2 {
		panic("genetic: FloatCrossExp needs exactly two parents")
	}
	mantissa1, exponent1, sign1 := integerDecode(parents[0])
	mantissa2, exponent2, sign2 := integerDecode(parents[1])

	mantissaPos := 1 + c.rng.Intn(63)
	exponentPos := 1 + c.rng.Intn(15)

	mantissa := CrossBits(mantissa1, mantissa2, mantissaPos)
	exponent := int16(CrossBits(uint16(exponent1), uint16(exponent2), exponentPos))

	sign := sign1
	if c.rng.Intn(2) == 1 {
		sign = sign2
	}

	child := float64(sign) * float64(mantissa) * math.Exp2(float64(exponent))
	return []float64{child}
}

// integerDecode splits a float64 into mantissa, exponent and sign so that
// value == sign * mantissa * 2^exponent.
func integerDecode(f float64) (mantissa uint64, exponent int16, sign int8) {
	bits := math.Float64bits(f)
	sign = 1
	if bits>>63 != 0 {
		sign = -1
	}
	exponent = int16((bits >> 52) & 0x7ff)
	if exponent == 0 {
		mantissa = (bits & 0xfffffffffffff) << 1
	} else {
		mantissa = (bits & 0xfffffffffffff) | 0x10000000000000
	}
	exponent -= 1023 + 52
	return mantissa, exponent, sign
}

// CrossMean produces a single child as the arithmetic mean of two or more
// parent genes.
type CrossMean struct{}

// NewCrossMean creates a CrossMean.
func NewCrossMean() *CrossMean { return &CrossMean{} }

// Cross implements Cross for a single float64 gene. It panics with fewer
// than two parents.
func (*CrossMean) Cross(parents []float64) []float64 {
	if len(parents) < 2 {
		panic("genetic: CrossMean needs at least two parents")
	}
	sum := 0.0
	for _, p := range parents {
		sum += p
	}
	return []float64{sum / float64(len(parents))}
}

// CrossGeometricMean produces a single child as the geometric mean of two or
// more parent genes.
type CrossGeometricMean struct{}

// NewCrossGeometricMean creates a CrossGeometricMean.
func NewCrossGeometricMean() *CrossGeometricMean { return &CrossGeometricMean{} }

// Cross implements Cross for a single float64 gene. It panics with fewer
// than two parents.
func (*CrossGeometricMean) Cross(parents []float64) []float64 {
	if len(parents) < 2 {
		panic("genetic: CrossGeometricMean needs at least two parents")
	}
	product := 1.0
	for _, p := range parents {
		product *= p
	}
	return []float64{math.Pow(product, 1.0/float64(len(parents)))}
}

// VecCrossAllGenes applies a scalar-gene recombiner independently to every
// coordinate of two parent vectors and reassembles a single child vector.
type VecCrossAllGenes struct {
	geneCross Cross[float64]
}

// NewVecCrossAllGenes wraps a scalar-gene Cross into a vector Cross.
func NewVecCrossAllGenes(geneCross Cross[float64]) *VecCrossAllGenes {
	return &VecCrossAllGenes{geneCross: geneCross}
}

// Cross implements Cross for vector chromosomes. It panics unless called
// with exactly two parents. The child count is fixed at one: only the first
// gene returned by the scalar recombiner per coordinate is used.
func (c *VecCrossAllGenes) Cross(parents [][]float64) [][]float64 {
	if len(parents) != 2 {
		panic("genetic: VecCrossAllGenes needs exactly two parents")
	}
	parent1, parent2 := parents[0], parents[1]
	child := make([]float64, 0, len(parent1))
	for i := range parent1 {
		genes := c.geneCross.Cross([]float64{parent1[i], parent2[i]})
		child = append(child, genes[0])
	}
	return [][]float64{child}
}
