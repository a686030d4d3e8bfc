package genetic

import (
	"math"
	"math/rand"
)

// BitwiseMutation flips a fixed number of uniformly chosen bits in the
// IEEE-754 representation of a float64 gene. The perturbation is bit-level,
// not arithmetic: a single mutation can produce an extreme value, and
// constraint repair is left to pre-birth filtering and selection.
type BitwiseMutation struct {
	rng       *rand.Rand
	flipCount int
}

// NewBitwiseMutation creates a mutation flipping flipCount random bits.
func NewBitwiseMutation(flipCount int, rng *rand.Rand) *BitwiseMutation {
	return &BitwiseMutation{rng: rng, flipCount: flipCount}
}

// Mutate implements Mutation for a single float64 gene.
func (m *BitwiseMutation) Mutate(gene float64) float64 {
	bits := math.Float64bits(gene)
	for i := 0; i < m.flipCount; i++ {
		bits ^= 1 << uint(m.rng.Intn(64))
	}
	return math.Float64frombits(bits)
}

// VecMutation mutates every gene of a vector chromosome independently with
// the given probability, copying unmutated genes through unchanged. The
// probability uses the percentage convention and lies in [0, 100].
type VecMutation struct {
	probability  float64
	rng          *rand.Rand
	geneMutation Mutation[float64]
}

// NewVecMutation creates a VecMutation applying geneMutation to each gene
// with probability percent. It panics if probability lies outside [0, 100].
func NewVecMutation(probability float64, geneMutation Mutation[float64], rng *rand.Rand) *VecMutation {
	if probability < 0 || probability > 100 {
		panic("genetic: mutation probability outside [0, 100]")
	}
	return &VecMutation{
		probability:  probability,
		rng:          rng,
		geneMutation: geneMutation,
	}
}

// Mutate implements Mutation for vector chromosomes.
func (m *VecMutation) Mutate(chromosomes []float64) []float64 {
	result := make([]float64, len(chromosomes))
	for i, gene := range chromosomes {
		if m.rng.Float64()*100 < m.probability {
			result[i] = m.geneMutation.Mutate(gene)
		} else {
			result[i] = gene
		}
	}
	return result
}
