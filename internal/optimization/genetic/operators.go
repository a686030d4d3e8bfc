package genetic

// Creator produces the chromosomes of the initial generation.
type Creator[T any] interface {
	Create() []T
}

// Pairing selects the groups of parents to recombine. Each inner slice holds
// the population indices of one family.
type Pairing[T any] interface {
	GetPairs(population *Population[T]) [][]int
}

// Cross produces child chromosomes from a group of parent chromosomes. The
// children enter the population after mutation.
type Cross[T any] interface {
	Cross(parents []T) []T
}

// Mutation returns a possibly modified copy of a chromosome.
type Mutation[T any] interface {
	Mutate(chromosomes T) T
}

// PreBirth filters freshly mutated child chromosomes before they become
// individuals. It runs strictly after mutation and strictly before
// insertion, so an active filter keeps infeasible individuals from ever
// materializing.
type PreBirth[T any] interface {
	Filter(population *Population[T], children []T) []T
}

// Selection marks individuals dead according to a policy. It must not
// physically remove anything: removal is a separate population operation so
// several selectors can compose in order.
type Selection[T any] interface {
	Kill(population *Population[T])
}
