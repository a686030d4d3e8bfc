// Package testfunc provides classic benchmark objectives for exercising the
// optimizers. Every function takes a coordinate vector and returns the value
// to minimize.
package testfunc

import (
	"math"
	"sort"
)

// Paraboloid is a shifted sphere with its global minimum of 0 at
// x_i = i + 1, so the optimum is (1, 2, 3, ...).
func Paraboloid(x []float64) float64 {
	result := 0.0
	for i, v := range x {
		d := v - float64(i+1)
		result += d * d
	}
	return result
}

// Schwefel is a multimodal benchmark with its global minimum of 0 at
// x_i = 420.9687 on the [-500, 500] hypercube.
func Schwefel(x []float64) float64 {
	result := 0.0
	for _, v := range x {
		result += v * math.Sin(math.Sqrt(math.Abs(v)))
	}
	return 418.9829*float64(len(x)) - result
}

// Rastrigin is a highly multimodal benchmark with its global minimum of 0 at
// the origin, typically searched on [-5.12, 5.12].
func Rastrigin(x []float64) float64 {
	result := 10.0 * float64(len(x))
	for _, v := range x {
		result += v*v - 10.0*math.Cos(2.0*math.Pi*v)
	}
	return result
}

// Rosenbrock is a unimodal valley benchmark with its global minimum of 0 at
// (1, 1, ..., 1).
func Rosenbrock(x []float64) float64 {
	result := 0.0
	for i := 0; i+1 < len(x); i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1.0 - x[i]
		result += 100.0*a*a + b*b
	}
	return result
}

// Benchmark couples an objective with its customary per-dimension search
// bounds.
type Benchmark struct {
	Func     func([]float64) float64
	Min, Max float64
}

var registry = map[string]Benchmark{
	"paraboloid": {Paraboloid, -10.0, 10.0},
	"schwefel":   {Schwefel, -500.0, 500.0},
	"rastrigin":  {Rastrigin, -5.12, 5.12},
	"rosenbrock": {Rosenbrock, -10.0, 10.0},
}

// ByName looks up a benchmark by its lowercase name.
func ByName(name string) (Benchmark, bool) {
	b, ok := registry[name]
	return b, ok
}

// Names lists the registered benchmarks in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
