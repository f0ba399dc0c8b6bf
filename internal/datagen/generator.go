// Package datagen produces the deterministic pseudo-random inputs the kernels
// are benchmarked on. The same seed always yields the same data.
package datagen

import "math/rand/v2"

// DefaultSeed is the seed used when none is configured.
const DefaultSeed uint64 = 42

// Generator is a seeded source of benchmark inputs. It is not safe for
// concurrent use; inputs are generated before any worker starts.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Vector returns n floats uniformly drawn from [0, scale).
func (g *Generator) Vector(n int, scale float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = g.rng.Float64() * scale
	}
	return v
}

// Matrix returns a row-major rows×cols matrix of floats in [0, 1).
func (g *Generator) Matrix(rows, cols int) []float64 {
	return g.Vector(rows*cols, 1)
}

// Pixels returns n grey levels in [0, 256).
func (g *Generator) Pixels(n int) []int32 {
	p := make([]int32, n)
	for i := range p {
		p[i] = g.rng.Int32N(256)
	}
	return p
}
