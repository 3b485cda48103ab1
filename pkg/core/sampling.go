package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float32
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get2D returns two random float32 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float32(), r.random.Float32())
}

// Get3D returns three random float32 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float32(), r.random.Float32(), r.random.Float32())
}

// RandomUnit generates a random unit vector by rejection sampling:
// draw points with components in [0, 1) until one falls strictly inside
// the unit sphere, then normalize it. Avoids trigonometric calls at the
// cost of ~1.91 expected iterations per draw. There is no iteration cap;
// termination is probabilistic.
func RandomUnit(sampler Sampler) Vec3 {
	for {
		p := sampler.Get3D()
		if p.LengthSquared() < 1.0 {
			return p.Normalize()
		}
	}
}
