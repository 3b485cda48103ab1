package integrator

import (
	"github.com/chewxy/math32"

	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/geometry"
)

// PathTracer evaluates radiance along a ray by recursive stochastic
// bouncing: diffuse surfaces scatter into a random direction around the
// normal, misses terminate on a procedural sky gradient.
type PathTracer struct {
	Epsilon float32   // Minimum hit distance, suppresses self-intersection of bounce rays
	Albedo  float32   // Energy retained per diffuse bounce
	Top     core.Vec3 // Background color straight up
	Bottom  core.Vec3 // Background color straight down
}

// NewPathTracer creates a path tracer with the canonical sky gradient
// and 50% albedo
func NewPathTracer() *PathTracer {
	return &PathTracer{
		Epsilon: 1e-3,
		Albedo:  0.5,
		Top:     core.NewVec3(0.5, 0.7, 1.0),
		Bottom:  core.NewVec3(1.0, 1.0, 1.0),
	}
}

// RayColor returns the radiance estimate for a single ray. The depth
// budget bounds the recursion; at zero no more light is gathered.
func (pt *PathTracer) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.NewVec3(0, 0, 0)
	}

	hit, ok := world.Hit(ray, pt.Epsilon, math32.MaxFloat32)
	if !ok {
		return pt.Background(ray.Direction)
	}

	// Lambertian-like bounce: perturb the surface normal by a random
	// unit vector and follow the new ray
	bounce := core.NewRay(hit.Point, hit.Normal.Add(core.RandomUnit(sampler)))
	return pt.RayColor(bounce, world, sampler, depth-1).Multiply(pt.Albedo)
}

// Background interpolates the sky gradient for a unit direction:
// Bottom at direction.Y = -1 up to Top at direction.Y = +1.
func (pt *PathTracer) Background(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Y + 1.0)
	return pt.Bottom.Multiply(1.0 - t).Add(pt.Top.Multiply(t))
}
