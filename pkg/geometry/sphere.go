package geometry

import (
	"github.com/chewxy/math32"

	"github.com/ioreshnikov/rtrace/pkg/core"
)

// Sphere represents an immutable sphere primitive
type Sphere struct {
	Center core.Vec3
	Radius float32
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit tests if a ray intersects the sphere within [tMin, tMax].
// Uses the half-b form of the quadratic; ray directions are unit by
// construction, so the leading coefficient is 1 and no division is needed.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (*core.Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := -halfB - sqrtD
	if root < tMin || root > tMax {
		// Fall back to the farther intersection point
		root = -halfB + sqrtD
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	// Outward normal: any surface point minus the center points away
	// from the center, NewHit normalizes it
	point := ray.At(root)
	return core.NewHit(root, point, point.Subtract(s.Center)), true
}
