package core

// Ray represents a ray with an origin and a unit direction.
// The direction is normalized once at construction and never mutated,
// so intersection code can rely on |Direction| == 1.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction unconditionally
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Hit contains information about a ray-object intersection.
// Hits are created per intersection test and consumed immediately by
// the shading step.
type Hit struct {
	T      float32 // Parameter t along the ray
	Point  Vec3    // Point of intersection
	Normal Vec3    // Outward unit surface normal
}

// NewHit creates a hit record, normalizing the outward normal
func NewHit(t float32, point, outwardNormal Vec3) *Hit {
	return &Hit{T: t, Point: point, Normal: outwardNormal.Normalize()}
}
