package renderer

import (
	"github.com/ioreshnikov/rtrace/pkg/core"
)

// CameraConfig describes the viewing geometry: where the camera sits,
// what it looks at, and the size of the viewport one focus distance in
// front of it.
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is aimed at
	Up            core.Vec3 // World-space up used to derive the basis
	ViewportWidth float32   // Width of the viewport in world units
	FocusDistance float32   // Distance from center to the viewport plane
	AspectRatio   float32   // Width over height of the image
}

// DefaultCameraConfig returns the canonical camera: at the origin,
// looking down -z through a 2.0-wide square viewport at distance 1.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		ViewportWidth: 2.0,
		FocusDistance: 1.0,
		AspectRatio:   1.0,
	}
}

// Camera generates primary rays through the viewport
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera builds a camera from its configuration. The basis is derived
// from LookAt and Up, which must not be parallel.
func NewCamera(config CameraConfig) *Camera {
	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	viewportHeight := config.ViewportWidth / config.AspectRatio

	horizontal := right.Multiply(config.ViewportWidth)
	vertical := up.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Add(forward.Multiply(config.FocusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// GetRay generates a ray for normalized screen coordinates (s, t) in
// [0, 1)², with t = 0 at the bottom of the viewport
func (c *Camera) GetRay(s, t float32) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
