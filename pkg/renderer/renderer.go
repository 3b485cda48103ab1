package renderer

import (
	"github.com/ioreshnikov/rtrace/pkg/geometry"
	"github.com/ioreshnikov/rtrace/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel, one per pass
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for the per-tile samplers
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           500,
		Height:          500,
		SamplesPerPixel: 100,
		MaxDepth:        7,
		Seed:            42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Hittable
	GetIntegrator() *integrator.PathTracer
	GetSamplingConfig() SamplingConfig
}

// Renderer traces primary rays for tile bounds and accumulates the
// estimates into a shared frame
type Renderer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator *integrator.PathTracer
	config     SamplingConfig
}

// NewRenderer creates a renderer for the given scene
func NewRenderer(scene Scene) *Renderer {
	return &Renderer{
		camera:     scene.GetCamera(),
		world:      scene.GetWorld(),
		integrator: scene.GetIntegrator(),
		config:     scene.GetSamplingConfig(),
	}
}

// RenderTile adds exactly one jittered sample to every pixel within the
// tile bounds, drawing randomness from the tile's own sampler. Tiles
// have non-overlapping bounds, so concurrent calls may share the frame.
// Returns the number of primary rays traced.
func (r *Renderer) RenderTile(tile *Tile, frame *Frame) int {
	width := float32(r.config.Width)
	height := float32(r.config.Height)

	rays := 0
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			// Jitter the pixel coordinate inside its cell before
			// mapping to normalized viewport coordinates
			jitter := tile.Sampler.Get2D()
			s := (float32(x) + jitter.X) / width
			t := (float32(y) + jitter.Y) / height

			ray := r.camera.GetRay(s, t)
			sample := r.integrator.RayColor(ray, r.world, tile.Sampler, r.config.MaxDepth)

			frame.Add(x, y, sample)
			rays++
		}
	}

	return rays
}
