package scene

import (
	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/geometry"
	"github.com/ioreshnikov/rtrace/pkg/integrator"
	"github.com/ioreshnikov/rtrace/pkg/renderer"
)

// Scene contains all the elements needed for rendering: the viewing
// geometry, the world of objects and the sampling configuration.
type Scene struct {
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig

	camera     *renderer.Camera
	world      *geometry.World
	integrator *integrator.PathTracer
}

var _ renderer.Scene = (*Scene)(nil)

// NewScene assembles a scene. The camera aspect ratio is derived from
// the image dimensions, overriding whatever the config carried.
func NewScene(cameraConfig renderer.CameraConfig, sampling renderer.SamplingConfig, world *geometry.World) *Scene {
	cameraConfig.AspectRatio = float32(sampling.Width) / float32(sampling.Height)

	return &Scene{
		CameraConfig:   cameraConfig,
		SamplingConfig: sampling,
		camera:         renderer.NewCamera(cameraConfig),
		world:          world,
		integrator:     integrator.NewPathTracer(),
	}
}

// NewDefaultScene creates the canonical scene: a small sphere floating
// above a huge ground sphere, lit by the sky gradient.
func NewDefaultScene() *Scene {
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100),
	)

	return NewScene(renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig(), world)
}

// GetCamera returns the camera built from the scene's camera config
func (s *Scene) GetCamera() *renderer.Camera {
	return s.camera
}

// GetWorld returns the world of objects
func (s *Scene) GetWorld() geometry.Hittable {
	return s.world
}

// GetIntegrator returns the radiance estimator for this scene
func (s *Scene) GetIntegrator() *integrator.PathTracer {
	return s.integrator
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}
