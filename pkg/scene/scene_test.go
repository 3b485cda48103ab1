package scene

import (
	"testing"

	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/geometry"
	"github.com/ioreshnikov/rtrace/pkg/renderer"
)

func TestNewDefaultScene(t *testing.T) {
	scene := NewDefaultScene()

	if scene.world.Count() != 2 {
		t.Errorf("Expected 2 spheres in the canonical scene, got %d", scene.world.Count())
	}

	defaults := renderer.DefaultSamplingConfig()
	if scene.SamplingConfig != defaults {
		t.Errorf("Expected default sampling config %+v, got %+v", defaults, scene.SamplingConfig)
	}
	if scene.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected square aspect ratio, got %g", scene.CameraConfig.AspectRatio)
	}
}

func TestNewScene_DerivesAspectRatio(t *testing.T) {
	sampling := renderer.DefaultSamplingConfig()
	sampling.Width = 200
	sampling.Height = 100

	scene := NewScene(renderer.DefaultCameraConfig(), sampling, geometry.NewWorld())

	if scene.CameraConfig.AspectRatio != 2 {
		t.Errorf("Expected aspect ratio 2 from 200x100, got %g", scene.CameraConfig.AspectRatio)
	}
}

func TestScene_Accessors(t *testing.T) {
	scene := NewDefaultScene()

	if scene.GetCamera() == nil {
		t.Error("Expected a camera")
	}
	if scene.GetWorld() == nil {
		t.Error("Expected a world")
	}
	if scene.GetIntegrator() == nil {
		t.Error("Expected an integrator")
	}
	if scene.GetSamplingConfig() != scene.SamplingConfig {
		t.Error("Expected sampling config accessor to match the field")
	}
}

func TestDefaultScene_CenterRayHitsSphere(t *testing.T) {
	scene := NewDefaultScene()

	ray := scene.GetCamera().GetRay(0.5, 0.5)
	hit, ok := scene.GetWorld().Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("Expected the center ray to hit the small sphere")
	}
	if hit.T < 0.4 || hit.T > 0.6 {
		t.Errorf("Expected hit distance near 0.5, got %g", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-5 {
		t.Errorf("Expected outward normal (0,0,1), got %v", hit.Normal)
	}
}
