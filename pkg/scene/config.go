package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/geometry"
	"github.com/ioreshnikov/rtrace/pkg/renderer"
)

// Config describes a scene file. Vectors are written as three-element
// arrays; omitted fields fall back to the defaults of the canonical
// scene.
type Config struct {
	Description     string        `json:"description,omitempty"`
	Width           int           `json:"width,omitempty"`
	Height          int           `json:"height,omitempty"`
	SamplesPerPixel int           `json:"samplesPerPixel,omitempty"`
	MaxDepth        int           `json:"maxDepth,omitempty"`
	Seed            int64         `json:"seed,omitempty"`
	Camera          CameraCfg     `json:"camera,omitempty"`
	Background      BackgroundCfg `json:"background,omitempty"`
	Spheres         []SphereCfg   `json:"spheres"`
}

// CameraCfg describes the viewing geometry in a scene file
type CameraCfg struct {
	Center        *[3]float32 `json:"center,omitempty"`
	LookAt        *[3]float32 `json:"lookAt,omitempty"`
	Up            *[3]float32 `json:"up,omitempty"`
	ViewportWidth float32     `json:"viewportWidth,omitempty"`
	FocusDistance float32     `json:"focusDistance,omitempty"`
}

// BackgroundCfg overrides the sky gradient colors
type BackgroundCfg struct {
	Top    *[3]float32 `json:"top,omitempty"`
	Bottom *[3]float32 `json:"bottom,omitempty"`
}

// SphereCfg describes one sphere of the world
type SphereCfg struct {
	Center [3]float32 `json:"center"`
	Radius float32    `json:"radius"`
}

// Build validates the sphere description and constructs the primitive
func (sc SphereCfg) Build() (*geometry.Sphere, error) {
	if sc.Radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %g", sc.Radius)
	}
	return geometry.NewSphere(asVec3(sc.Center), sc.Radius), nil
}

// DefaultConfig returns the description of the canonical scene, ready
// for overrides before building
func DefaultConfig() Config {
	return Config{
		Spheres: []SphereCfg{
			{Center: [3]float32{0, 0, -1}, Radius: 0.5},
			{Center: [3]float32{0, -100.5, -1}, Radius: 100},
		},
	}
}

// LoadConfig reads a scene description from a JSON file without
// building it
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	return &cfg, nil
}

// LoadFile reads a scene description from a JSON file and builds it
func LoadFile(path string) (*Scene, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	scene, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return scene, nil
}

// Build validates the configuration and assembles the scene, filling
// defaults for omitted fields
func (cfg Config) Build() (*Scene, error) {
	sampling := renderer.DefaultSamplingConfig()
	if cfg.Width != 0 {
		sampling.Width = cfg.Width
	}
	if cfg.Height != 0 {
		sampling.Height = cfg.Height
	}
	if cfg.SamplesPerPixel != 0 {
		sampling.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth != 0 {
		sampling.MaxDepth = cfg.MaxDepth
	}
	if cfg.Seed != 0 {
		sampling.Seed = cfg.Seed
	}

	if sampling.Width <= 0 || sampling.Height <= 0 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", sampling.Width, sampling.Height)
	}
	if sampling.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("samplesPerPixel must be positive, got %d", sampling.SamplesPerPixel)
	}
	if sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("maxDepth must be non-negative, got %d", sampling.MaxDepth)
	}

	camera := renderer.DefaultCameraConfig()
	if cfg.Camera.Center != nil {
		camera.Center = asVec3(*cfg.Camera.Center)
	}
	if cfg.Camera.LookAt != nil {
		camera.LookAt = asVec3(*cfg.Camera.LookAt)
	}
	if cfg.Camera.Up != nil {
		camera.Up = asVec3(*cfg.Camera.Up)
	}
	if cfg.Camera.ViewportWidth != 0 {
		camera.ViewportWidth = cfg.Camera.ViewportWidth
	}
	if cfg.Camera.FocusDistance != 0 {
		camera.FocusDistance = cfg.Camera.FocusDistance
	}
	if camera.ViewportWidth <= 0 {
		return nil, fmt.Errorf("viewportWidth must be positive, got %g", camera.ViewportWidth)
	}
	if camera.FocusDistance <= 0 {
		return nil, fmt.Errorf("focusDistance must be positive, got %g", camera.FocusDistance)
	}
	if camera.LookAt.Subtract(camera.Center).Length() == 0 {
		return nil, fmt.Errorf("camera lookAt must differ from center")
	}

	world := geometry.NewWorld()
	for i, sphereCfg := range cfg.Spheres {
		sphere, err := sphereCfg.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(sphere)
	}

	scene := NewScene(camera, sampling, world)

	if cfg.Background.Top != nil {
		scene.integrator.Top = asVec3(*cfg.Background.Top)
	}
	if cfg.Background.Bottom != nil {
		scene.integrator.Bottom = asVec3(*cfg.Background.Bottom)
	}

	return scene, nil
}

func asVec3(v [3]float32) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
