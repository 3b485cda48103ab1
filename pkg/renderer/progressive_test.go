package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/geometry"
	"github.com/ioreshnikov/rtrace/pkg/integrator"
)

// testScene is a minimal Scene implementation for driver tests: the
// canonical two-sphere setup viewed through the default camera
type testScene struct {
	camera     *Camera
	world      geometry.Hittable
	integrator *integrator.PathTracer
	sampling   SamplingConfig
}

func (s *testScene) GetCamera() *Camera                    { return s.camera }
func (s *testScene) GetWorld() geometry.Hittable           { return s.world }
func (s *testScene) GetIntegrator() *integrator.PathTracer { return s.integrator }
func (s *testScene) GetSamplingConfig() SamplingConfig     { return s.sampling }

func newTestScene(width, height, samplesPerPixel int, seed int64) *testScene {
	camConfig := DefaultCameraConfig()
	camConfig.AspectRatio = float32(width) / float32(height)

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100),
	)

	return &testScene{
		camera:     NewCamera(camConfig),
		world:      world,
		integrator: integrator.NewPathTracer(),
		sampling: SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: samplesPerPixel,
			MaxDepth:        5,
			Seed:            seed,
		},
	}
}

// nopLogger keeps test output quiet
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

func TestRenderTile_OneSamplePerPixel(t *testing.T) {
	scene := newTestScene(8, 8, 1, 42)
	r := NewRenderer(scene)
	frame := NewFrame(8, 8)
	tiles := NewTileGrid(8, 8, 8, 42)

	rays := r.RenderTile(tiles[0], frame)
	frame.AddPass()

	if rays != 64 {
		t.Errorf("Expected 64 primary rays for an 8x8 tile, got %d", rays)
	}

	// The top-left corner looks above both spheres and must see sky
	sky := frame.Color(0, 7)
	if sky.Z <= 0 {
		t.Errorf("Expected sky radiance at the top row, got %v", sky)
	}
}

func TestRenderPass_Statistics(t *testing.T) {
	scene := newTestScene(16, 12, 4, 7)
	pr := NewProgressiveRenderer(scene, DefaultProgressiveConfig(), nopLogger{})
	defer pr.workerPool.Stop()

	frame, stats, err := pr.RenderPass(1)
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}

	if frame.Passes() != 1 {
		t.Errorf("Expected 1 completed pass, got %d", frame.Passes())
	}
	if stats.TotalPixels != 16*12 {
		t.Errorf("Expected %d pixels, got %d", 16*12, stats.TotalPixels)
	}
	if stats.SamplesPerPixel != 1 {
		t.Errorf("Expected 1 sample per pixel after one pass, got %d", stats.SamplesPerPixel)
	}
	if stats.TotalRays != 16*12 {
		t.Errorf("Expected %d primary rays, got %d", 16*12, stats.TotalRays)
	}
}

func TestRenderPass_Accumulates(t *testing.T) {
	scene := newTestScene(16, 12, 4, 7)
	pr := NewProgressiveRenderer(scene, DefaultProgressiveConfig(), nopLogger{})
	defer pr.workerPool.Stop()

	if _, _, err := pr.RenderPass(1); err != nil {
		t.Fatalf("Pass 1 failed: %v", err)
	}
	frame, stats, err := pr.RenderPass(2)
	if err != nil {
		t.Fatalf("Pass 2 failed: %v", err)
	}

	if frame.Passes() != 2 {
		t.Errorf("Expected 2 completed passes, got %d", frame.Passes())
	}
	if stats.SamplesPerPixel != 2 {
		t.Errorf("Expected 2 samples per pixel, got %d", stats.SamplesPerPixel)
	}
	if stats.TotalRays != 2*16*12 {
		t.Errorf("Expected %d total rays, got %d", 2*16*12, stats.TotalRays)
	}
}

// renderToCompletion drains a full progressive render and returns the
// final frame
func renderToCompletion(t *testing.T, workers int) *Frame {
	t.Helper()

	scene := newTestScene(20, 16, 3, 42)
	config := ProgressiveConfig{TileSize: 8, NumWorkers: workers}
	pr := NewProgressiveRenderer(scene, config, nopLogger{})

	passChan, errChan := pr.RenderProgressive(context.Background())

	var final *Frame
	for result := range passChan {
		final = result.Frame
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Rendering with %d workers failed: %v", workers, err)
	}
	if final == nil {
		t.Fatalf("Rendering with %d workers produced no frames", workers)
	}
	return final
}

func TestRenderProgressive_IndependentOfWorkerCount(t *testing.T) {
	serial := renderToCompletion(t, 1)
	parallel := renderToCompletion(t, 4)

	for y := 0; y < 16; y++ {
		for x := 0; x < 20; x++ {
			if serial.Color(x, y) != parallel.Color(x, y) {
				t.Fatalf("Pixel (%d,%d) differs across worker counts: %v vs %v",
					x, y, serial.Color(x, y), parallel.Color(x, y))
			}
		}
	}
}

func TestRenderProgressive_IsReproducible(t *testing.T) {
	first := renderToCompletion(t, 2)
	second := renderToCompletion(t, 2)

	for y := 0; y < 16; y++ {
		for x := 0; x < 20; x++ {
			if first.Color(x, y) != second.Color(x, y) {
				t.Fatalf("Pixel (%d,%d) differs across runs: %v vs %v",
					x, y, first.Color(x, y), second.Color(x, y))
			}
		}
	}
}

func TestRenderProgressive_ChannelFlow(t *testing.T) {
	scene := newTestScene(16, 12, 3, 42)
	pr := NewProgressiveRenderer(scene, DefaultProgressiveConfig(), nopLogger{})

	passChan, errChan := pr.RenderProgressive(context.Background())

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Rendering failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 pass results, got %d", len(results))
	}
	for i, result := range results {
		if result.PassNumber != i+1 {
			t.Errorf("Expected pass number %d, got %d", i+1, result.PassNumber)
		}
		if result.Stats.SamplesPerPixel != i+1 {
			t.Errorf("Expected %d samples per pixel, got %d", i+1, result.Stats.SamplesPerPixel)
		}
		wantLast := i == len(results)-1
		if result.IsLast != wantLast {
			t.Errorf("Expected IsLast=%v on pass %d, got %v", wantLast, i+1, result.IsLast)
		}
	}
}

func TestRenderProgressive_FramesAreSnapshots(t *testing.T) {
	scene := newTestScene(16, 12, 3, 42)
	pr := NewProgressiveRenderer(scene, DefaultProgressiveConfig(), nopLogger{})

	passChan, errChan := pr.RenderProgressive(context.Background())

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Rendering failed: %v", err)
	}

	// Each emitted frame keeps the divisor it was cloned with
	for i, result := range results {
		if result.Frame.Passes() != i+1 {
			t.Errorf("Expected frame %d to hold %d passes, got %d",
				i, i+1, result.Frame.Passes())
		}
	}
}

func TestRenderProgressive_Cancellation(t *testing.T) {
	scene := newTestScene(16, 12, 100, 42)
	pr := NewProgressiveRenderer(scene, DefaultProgressiveConfig(), nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := pr.RenderProgressive(ctx)

	for range passChan {
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWorkerPool_ExplicitWorkerCount(t *testing.T) {
	scene := newTestScene(16, 12, 1, 42)
	pool := NewWorkerPool(scene, 3)

	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
}
