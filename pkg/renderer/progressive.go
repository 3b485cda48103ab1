package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/ioreshnikov/rtrace/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// PassResult contains the result of a single pass. Frame is an
// independent snapshot of the accumulator: linear-space sums plus the
// pass divisor, ready for the display side to convert.
type PassResult struct {
	PassNumber int
	Frame      *Frame
	Stats      RenderStats
	IsLast     bool
}

// ProgressiveRenderer refines the whole frame one sample per pixel at a
// time: each pass distributes the image's tiles over a worker pool,
// waits for all of them, and hands a frame snapshot to the caller.
type ProgressiveRenderer struct {
	scene         Scene
	width, height int
	config        ProgressiveConfig
	sampling      SamplingConfig
	tiles         []*Tile
	frame         *Frame
	workerPool    *WorkerPool
	logger        core.Logger
	raysTraced    int64
	elapsed       time.Duration
}

// NewProgressiveRenderer creates a new progressive renderer
func NewProgressiveRenderer(scene Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRenderer {
	sampling := scene.GetSamplingConfig()

	return &ProgressiveRenderer{
		scene:      scene,
		width:      sampling.Width,
		height:     sampling.Height,
		config:     config,
		sampling:   sampling,
		tiles:      NewTileGrid(sampling.Width, sampling.Height, config.TileSize, sampling.Seed),
		frame:      NewFrame(sampling.Width, sampling.Height),
		workerPool: NewWorkerPool(scene, config.NumWorkers),
		logger:     logger,
	}
}

// RenderPass renders a single progressive pass, adding one sample to
// every pixel using parallel tile processing. Returns a snapshot of the
// accumulated frame.
func (pr *ProgressiveRenderer) RenderPass(passNumber int) (*Frame, RenderStats, error) {
	startTime := time.Now()

	// Start worker pool on the first pass
	if passNumber == 1 {
		pr.workerPool.Start()
	}

	// Submit all tiles as tasks
	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:   tile,
			Pass:   passNumber,
			TaskID: taskID,
			Frame:  pr.frame,
		})
	}

	// Wait for all tiles to complete
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, RenderStats{}, result.Error
		}

		pr.tiles[result.TaskID].PassesCompleted++
		pr.raysTraced += int64(result.Rays)
	}

	// Barrier reached: every pixel has one more sample
	pr.frame.AddPass()

	passTime := time.Since(startTime)
	pr.elapsed += passTime

	stats := RenderStats{
		TotalPixels:     pr.width * pr.height,
		SamplesPerPixel: pr.frame.Passes(),
		TotalRays:       pr.raysTraced,
		PassTime:        passTime,
		TotalTime:       pr.elapsed,
	}

	return pr.frame.Clone(), stats, nil
}

// RenderProgressive renders with channel-based communication. One
// PassResult is emitted per pass; the error channel reports the first
// failure or a context cancellation. Both channels are closed when
// rendering stops.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer pr.workerPool.Stop()

		totalPasses := pr.sampling.SamplesPerPixel
		pr.logger.Printf("Starting progressive rendering with %d passes (using %d workers)...\n",
			totalPasses, pr.workerPool.GetNumWorkers())

		for pass := 1; pass <= totalPasses; pass++ {
			// Check for cancellation before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			frame, stats, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d/%d completed in %v (%d samples/pixel)\n",
				pass, totalPasses, stats.PassTime, stats.SamplesPerPixel)

			result := PassResult{
				PassNumber: pass,
				Frame:      frame,
				Stats:      stats,
				IsLast:     pass == totalPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}
