package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"

	"github.com/ioreshnikov/rtrace/pkg/renderer"
	"github.com/ioreshnikov/rtrace/pkg/scene"
)

// renderOptions collects the command line flags
type renderOptions struct {
	scenePath string
	width     int
	height    int
	samples   int
	depth     int
	seed      int64
	workers   int
	scale     int
	output    string
	gifPath   string
}

func main() {
	var opts renderOptions
	flag.StringVar(&opts.scenePath, "scene", "", "Path to a JSON scene file (empty = built-in two-sphere scene)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flag.Int64Var(&opts.seed, "seed", 0, "Sampler seed (0 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of render workers (0 = CPU count)")
	flag.IntVar(&opts.scale, "scale", 1, "Supersampling factor: render at Nx resolution, then downscale")
	flag.StringVar(&opts.output, "out", "", "Output PNG path (empty = output/render_<timestamp>.png)")
	flag.StringVar(&opts.gifPath, "gif", "", "Also write an animated GIF of the passes to this path")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(opts renderOptions) error {
	selectedScene, err := buildScene(opts)
	if err != nil {
		return err
	}

	sampling := selectedScene.GetSamplingConfig()
	fmt.Printf("Rendering %dx%d at %d samples/pixel (depth %d, seed %d)...\n",
		sampling.Width, sampling.Height, sampling.SamplesPerPixel,
		sampling.MaxDepth, sampling.Seed)

	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = opts.workers

	progressive := renderer.NewProgressiveRenderer(selectedScene, config, renderer.NewDefaultLogger())
	passChan, errChan := progressive.RenderProgressive(context.Background())

	var final *renderer.Frame
	anim := &gif.GIF{}
	for result := range passChan {
		final = result.Frame
		if opts.gifPath != "" {
			appendGIFFrame(anim, finalImage(result.Frame, opts.scale))
		}
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if final == nil {
		return fmt.Errorf("rendering produced no frames")
	}

	path, err := savePNG(finalImage(final, opts.scale), opts.output)
	if err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", path)

	if opts.gifPath != "" {
		if err := saveGIF(anim, opts.gifPath); err != nil {
			return err
		}
		fmt.Printf("Pass animation saved as %s\n", opts.gifPath)
	}

	return nil
}

// buildScene loads the scene description, applies flag overrides and
// builds it, scaling the render resolution up when supersampling
func buildScene(opts renderOptions) (*scene.Scene, error) {
	if opts.scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", opts.scale)
	}

	cfg := scene.DefaultConfig()
	if opts.scenePath != "" {
		loaded, err := scene.LoadConfig(opts.scenePath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	applyOverrides(&cfg, opts)

	selectedScene, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	if opts.scale > 1 {
		cfg.Width = selectedScene.SamplingConfig.Width * opts.scale
		cfg.Height = selectedScene.SamplingConfig.Height * opts.scale
		selectedScene, err = cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("building scene: %w", err)
		}
	}

	return selectedScene, nil
}

// applyOverrides writes non-zero flag values over the scene description
func applyOverrides(cfg *scene.Config, opts renderOptions) {
	if opts.width != 0 {
		cfg.Width = opts.width
	}
	if opts.height != 0 {
		cfg.Height = opts.height
	}
	if opts.samples != 0 {
		cfg.SamplesPerPixel = opts.samples
	}
	if opts.depth != 0 {
		cfg.MaxDepth = opts.depth
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
}

// finalImage converts an accumulated frame to a displayable image,
// downscaling supersampled renders back to their target size
func finalImage(frame *renderer.Frame, scale int) image.Image {
	img := frame.Image()
	if scale <= 1 {
		return img
	}
	width := uint(frame.Width() / scale)
	height := uint(frame.Height() / scale)
	return resize.Resize(width, height, img, resize.Bilinear)
}

// savePNG writes the image, creating a timestamped file under output/
// when no explicit path is given
func savePNG(img image.Image, path string) (string, error) {
	if path == "" {
		if err := os.MkdirAll("output", 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		path = filepath.Join("output", fmt.Sprintf("render_%s.png", timestamp))
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// appendGIFFrame adds one pass snapshot to the animation
func appendGIFFrame(anim *gif.GIF, img image.Image) {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)

	anim.Image = append(anim.Image, paletted)
	anim.Delay = append(anim.Delay, 10) // Hundredths of a second per pass
}

// saveGIF writes the pass animation
func saveGIF(anim *gif.GIF, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating GIF file: %w", err)
	}
	defer file.Close()

	if err := gif.EncodeAll(file, anim); err != nil {
		return fmt.Errorf("encoding GIF: %w", err)
	}
	return nil
}
