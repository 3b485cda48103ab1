package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/ioreshnikov/rtrace/pkg/renderer"
	"github.com/ioreshnikov/rtrace/pkg/scene"
	"github.com/ioreshnikov/rtrace/view/display"
)

func main() {
	scenePath := flag.String("scene", "", "Path to a JSON scene file (empty = built-in two-sphere scene)")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	flag.Parse()

	selectedScene, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Error loading scene: %v", err)
	}

	sampling := selectedScene.GetSamplingConfig()
	window := display.New(sampling.Width, sampling.Height, "rtrace")

	// Closing the window cancels the render between passes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = *workers

	progressive := renderer.NewProgressiveRenderer(selectedScene, config, renderer.NewDefaultLogger())
	passChan, errChan := progressive.RenderProgressive(ctx)

	go func() {
		for result := range passChan {
			window.SetFrame(result.Frame)
			window.SetTitle(fmt.Sprintf("rtrace - pass %d/%d",
				result.PassNumber, sampling.SamplesPerPixel))
		}
		if err := <-errChan; err != nil && ctx.Err() == nil {
			log.Printf("Rendering failed: %v", err)
		}
	}()

	if err := window.Run(); err != nil {
		log.Fatalf("Error running window: %v", err)
	}
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.NewDefaultScene(), nil
	}
	return scene.LoadFile(path)
}
