package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/renderer"
	"github.com/ioreshnikov/rtrace/pkg/scene"
)

const publishTimeout = 30 * time.Second

// SSEEvent is one event written to the stream. Every producer funnels
// through a single writer goroutine so writes never interleave.
type SSEEvent struct {
	Type string // "progress", "console", "published", "publishError", "error", "complete"
	Data string
}

// ProgressUpdate is sent to the client after every pass
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats is the statistics block of a progress update
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	TotalRays       int64 `json:"totalRays"`
	PassMs          int64 `json:"passMs"`
}

// handleRender streams a progressive render via SSE: one progress event
// per pass, interleaved with console events from the renderer
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	selectedScene, err := s.buildScene(req)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid scene: %v", err)})
		return
	}

	// Single writer goroutine; it keeps draining after a failed write
	// so producers never block on a disconnected client
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for event := range events {
			if err := s.writeSSEEvent(w, event); err != nil {
				for range events {
				}
				return
			}
		}
	}()

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		streamConsoleMessages(consoleChan, events)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, consoleChan)

	s.streamRender(r.Context(), selectedScene, req, logger, events)

	// The renderer is fully stopped here, so no more console messages
	// can arrive; shut the pipeline down back to front
	close(consoleChan)
	<-consoleDone
	close(events)
	<-writerDone
}

// streamRender runs the progressive render to completion (or
// cancellation) and emits progress events. Returns only after the
// renderer has stopped.
func (s *Server) streamRender(ctx context.Context, selectedScene *scene.Scene, req *RenderRequest, logger core.Logger, events chan<- SSEEvent) {
	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = req.Workers

	progressive := renderer.NewProgressiveRenderer(selectedScene, config, logger)
	passChan, errChan := progressive.RenderProgressive(ctx)

	totalPasses := selectedScene.GetSamplingConfig().SamplesPerPixel
	startTime := time.Now()

	var final *renderer.Frame
	var encodeErr error
	for result := range passChan {
		final = result.Frame
		if encodeErr != nil {
			continue // Keep draining so the renderer can finish
		}

		imageData, err := imageToBase64PNG(result.Frame.Image())
		if err != nil {
			encodeErr = err
			continue
		}

		update := ProgressUpdate{
			PassNumber:  result.PassNumber,
			TotalPasses: totalPasses,
			ImageData:   imageData,
			Stats: Stats{
				TotalPixels:     result.Stats.TotalPixels,
				SamplesPerPixel: result.Stats.SamplesPerPixel,
				TotalRays:       result.Stats.TotalRays,
				PassMs:          result.Stats.PassTime.Milliseconds(),
			},
			IsComplete: result.IsLast,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		}

		data, err := json.Marshal(update)
		if err != nil {
			encodeErr = err
			continue
		}
		events <- SSEEvent{Type: "progress", Data: string(data)}
	}

	if err := <-errChan; err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)}
		return
	}
	if encodeErr != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Failed to encode image: %v", encodeErr)}
		return
	}

	if s.publisher != nil && final != nil {
		s.publishRender(final, events)
	}

	events <- SSEEvent{Type: "complete", Data: "Rendering completed"}
}

// publishRender uploads the finished frame. A detached context keeps a
// closing EventSource from cancelling the upload halfway.
func (s *Server) publishRender(final *renderer.Frame, events chan<- SSEEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	result, err := s.publisher.Publish(ctx, final.Image())
	if err != nil {
		log.Printf("Publish failed: %v", err)
		events <- SSEEvent{Type: "publishError", Data: fmt.Sprintf("Publish failed: %v", err)}
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Failed to marshal publish result: %v", err)
		return
	}
	events <- SSEEvent{Type: "published", Data: string(data)}
}

// streamConsoleMessages forwards render log lines to the SSE stream
func streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}
		events <- SSEEvent{Type: "console", Data: string(data)}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvent writes one event and flushes it to the client
func (s *Server) writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to a base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
