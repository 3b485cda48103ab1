package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels in the frame
	SamplesPerPixel int           // Samples accumulated per pixel so far
	TotalRays       int64         // Primary rays traced since the render started
	PassTime        time.Duration // Wall time of the last completed pass
	TotalTime       time.Duration // Wall time since the render started
}
