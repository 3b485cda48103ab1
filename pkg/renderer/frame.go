package renderer

import (
	"image"
	"image/color"

	"github.com/ioreshnikov/rtrace/pkg/core"
)

// Frame is the per-pixel accumulator for progressive rendering. Each
// cell holds the running sum of linear-space radiance samples; the pass
// counter is the divisor shared by every pixel. Row 0 is the bottom of
// the viewport; Image flips to the usual top-down raster order.
type Frame struct {
	width, height int
	pixels        []core.Vec3
	passes        int
}

// NewFrame creates an empty accumulator of the given dimensions
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the frame width in pixels
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels
func (f *Frame) Height() int { return f.height }

// Passes returns the number of completed sampling passes
func (f *Frame) Passes() int { return f.passes }

// Add accumulates one radiance sample into pixel (x, y), with y counted
// from the bottom row
func (f *Frame) Add(x, y int, sample core.Vec3) {
	i := y*f.width + x
	f.pixels[i] = f.pixels[i].Add(sample)
}

// AddPass marks one more full sampling pass as complete, incrementing
// the divisor used when reading colors out
func (f *Frame) AddPass() {
	f.passes++
}

// Color returns the averaged linear-space color of pixel (x, y)
func (f *Frame) Color(x, y int) core.Vec3 {
	if f.passes == 0 {
		return core.NewVec3(0, 0, 0)
	}
	return f.pixels[y*f.width+x].Divide(float32(f.passes))
}

// Clone returns an independent snapshot of the accumulator, safe to
// hand across a channel while rendering continues
func (f *Frame) Clone() *Frame {
	pixels := make([]core.Vec3, len(f.pixels))
	copy(pixels, f.pixels)
	return &Frame{
		width:  f.width,
		height: f.height,
		pixels: pixels,
		passes: f.passes,
	}
}

// Image converts the accumulator to a displayable image: divide by the
// pass count, gamma-correct, clamp, scale to 8-bit channels and flip
// vertically so row 0 ends up at the bottom of the picture.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, f.height-1-y, f.pixelColor(x, y))
		}
	}

	return img
}

// pixelColor converts one accumulated pixel to RGBA with gamma
// correction and clamping
func (f *Frame) pixelColor(x, y int) color.RGBA {
	colorVec := f.Color(x, y).GammaCorrect(2.0).Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
