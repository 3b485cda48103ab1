package display

import (
	"testing"

	"github.com/ioreshnikov/rtrace/pkg/core"
	"github.com/ioreshnikov/rtrace/pkg/renderer"
)

func TestWindow_Layout(t *testing.T) {
	window := New(320, 240, "test")

	width, height := window.Layout(1280, 960)
	if width != 320 || height != 240 {
		t.Errorf("Expected logical size 320x240, got %dx%d", width, height)
	}
}

func TestWindow_UpdateConvertsLatestFrame(t *testing.T) {
	window := New(2, 2, "test")

	frame := renderer.NewFrame(2, 2)
	frame.Add(0, 0, core.NewVec3(1, 0, 0))
	frame.AddPass()
	window.SetFrame(frame)

	if err := window.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if window.img == nil {
		t.Fatal("Expected the frame to be converted")
	}

	// Frame row 0 is the bottom, so the red pixel lands on raster row 1
	pixel := window.img.RGBAAt(0, 1)
	if pixel.R != 255 || pixel.G != 0 {
		t.Errorf("Expected red at raster (0,1), got %v", pixel)
	}
}

func TestWindow_UpdateSkipsUnchangedFrame(t *testing.T) {
	window := New(2, 2, "test")

	frame := renderer.NewFrame(2, 2)
	frame.AddPass()
	window.SetFrame(frame)

	if err := window.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	converted := window.img

	// Without a new snapshot the next tick must not reconvert
	if err := window.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if window.img != converted {
		t.Error("Expected no reconversion without a new frame")
	}
}

func TestWindow_UpdateWithoutFrame(t *testing.T) {
	window := New(2, 2, "test")

	if err := window.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if window.img != nil {
		t.Error("Expected no image before the first frame")
	}
}
