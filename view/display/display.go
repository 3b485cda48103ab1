package display

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ioreshnikov/rtrace/pkg/renderer"
)

// Window presents progressive frame snapshots as they arrive. It keeps
// showing the latest pass and polling for quit after the render ends;
// closing the window or pressing Escape stops the event loop.
type Window struct {
	width, height int
	title         string

	mu    sync.Mutex
	frame *renderer.Frame
	dirty bool

	img       *image.RGBA
	imgDirty  bool
	offscreen *ebiten.Image
}

// New creates a window for frames of the given dimensions
func New(width, height int, title string) *Window {
	return &Window{
		width:  width,
		height: height,
		title:  title,
	}
}

// SetFrame hands a new frame snapshot to the window. Safe to call from
// the render goroutine.
func (w *Window) SetFrame(frame *renderer.Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = frame
	w.dirty = true
}

// SetTitle updates the window title. Safe to call from the render
// goroutine.
func (w *Window) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// Update implements ebiten.Game: poll for quit and convert the latest
// frame snapshot when one arrived since the last tick
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.mu.Lock()
	frame, dirty := w.frame, w.dirty
	w.dirty = false
	w.mu.Unlock()

	if dirty && frame != nil {
		w.img = frame.Image()
		w.imgDirty = true
	}
	return nil
}

// Draw implements ebiten.Game
func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		return
	}
	if w.offscreen == nil {
		w.offscreen = ebiten.NewImage(w.width, w.height)
	}
	if w.imgDirty {
		w.offscreen.WritePixels(w.img.Pix)
		w.imgDirty = false
	}
	screen.DrawImage(w.offscreen, nil)
}

// Layout implements ebiten.Game: the logical screen is the framebuffer
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// Run opens the window and blocks until it is closed or Escape is
// pressed. Returns nil on a normal quit.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width, w.height)
	return ebiten.RunGame(w)
}
