// Package host holds every adapter that gives the jr100 core a body: a
// window, an audio sink, a clipboard paste source, and a raw-mode
// terminal monitor. None of jr100/* imports this package; adapters here
// only ever call the core's public API, per SPEC_FULL.md's Non-goals.
package host

import (
	"image"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/jr100emu/jr100/jr100"
)

// Display owns a pixelgl.Window and redraws the core's RGBA framebuffer
// into it every frame, scaled by an integer factor. Adapted from
// nes/display.go's NewDisplay/UpdateScreen, scaled for the JR-100's
// 256x192 single-color-per-glyph framebuffer instead of the NES's
// 256x240 four-color tiles.
type Display struct {
	win    *pixelgl.Window
	matrix pixel.Matrix
	atlas  *text.Atlas
	status *text.Text
}

// NewDisplay opens a window sized for the JR-100's 256x192 framebuffer
// scaled by scale, optionally fullscreen.
func NewDisplay(scale int, fullscreen bool) (*Display, error) {
	if scale < 1 {
		scale = 1
	}
	width := float64(jr100.DisplayWidth * scale)
	height := float64(jr100.DisplayHeight * scale)

	cfg := pixelgl.WindowConfig{
		Title:  "JR-100",
		Bounds: pixel.R(0, 0, width, height),
		VSync:  true,
	}
	if fullscreen {
		cfg.Monitor = pixelgl.PrimaryMonitor()
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}

	atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	status := text.New(pixel.V(4, 4), atlas)

	return &Display{
		win:    win,
		matrix: pixel.IM.Scaled(pixel.ZV, float64(scale)).Moved(pixel.V(0, 0)),
		atlas:  atlas,
		status: status,
	}, nil
}

// Closed reports whether the user has asked to close the window.
func (d *Display) Closed() bool {
	return d.win.Closed()
}

// DrawFrame blits the given RGBA framebuffer to the window.
func (d *Display) DrawFrame(frame *image.RGBA) {
	d.win.Clear(colornames.Black)
	pic := pixel.PictureDataFromImage(frame)
	sprite := pixel.NewSprite(pic, pic.Bounds())
	center := pixel.V(float64(jr100.DisplayWidth)/2, float64(jr100.DisplayHeight)/2)
	sprite.Draw(d.win, d.matrix.Moved(d.win.Bounds().Center().Sub(center.Scaled(1))))
	d.win.Update()
}

var letterKeys = map[rune]pixelgl.Button{
	'A': pixelgl.KeyA, 'B': pixelgl.KeyB, 'C': pixelgl.KeyC, 'D': pixelgl.KeyD,
	'E': pixelgl.KeyE, 'F': pixelgl.KeyF, 'G': pixelgl.KeyG, 'H': pixelgl.KeyH,
	'I': pixelgl.KeyI, 'J': pixelgl.KeyJ, 'K': pixelgl.KeyK, 'L': pixelgl.KeyL,
	'M': pixelgl.KeyM, 'N': pixelgl.KeyN, 'O': pixelgl.KeyO, 'P': pixelgl.KeyP,
	'Q': pixelgl.KeyQ, 'R': pixelgl.KeyR, 'S': pixelgl.KeyS, 'T': pixelgl.KeyT,
	'U': pixelgl.KeyU, 'V': pixelgl.KeyV, 'W': pixelgl.KeyW, 'X': pixelgl.KeyX,
	'Y': pixelgl.KeyY, 'Z': pixelgl.KeyZ,
}

// PressedKeys returns the set of ASCII letters currently held down on the
// host keyboard, for feeding into jr100.Keyboard via the key map the
// caller maintains. Only plain printable keys are reported; modifier
// handling is a host concern the core never sees.
func (d *Display) PressedKeys() []rune {
	var pressed []rune
	for r, button := range letterKeys {
		if d.win.Pressed(button) {
			pressed = append(pressed, r)
		}
	}
	return pressed
}
