package host

import (
	"context"
	"time"

	"golang.design/x/clipboard"

	"github.com/jr100emu/jr100/jr100"
)

// PasteSource reads a BASIC listing from the host clipboard and replays it
// into a Keyboard as though typed. Grounded on the clipboard.Read call in
// IntuitionAmiga-IntuitionEngine/video_backend_ebiten.go.
type PasteSource struct {
	initialized bool
}

// NewPasteSource initializes the clipboard backend. Returns an error if no
// clipboard is available (e.g. a headless CI box); callers should treat
// that as non-fatal, the same way audio unavailability is handled.
func NewPasteSource() (*PasteSource, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return &PasteSource{initialized: true}, nil
}

// PasteInto reads the current clipboard text, parses it as a BASIC
// listing, and drives the keyboard's press/release events with a short
// delay between keystrokes so the emulated machine's scan loop can
// observe each one, returning once the whole listing has been replayed or
// ctx is canceled.
func (p *PasteSource) PasteInto(ctx context.Context, kb *jr100.Keyboard) {
	text := string(clipboard.Read(clipboard.FmtText))
	if text == "" {
		return
	}

	events := jr100.ParseBasicListing(text)
	for _, ev := range events {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if ev.Press {
			kb.Press(ev.Row, ev.Column)
		} else {
			kb.Release(ev.Row, ev.Column)
		}
		time.Sleep(2 * time.Millisecond)
	}
}
