package jr100

import (
	"image"
	"image/color"
)

// Display geometry, per spec.md §4.5: a 32x24 character grid of 8x8 pixel
// glyphs rendering to a 256x192 framebuffer.
const (
	DisplayWidth  = 256
	DisplayHeight = 192
	CharCols      = 32
	CharRows      = 24
	CharWidth     = 8
	CharHeight    = 8
	VRAMSize      = CharCols * CharRows
	UDCGlyphCount = 128
	UDCGlyphBytes = 8
)

// Display renders JR-100 video RAM and user-defined-character RAM into an
// RGBA framebuffer. It tracks which character cells changed since the last
// RenderFrame call so the host can skip untouched cells on screen cheaply,
// the adaptation of the teacher's pattern-table readout in nes/ppu.go to a
// text-mode instead of a tiled-sprite display.
type Display struct {
	vram [VRAMSize]byte
	udc  [UDCGlyphCount][UDCGlyphBytes]byte

	// romFont supplies the built-in character generator for codes 0-127
	// when cmode is false. It is installed through SetROMFont rather than
	// hardcoded; LoadROM and Machine.MapBasicROM do not call SetROMFont,
	// so until a caller does, every code renders from UDC RAM.
	romFont *[128][CharHeight]byte

	cmode bool // font bank select: false = ROM font for codes 0-127, true = UDC for all codes

	dirty    [VRAMSize]bool
	anyDirty bool

	frame *image.RGBA
}

// NewDisplay returns a display with every cell marked dirty so the first
// RenderFrame call produces a complete frame.
func NewDisplay() *Display {
	d := &Display{
		frame: image.NewRGBA(image.Rect(0, 0, DisplayWidth, DisplayHeight)),
	}
	d.markAllDirty()
	return d
}

// SetROMFont installs the built-in character generator glyphs, typically
// sourced from the BASIC ROM image at load time.
func (d *Display) SetROMFont(font *[128][CharHeight]byte) {
	d.romFont = font
	d.markAllDirty()
}

func (d *Display) markAllDirty() {
	d.anyDirty = true
	for i := range d.dirty {
		d.dirty[i] = true
	}
}

// WriteVRAM updates one character cell. offset is relative to the video RAM
// region's base address (spec.md §4.2).
func (d *Display) WriteVRAM(offset uint16, v byte) {
	if int(offset) >= len(d.vram) {
		return
	}
	if d.vram[offset] == v {
		return
	}
	d.vram[offset] = v
	d.dirty[offset] = true
	d.anyDirty = true
}

func (d *Display) ReadVRAM(offset uint16) byte {
	if int(offset) >= len(d.vram) {
		return 0
	}
	return d.vram[offset]
}

// WriteUDC updates one byte of one user-defined-character glyph. offset is
// relative to the UDC RAM region's base address: glyph = offset/8, row =
// offset%8.
func (d *Display) WriteUDC(offset uint16, v byte) {
	glyph := int(offset) / UDCGlyphBytes
	row := int(offset) % UDCGlyphBytes
	if glyph >= UDCGlyphCount {
		return
	}
	if d.udc[glyph][row] == v {
		return
	}
	d.udc[glyph][row] = v
	// Any cell currently showing this glyph is now stale; since cells
	// don't track which glyph they display beyond their VRAM byte, a UDC
	// write conservatively dirties the whole frame rather than scanning
	// VRAM for matching cells.
	d.markAllDirty()
}

func (d *Display) ReadUDC(offset uint16) byte {
	glyph := int(offset) / UDCGlyphBytes
	row := int(offset) % UDCGlyphBytes
	if glyph >= UDCGlyphCount {
		return 0
	}
	return d.udc[glyph][row]
}

// SetCMODE toggles the font bank. Switching banks invalidates every cell,
// since every glyph on screen may now resolve to different pixels.
func (d *Display) SetCMODE(v bool) {
	if d.cmode == v {
		return
	}
	d.cmode = v
	d.markAllDirty()
}

func (d *Display) glyphFor(code byte) [CharHeight]byte {
	if !d.cmode && code < UDCGlyphCount && d.romFont != nil {
		return d.romFont[code]
	}
	return d.udc[code%UDCGlyphCount]
}

// RenderFrame redraws dirty cells into the framebuffer and returns it. The
// returned image is owned by the Display; callers that need to retain a
// frame across the next RenderFrame call must copy it.
func (d *Display) RenderFrame() *image.RGBA {
	if !d.anyDirty {
		return d.frame
	}
	for cell := 0; cell < VRAMSize; cell++ {
		if !d.dirty[cell] {
			continue
		}
		col := cell % CharCols
		row := cell / CharCols
		glyph := d.glyphFor(d.vram[cell])
		d.blit(col*CharWidth, row*CharHeight, glyph)
		d.dirty[cell] = false
	}
	d.anyDirty = false
	return d.frame
}

var (
	colorOn  = color.RGBA{R: 0x30, G: 0xE0, B: 0x30, A: 0xFF}
	colorOff = color.RGBA{A: 0xFF}
)

func (d *Display) blit(x0, y0 int, glyph [CharHeight]byte) {
	for row := 0; row < CharHeight; row++ {
		bits := glyph[row]
		for col := 0; col < CharWidth; col++ {
			c := colorOff
			if bits&(0x80>>uint(col)) != 0 {
				c = colorOn
			}
			d.frame.SetRGBA(x0+col, y0+row, c)
		}
	}
}
