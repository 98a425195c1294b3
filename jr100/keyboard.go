package jr100

// Keyboard emulates the JR-100's 9x8 diode key matrix: 9 row lines
// selected by the VIA's port A output, 8 column lines read back on port B,
// active-low, with unlimited rollover (no ghosting protection diodes are
// modeled as limiting simultaneous presses, matching spec.md §4.4).
type Keyboard struct {
	// keys[row] is a bitmask of the 8 columns in that row; bit set means
	// pressed. Column readback is active-low at the VIA boundary, so this
	// internal mask uses the natural (active-high = pressed) sense and is
	// inverted at the port-read boundary. Row selection is a row number
	// taken from port A's low nibble (see AttachToVIA).
	keys [9]byte

	selectedRow int
}

// NewKeyboard returns a keyboard with no keys pressed.
func NewKeyboard() *Keyboard {
	return &Keyboard{selectedRow: -1}
}

// SelectRow is called when the VIA's port A output changes, choosing which
// row's columns are read back on port B. A value outside [0,8] deselects
// every row, matching the real matrix's behavior when no row line is
// pulled low.
func (k *Keyboard) SelectRow(row int) {
	k.selectedRow = row
}

// ReadColumns returns the active-low column byte for the currently
// selected row: a 0 bit means that column's key is pressed.
func (k *Keyboard) ReadColumns() byte {
	if k.selectedRow < 0 || k.selectedRow >= len(k.keys) {
		return 0xFF
	}
	return ^k.keys[k.selectedRow]
}

// Press marks the key at (row, column) as held down.
func (k *Keyboard) Press(row, column int) {
	if row < 0 || row >= len(k.keys) || column < 0 || column > 7 {
		return
	}
	k.keys[row] |= 1 << uint(column)
}

// Release marks the key at (row, column) as no longer held.
func (k *Keyboard) Release(row, column int) {
	if row < 0 || row >= len(k.keys) || column < 0 || column > 7 {
		return
	}
	k.keys[row] &^= 1 << uint(column)
}

// AttachToVIA wires the keyboard's row selection and column readback to
// the VIA's port A output and port B input respectively, the pin
// assignment this emulator uses consistently across Machine, Keyboard,
// and the host input adapter (see DESIGN.md's Open Question decisions).
func (k *Keyboard) AttachToVIA(via *VIA) {
	via.WritePortA = func(v byte) {
		row := int(v & 0x0F)
		if row > 8 {
			k.SelectRow(-1)
			return
		}
		k.SelectRow(row)
	}
	via.ReadPortB = k.ReadColumns
}
