package jr100

// ToneGenerator derives the JR-100's single-voice square wave from the
// VIA's Timer 1 in free-run/PB7-toggle mode: frequency = clock /
// (2 * (latch + 2)), per spec.md §4.6. It holds no audio-device state of
// its own — the host's audio sink (cmd/jr100/host/audio.go) samples Level
// on its own schedule.
type ToneGenerator struct {
	clockHz uint32
	level   bool
	gated   bool
}

// NewToneGenerator returns a tone generator driven by a CPU clocked at
// clockHz.
func NewToneGenerator(clockHz uint32) *ToneGenerator {
	return &ToneGenerator{clockHz: clockHz}
}

// AttachToVIA subscribes the tone generator to T1 underflow events so its
// output level follows the PB7 toggle the VIA already computes.
func (t *ToneGenerator) AttachToVIA(via *VIA) {
	via.OnT1Underflow = func(pb7 bool) {
		t.level = pb7
	}
}

// SetGate enables or disables audible output; the JR-100 gates the tone
// output through a port bit so software can silence it without reloading
// the timer.
func (t *ToneGenerator) SetGate(on bool) {
	t.gated = on
}

// Level returns the current instantaneous output level: true for the high
// half of the square wave, false for the low half (or when gated off).
func (t *ToneGenerator) Level() bool {
	return t.gated && t.level
}

// Frequency computes the tone's frequency in Hz for a given T1 latch
// value, per spec.md §4.6's formula. A latch of 0 gives clockHz/4; a
// generator built with a clock rate of 0 returns 0.
func (t *ToneGenerator) Frequency(latch uint16) float64 {
	if t.clockHz == 0 {
		return 0
	}
	period := 2 * (uint32(latch) + 2)
	if period == 0 {
		return 0
	}
	return float64(t.clockHz) / float64(period)
}
