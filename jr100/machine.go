package jr100

import "log/slog"

// Memory map, per spec.md §4.2: six region kinds laid out across the
// MB8861's 64KB address space. Exact boundaries are this emulator's own
// choice (not dictated by the distilled spec) but keep the BASIC ROM at
// the top of the address space so the reset/IRQ/NMI vectors, which must
// live inside it, land at the fixed addresses cpu.go expects.
const (
	mainRAMBase uint16 = 0x0000
	mainRAMSize uint16 = 0xC000

	videoRAMBase uint16 = 0xC000
	videoRAMSize uint16 = VRAMSize

	viaBase uint16 = 0xC800
	viaSize uint16 = 0x10

	udcRAMBase uint16 = 0xCC00
	udcRAMSize uint16 = UDCGlyphCount * UDCGlyphBytes

	extIOBase uint16 = 0xD000
	extIOSize uint16 = 0x10

	basicROMBase uint16 = RomBaseAddr
	basicROMSize uint16 = RomSize
)

// cpuClockHz is the MB8861's nominal clock rate on real JR-100 hardware,
// used to derive tone-generator frequencies (spec.md §4.6).
const cpuClockHz = 894886

// Machine assembles a CPU, memory bus, VIA, keyboard, display, and tone
// generator into a runnable JR-100, the same "wire everything into a Bus
// and drive it from the CPU" shape as nes/bus.go's Bus, but with the GUI
// frame loop removed: Run-the-window is a host concern, not core.
type Machine struct {
	CPU      *CPU
	Bus      *Bus
	VIA      *VIA
	Keyboard *Keyboard
	Display  *Display
	Tone     *ToneGenerator

	mainRAM  [mainRAMSize]byte
	extIO    [extIOSize]byte
	basicROM []byte

	logger *slog.Logger

	cycleCarry int
}

// NewMachine constructs a fully wired but unloaded, unreset JR-100. Callers
// must install a BASIC ROM (LoadROM + MapBasicROM) and call Reset before
// stepping.
func NewMachine() *Machine {
	m := &Machine{
		Bus:      NewBus(),
		VIA:      NewVIA(),
		Keyboard: NewKeyboard(),
		Display:  NewDisplay(),
		Tone:     NewToneGenerator(cpuClockHz),
		logger:   slog.Default(),
	}

	m.Keyboard.AttachToVIA(m.VIA)
	m.Tone.AttachToVIA(m.VIA)

	m.Bus.MapRegion("main-ram", mainRAMBase, mainRAMSize,
		func(off uint16) byte { return m.mainRAM[off] },
		func(off uint16, v byte) { m.mainRAM[off] = v },
	)
	m.Bus.MapRegion("video-ram", videoRAMBase, videoRAMSize,
		m.Display.ReadVRAM,
		m.Display.WriteVRAM,
	)
	m.Bus.MapRegion("via", viaBase, viaSize,
		m.VIA.Read,
		m.VIA.Write,
	)
	m.Bus.MapRegion("udc-ram", udcRAMBase, udcRAMSize,
		m.Display.ReadUDC,
		m.Display.WriteUDC,
	)
	m.Bus.MapRegion("ext-io", extIOBase, extIOSize,
		func(off uint16) byte { return m.extIO[off] },
		func(off uint16, v byte) { m.extIO[off] = v },
	)

	m.CPU = NewCPU(m.Bus)
	m.CPU.Logger = m.logger

	return m
}

// MapBasicROM installs an 8192-byte BASIC ROM image at RomBaseAddr. Call
// LoadROM first to validate the image's size.
func (m *Machine) MapBasicROM(rom []byte) {
	m.basicROM = rom
	m.Bus.MapRegion("basic-rom", basicROMBase, basicROMSize,
		func(off uint16) byte { return m.basicROM[off] },
		func(off uint16, v byte) {}, // ROM: writes are discarded
	)
}

// AttachLogger distributes a subsystem-tagged child logger to every
// component that logs, per SPEC_FULL.md's Ambient Stack.
func (m *Machine) AttachLogger(logger *slog.Logger) {
	m.logger = logger
	m.CPU.Logger = logger.With("component", "cpu")
}

// Reset resets the CPU and VIA to their power-on state.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.VIA.Reset()
}

// RaiseIRQ and RaiseNMI forward directly to the CPU; exposed on Machine so
// hosts never need to reach into m.CPU for interrupt injection (e.g. a
// future cassette or expansion-port adapter).
func (m *Machine) RaiseIRQ() { m.CPU.RaiseIRQ() }
func (m *Machine) RaiseNMI() { m.CPU.RaiseNMI() }

// StepOne executes exactly one CPU instruction, ticks the VIA by the
// cycles it consumed, and samples the VIA's composite interrupt line,
// raising or withdrawing the CPU's pending IRQ to match. IRQ is a level,
// not a latch (spec.md §9): if the VIA's interrupt source clears itself
// (e.g. the handler hasn't run yet but the condition already resolved)
// before the CPU services it, the request must not survive that window.
// Returns the number of cycles consumed.
func (m *Machine) StepOne() (int, error) {
	cycles, err := m.CPU.Step()
	if err != nil {
		return cycles, err
	}
	m.VIA.Tick(cycles)
	if m.VIA.IRQAsserted() {
		m.CPU.RaiseIRQ()
	} else {
		m.CPU.pendingIRQ = false
	}
	return cycles, nil
}

// RunFor executes instructions until at least budget cycles have been
// consumed, carrying any overshoot into the next call so a fixed-rate host
// loop (e.g. one RunFor call per video frame) stays phase-locked with the
// emulated clock instead of drifting by a fraction of a cycle every call.
func (m *Machine) RunFor(budget int) (int, error) {
	consumed := -m.cycleCarry
	for consumed < budget {
		cycles, err := m.StepOne()
		if err != nil {
			m.cycleCarry = 0
			return consumed, err
		}
		consumed += cycles
	}
	m.cycleCarry = consumed - budget
	return consumed, nil
}
