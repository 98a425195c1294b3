package jr100

// AddressingMode enumerates the MB8861's six addressing modes, with
// immediate split into 8- and 16-bit forms, plus IndexedImmediate for the
// mask-extension opcodes. Unlike the 6502's eleven (the teacher's
// AddressingMode enum in nes/addressingModes.go), the MB8861 has no
// pre/post-indexed-indirect forms.
type AddressingMode int

const (
	Inherent AddressingMode = iota
	Immediate8
	Immediate16
	Direct
	Indexed
	Extended
	Relative
	// IndexedImmediate is used only by the MB8861 extension opcodes
	// NIM/OIM/XIM/TMM: an immediate mask byte followed by an indexed offset.
	IndexedImmediate
)

// resolve computes cpu.AddrAbs (the operand's own address for immediate
// modes), cpu.AddrRel for Relative, and, for IndexedImmediate, cpu.Fetched
// (the mask byte), and advances cpu.PC past any operand bytes. It does not
// read the operand value itself, leaving that to the
// instruction handler via cpu.fetch()/cpu.fetch16() so that store-type
// instructions never perform a spurious read.
func (cpu *CPU) resolve(mode AddressingMode) {
	switch mode {
	case Inherent:
		// No operand; handler reads/writes registers directly.
	case Immediate8:
		cpu.AddrAbs = cpu.PC
		cpu.PC++
	case Immediate16:
		cpu.AddrAbs = cpu.PC
		cpu.PC += 2
	case Direct:
		cpu.AddrAbs = uint16(cpu.read(cpu.PC))
		cpu.PC++
	case Indexed:
		offset := cpu.read(cpu.PC)
		cpu.PC++
		cpu.AddrAbs = cpu.IX + uint16(offset)
	case Extended:
		cpu.AddrAbs = cpu.read16(cpu.PC)
		cpu.PC += 2
	case Relative:
		offset := int8(cpu.read(cpu.PC))
		cpu.PC++
		cpu.AddrRel = cpu.PC + uint16(offset)
	case IndexedImmediate:
		cpu.Fetched = cpu.read(cpu.PC)
		cpu.PC++
		offset := cpu.read(cpu.PC)
		cpu.PC++
		cpu.AddrAbs = cpu.IX + uint16(offset)
	}
}
