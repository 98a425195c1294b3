package jr100

import "fmt"

// disasmTable is a stateless copy of the opcode table used only for text
// formatting, so disassembly never touches a live CPU's registers or
// cycle count. Grounded on nes/cpuDisassembler.go's address-keyed map
// approach, simplified to a slice since a JR-100 program is small enough
// to disassemble in one pass without needing random access by address.
var disasmTable = buildOpcodeTable()

// Disassemble produces one text line per instruction between start and end
// (exclusive), reading instruction bytes through the given bus. It is a
// debugging convenience only: execution never consults it, matching the
// teacher's own separation between Cpu.Disassemble and Cpu.Cycle.
func Disassemble(bus *Bus, start, end uint16) []string {
	var lines []string
	addr := start
	for addr < end {
		text, length := disassembleOne(bus, addr)
		lines = append(lines, fmt.Sprintf("%04X: %s", addr, text))
		if length == 0 {
			length = 1
		}
		addr += uint16(length)
	}
	return lines
}

func disassembleOne(bus *Bus, addr uint16) (string, int) {
	opcode := bus.Read(addr)
	inst := disasmTable[opcode]
	if inst.Execute == nil {
		return fmt.Sprintf(".BYTE $%02X", opcode), 1
	}

	switch inst.Mode {
	case Inherent:
		return inst.Mnemonic, 1
	case Immediate8:
		operand := bus.Read(addr + 1)
		return fmt.Sprintf("%s #$%02X", inst.Mnemonic, operand), 2
	case Immediate16:
		operand := uint16(bus.Read(addr+1))<<8 | uint16(bus.Read(addr+2))
		return fmt.Sprintf("%s #$%04X", inst.Mnemonic, operand), 3
	case Direct:
		operand := bus.Read(addr + 1)
		return fmt.Sprintf("%s $%02X", inst.Mnemonic, operand), 2
	case Indexed:
		operand := bus.Read(addr + 1)
		return fmt.Sprintf("%s $%02X,X", inst.Mnemonic, operand), 2
	case Extended:
		operand := uint16(bus.Read(addr+1))<<8 | uint16(bus.Read(addr+2))
		return fmt.Sprintf("%s $%04X", inst.Mnemonic, operand), 3
	case Relative:
		offset := int8(bus.Read(addr + 1))
		target := addr + 2 + uint16(offset)
		return fmt.Sprintf("%s $%04X", inst.Mnemonic, target), 2
	case IndexedImmediate:
		mask := bus.Read(addr + 1)
		offset := bus.Read(addr + 2)
		return fmt.Sprintf("%s #$%02X $%02X,X", inst.Mnemonic, mask, offset), 3
	default:
		return inst.Mnemonic, 1
	}
}
