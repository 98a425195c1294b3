package jr100

// buildOpcodeTable assembles the MB8861's 256-entry dispatch table. The
// layout follows the 6800 family's traditional grouping by row (inherent,
// branches, accumulator ops, indexed/extended memory ops, then the
// immediate/direct/indexed/extended quartets for each two-operand
// instruction) with four unused-opcode slots repurposed for the MB8861's
// NIM/OIM/XIM/TMM mask extension, per this repo's pinned Open Question
// decision (see DESIGN.md).
func buildOpcodeTable() [256]Instruction {
	var t [256]Instruction

	set := func(op byte, mnemonic string, mode AddressingMode, cycles int, fn func(cpu *CPU)) {
		t[op] = Instruction{Mnemonic: mnemonic, Mode: mode, Execute: fn, Cycles: cycles}
	}

	// Inherent, no operand.
	set(0x01, "NOP", Inherent, 2, func(cpu *CPU) {})
	set(0x06, "TAP", Inherent, 2, func(cpu *CPU) { cpu.CC = cpu.A | ccUnusedMask })
	set(0x07, "TPA", Inherent, 2, func(cpu *CPU) { cpu.A = cpu.CC })
	set(0x08, "INX", Inherent, 4, func(cpu *CPU) {
		cpu.IX++
		cpu.setFlag(FlagZ, cpu.IX == 0)
	})
	set(0x09, "DEX", Inherent, 4, func(cpu *CPU) {
		cpu.IX--
		cpu.setFlag(FlagZ, cpu.IX == 0)
	})
	set(0x0A, "CLV", Inherent, 2, func(cpu *CPU) { cpu.setFlag(FlagV, false) })
	set(0x0B, "SEV", Inherent, 2, func(cpu *CPU) { cpu.setFlag(FlagV, true) })
	set(0x0C, "CLC", Inherent, 2, func(cpu *CPU) { cpu.setFlag(FlagC, false) })
	set(0x0D, "SEC", Inherent, 2, func(cpu *CPU) { cpu.setFlag(FlagC, true) })
	set(0x0E, "CLI", Inherent, 2, func(cpu *CPU) { cpu.setFlag(FlagI, false) })
	set(0x0F, "SEI", Inherent, 2, func(cpu *CPU) { cpu.setFlag(FlagI, true) })
	set(0x10, "SBA", Inherent, 2, func(cpu *CPU) { cpu.A = cpu.aluSub8(cpu.A, cpu.B, 0) })
	set(0x11, "CBA", Inherent, 2, func(cpu *CPU) { cpu.aluCompare8(cpu.A, cpu.B) })
	set(0x16, "TAB", Inherent, 2, func(cpu *CPU) {
		cpu.B = cpu.A
		cpu.setFlag(FlagV, false)
		cpu.setNZ8(cpu.B)
	})
	set(0x17, "TBA", Inherent, 2, func(cpu *CPU) {
		cpu.A = cpu.B
		cpu.setFlag(FlagV, false)
		cpu.setNZ8(cpu.A)
	})
	set(0x19, "DAA", Inherent, 2, func(cpu *CPU) { cpu.aluDaa() })
	set(0x1B, "ABA", Inherent, 2, func(cpu *CPU) { cpu.A = cpu.aluAdd8(cpu.A, cpu.B, 0) })

	// Relative branches.
	branch := func(op byte, mnemonic string, cond func(cpu *CPU) bool) {
		set(op, mnemonic, Relative, 4, func(cpu *CPU) {
			if cond(cpu) {
				cpu.PC = cpu.AddrRel
			}
		})
	}
	branch(0x20, "BRA", func(cpu *CPU) bool { return true })
	branch(0x22, "BHI", func(cpu *CPU) bool { return !cpu.getFlag(FlagC) && !cpu.getFlag(FlagZ) })
	branch(0x23, "BLS", func(cpu *CPU) bool { return cpu.getFlag(FlagC) || cpu.getFlag(FlagZ) })
	branch(0x24, "BCC", func(cpu *CPU) bool { return !cpu.getFlag(FlagC) })
	branch(0x25, "BCS", func(cpu *CPU) bool { return cpu.getFlag(FlagC) })
	branch(0x26, "BNE", func(cpu *CPU) bool { return !cpu.getFlag(FlagZ) })
	branch(0x27, "BEQ", func(cpu *CPU) bool { return cpu.getFlag(FlagZ) })
	branch(0x28, "BVC", func(cpu *CPU) bool { return !cpu.getFlag(FlagV) })
	branch(0x29, "BVS", func(cpu *CPU) bool { return cpu.getFlag(FlagV) })
	branch(0x2A, "BPL", func(cpu *CPU) bool { return !cpu.getFlag(FlagN) })
	branch(0x2B, "BMI", func(cpu *CPU) bool { return cpu.getFlag(FlagN) })
	branch(0x2C, "BGE", func(cpu *CPU) bool { return cpu.getFlag(FlagN) == cpu.getFlag(FlagV) })
	branch(0x2D, "BLT", func(cpu *CPU) bool { return cpu.getFlag(FlagN) != cpu.getFlag(FlagV) })
	branch(0x2E, "BGT", func(cpu *CPU) bool {
		return !cpu.getFlag(FlagZ) && cpu.getFlag(FlagN) == cpu.getFlag(FlagV)
	})
	branch(0x2F, "BLE", func(cpu *CPU) bool {
		return cpu.getFlag(FlagZ) || cpu.getFlag(FlagN) != cpu.getFlag(FlagV)
	})

	// Stack/index inherent ops.
	set(0x30, "TSX", Inherent, 4, func(cpu *CPU) { cpu.IX = cpu.SP + 1 })
	set(0x31, "INS", Inherent, 4, func(cpu *CPU) { cpu.SP++ })
	set(0x32, "PULA", Inherent, 4, func(cpu *CPU) { cpu.A = cpu.pop8() })
	set(0x33, "PULB", Inherent, 4, func(cpu *CPU) { cpu.B = cpu.pop8() })
	set(0x34, "DES", Inherent, 4, func(cpu *CPU) { cpu.SP-- })
	set(0x35, "TXS", Inherent, 4, func(cpu *CPU) { cpu.SP = cpu.IX - 1 })
	set(0x36, "PSHA", Inherent, 4, func(cpu *CPU) { cpu.push8(cpu.A) })
	set(0x37, "PSHB", Inherent, 4, func(cpu *CPU) { cpu.push8(cpu.B) })
	set(0x39, "RTS", Inherent, 5, func(cpu *CPU) { cpu.PC = cpu.pop16() })
	set(0x3B, "RTI", Inherent, 10, func(cpu *CPU) {
		cpu.CC = cpu.pop8() | ccUnusedMask
		cpu.B = cpu.pop8()
		cpu.A = cpu.pop8()
		cpu.IX = cpu.pop16()
		cpu.PC = cpu.pop16()
	})
	set(0x3E, "WAI", Inherent, 9, func(cpu *CPU) {
		cpu.push16(cpu.PC)
		cpu.push16(cpu.IX)
		cpu.push8(cpu.A)
		cpu.push8(cpu.B)
		cpu.push8(cpu.CC)
		cpu.wait = true
	})
	set(0x3F, "SWI", Inherent, 12, func(cpu *CPU) { cpu.enterInterrupt(swiVectorAddr) })

	// Single-accumulator read-modify-write ops: A row (0x40s), B row (0x50s).
	rmwPair := func(opA, opB byte, mnemonic string, cycles int, fn func(cpu *CPU, v byte) byte) {
		set(opA, mnemonic+"A", Inherent, cycles, func(cpu *CPU) { cpu.A = fn(cpu, cpu.A) })
		set(opB, mnemonic+"B", Inherent, cycles, func(cpu *CPU) { cpu.B = fn(cpu, cpu.B) })
	}
	rmwPair(0x40, 0x50, "NEG", 2, func(cpu *CPU, v byte) byte { return cpu.aluNeg8(v) })
	rmwPair(0x43, 0x53, "COM", 2, func(cpu *CPU, v byte) byte { return cpu.aluCom8(v) })
	rmwPair(0x44, 0x54, "LSR", 2, func(cpu *CPU, v byte) byte { return cpu.aluLsr8(v) })
	rmwPair(0x46, 0x56, "ROR", 2, func(cpu *CPU, v byte) byte { return cpu.aluRor8(v) })
	rmwPair(0x47, 0x57, "ASR", 2, func(cpu *CPU, v byte) byte { return cpu.aluAsr8(v) })
	rmwPair(0x48, 0x58, "ASL", 2, func(cpu *CPU, v byte) byte { return cpu.aluAsl8(v) })
	rmwPair(0x49, 0x59, "ROL", 2, func(cpu *CPU, v byte) byte { return cpu.aluRol8(v) })
	rmwPair(0x4A, 0x5A, "DEC", 2, func(cpu *CPU, v byte) byte { return cpu.aluDec8(v) })
	rmwPair(0x4C, 0x5C, "INC", 2, func(cpu *CPU, v byte) byte { return cpu.aluInc8(v) })
	set(0x4D, "TSTA", Inherent, 2, func(cpu *CPU) { cpu.aluTst8(cpu.A) })
	set(0x5D, "TSTB", Inherent, 2, func(cpu *CPU) { cpu.aluTst8(cpu.B) })
	set(0x4F, "CLRA", Inherent, 2, func(cpu *CPU) { cpu.A = cpu.aluClr8() })
	set(0x5F, "CLRB", Inherent, 2, func(cpu *CPU) { cpu.B = cpu.aluClr8() })

	// Memory read-modify-write ops, shared handler regardless of indexed vs
	// extended addressing since by execution time AddrAbs is already resolved.
	rmwMem := func(opIdx, opExt byte, mnemonic string, fn func(cpu *CPU, v byte) byte) {
		handler := func(cpu *CPU) { cpu.write(cpu.AddrAbs, fn(cpu, cpu.read(cpu.AddrAbs))) }
		set(opIdx, mnemonic, Indexed, 7, handler)
		set(opExt, mnemonic, Extended, 6, handler)
	}
	rmwMem(0x60, 0x70, "NEG", func(cpu *CPU, v byte) byte { return cpu.aluNeg8(v) })
	rmwMem(0x63, 0x73, "COM", func(cpu *CPU, v byte) byte { return cpu.aluCom8(v) })
	rmwMem(0x64, 0x74, "LSR", func(cpu *CPU, v byte) byte { return cpu.aluLsr8(v) })
	rmwMem(0x66, 0x76, "ROR", func(cpu *CPU, v byte) byte { return cpu.aluRor8(v) })
	rmwMem(0x67, 0x77, "ASR", func(cpu *CPU, v byte) byte { return cpu.aluAsr8(v) })
	rmwMem(0x68, 0x78, "ASL", func(cpu *CPU, v byte) byte { return cpu.aluAsl8(v) })
	rmwMem(0x69, 0x79, "ROL", func(cpu *CPU, v byte) byte { return cpu.aluRol8(v) })
	rmwMem(0x6A, 0x7A, "DEC", func(cpu *CPU, v byte) byte { return cpu.aluDec8(v) })
	rmwMem(0x6C, 0x7C, "INC", func(cpu *CPU, v byte) byte { return cpu.aluInc8(v) })
	set(0x6D, "TST", Indexed, 7, func(cpu *CPU) { cpu.aluTst8(cpu.read(cpu.AddrAbs)) })
	set(0x7D, "TST", Extended, 6, func(cpu *CPU) { cpu.aluTst8(cpu.read(cpu.AddrAbs)) })
	set(0x6F, "CLR", Indexed, 7, func(cpu *CPU) { cpu.write(cpu.AddrAbs, cpu.aluClr8()) })
	set(0x7F, "CLR", Extended, 6, func(cpu *CPU) { cpu.write(cpu.AddrAbs, cpu.aluClr8()) })
	set(0x6E, "JMP", Indexed, 4, func(cpu *CPU) { cpu.PC = cpu.AddrAbs })
	set(0x7E, "JMP", Extended, 3, func(cpu *CPU) { cpu.PC = cpu.AddrAbs })

	// MB8861 mask-extension ops: unused 6800 opcodes repurposed per this
	// repo's Open Question decision (see DESIGN.md). All cost 7 cycles.
	set(0x71, "NIM", IndexedImmediate, 7, func(cpu *CPU) {
		result := aluMaskAnd(cpu.read(cpu.AddrAbs), cpu.Fetched)
		cpu.write(cpu.AddrAbs, result)
		cpu.setNZ8(result)
	})
	set(0x72, "OIM", IndexedImmediate, 7, func(cpu *CPU) {
		result := aluMaskOr(cpu.read(cpu.AddrAbs), cpu.Fetched)
		cpu.write(cpu.AddrAbs, result)
		cpu.setNZ8(result)
	})
	set(0x75, "XIM", IndexedImmediate, 7, func(cpu *CPU) {
		result := aluMaskXor(cpu.read(cpu.AddrAbs), cpu.Fetched)
		cpu.write(cpu.AddrAbs, result)
		cpu.setNZ8(result)
	})
	set(0x7B, "TMM", IndexedImmediate, 7, func(cpu *CPU) {
		cpu.setNZ8(aluMaskAnd(cpu.read(cpu.AddrAbs), cpu.Fetched))
	})

	// BSR and JSR.
	set(0x8D, "BSR", Relative, 8, func(cpu *CPU) {
		cpu.push16(cpu.PC)
		cpu.PC = cpu.AddrRel
	})
	set(0xAD, "JSR", Indexed, 8, func(cpu *CPU) {
		cpu.push16(cpu.PC)
		cpu.PC = cpu.AddrAbs
	})
	set(0xBD, "JSR", Extended, 9, func(cpu *CPU) {
		cpu.push16(cpu.PC)
		cpu.PC = cpu.AddrAbs
	})

	// Two-operand accumulator instructions across all four memory-referencing
	// modes. regA/regB select which accumulator the handler reads/writes.
	type acc struct {
		get func(cpu *CPU) byte
		set func(cpu *CPU, v byte)
	}
	regA := acc{get: func(cpu *CPU) byte { return cpu.A }, set: func(cpu *CPU, v byte) { cpu.A = v }}
	regB := acc{get: func(cpu *CPU) byte { return cpu.B }, set: func(cpu *CPU, v byte) { cpu.B = v }}

	binOp := func(opImm, opDir, opIdx, opExt byte, mnemonic string, r acc, fn func(cpu *CPU, a, m byte) byte) {
		handler := func(cpu *CPU) { r.set(cpu, fn(cpu, r.get(cpu), cpu.fetch())) }
		set(opImm, mnemonic, Immediate8, 2, handler)
		set(opDir, mnemonic, Direct, 3, handler)
		set(opIdx, mnemonic, Indexed, 5, handler)
		set(opExt, mnemonic, Extended, 4, handler)
	}
	flagOnlyOp := func(opImm, opDir, opIdx, opExt byte, mnemonic string, r acc, fn func(cpu *CPU, a, m byte)) {
		handler := func(cpu *CPU) { fn(cpu, r.get(cpu), cpu.fetch()) }
		set(opImm, mnemonic, Immediate8, 2, handler)
		set(opDir, mnemonic, Direct, 3, handler)
		set(opIdx, mnemonic, Indexed, 5, handler)
		set(opExt, mnemonic, Extended, 4, handler)
	}
	storeOp := func(opDir, opIdx, opExt byte, mnemonic string, r acc) {
		handler := func(cpu *CPU) {
			v := r.get(cpu)
			cpu.write(cpu.AddrAbs, v)
			cpu.setFlag(FlagV, false)
			cpu.setNZ8(v)
		}
		set(opDir, mnemonic, Direct, 4, handler)
		set(opIdx, mnemonic, Indexed, 6, handler)
		set(opExt, mnemonic, Extended, 5, handler)
	}

	binOp(0x80, 0x90, 0xA0, 0xB0, "SUBA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluSub8(a, m, 0) })
	flagOnlyOp(0x81, 0x91, 0xA1, 0xB1, "CMPA", regA, func(cpu *CPU, a, m byte) { cpu.aluCompare8(a, m) })
	borrow := func(cpu *CPU) byte {
		if cpu.getFlag(FlagC) {
			return 1
		}
		return 0
	}
	binOp(0x82, 0x92, 0xA2, 0xB2, "SBCA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluSub8(a, m, borrow(cpu)) })
	binOp(0x84, 0x94, 0xA4, 0xB4, "ANDA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluAnd8(a, m) })
	flagOnlyOp(0x85, 0x95, 0xA5, 0xB5, "BITA", regA, func(cpu *CPU, a, m byte) { cpu.aluBit8(a, m) })
	binOp(0x86, 0x96, 0xA6, 0xB6, "LDAA", regA, func(cpu *CPU, a, m byte) byte {
		cpu.setFlag(FlagV, false)
		cpu.setNZ8(m)
		return m
	})
	storeOp(0x97, 0xA7, 0xB7, "STAA", regA)
	binOp(0x88, 0x98, 0xA8, 0xB8, "EORA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluEor8(a, m) })
	binOp(0x89, 0x99, 0xA9, 0xB9, "ADCA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluAdd8(a, m, borrow(cpu)) })
	binOp(0x8A, 0x9A, 0xAA, 0xBA, "ORAA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluOr8(a, m) })
	binOp(0x8B, 0x9B, 0xAB, 0xBB, "ADDA", regA, func(cpu *CPU, a, m byte) byte { return cpu.aluAdd8(a, m, 0) })

	binOp(0xC0, 0xD0, 0xE0, 0xF0, "SUBB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluSub8(a, m, 0) })
	flagOnlyOp(0xC1, 0xD1, 0xE1, 0xF1, "CMPB", regB, func(cpu *CPU, a, m byte) { cpu.aluCompare8(a, m) })
	binOp(0xC2, 0xD2, 0xE2, 0xF2, "SBCB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluSub8(a, m, borrow(cpu)) })
	binOp(0xC4, 0xD4, 0xE4, 0xF4, "ANDB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluAnd8(a, m) })
	flagOnlyOp(0xC5, 0xD5, 0xE5, 0xF5, "BITB", regB, func(cpu *CPU, a, m byte) { cpu.aluBit8(a, m) })
	binOp(0xC6, 0xD6, 0xE6, 0xF6, "LDAB", regB, func(cpu *CPU, a, m byte) byte {
		cpu.setFlag(FlagV, false)
		cpu.setNZ8(m)
		return m
	})
	storeOp(0xD7, 0xE7, 0xF7, "STAB", regB)
	binOp(0xC8, 0xD8, 0xE8, 0xF8, "EORB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluEor8(a, m) })
	binOp(0xC9, 0xD9, 0xE9, 0xF9, "ADCB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluAdd8(a, m, borrow(cpu)) })
	binOp(0xCA, 0xDA, 0xEA, 0xFA, "ORAB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluOr8(a, m) })
	binOp(0xCB, 0xDB, 0xEB, 0xFB, "ADDB", regB, func(cpu *CPU, a, m byte) byte { return cpu.aluAdd8(a, m, 0) })

	// 16-bit index/stack-pointer instructions.
	set16N := func(cpu *CPU, v uint16) { cpu.setFlag(FlagV, false); cpu.setFlag(FlagZ, v == 0); cpu.setFlag(FlagN, v&0x8000 != 0) }
	ldx := func(cpu *CPU) { v := cpu.fetch16(); cpu.IX = v; set16N(cpu, v) }
	set(0x8E, "LDX", Immediate16, 3, ldx)
	set(0x9E, "LDX", Direct, 4, ldx)
	set(0xAE, "LDX", Indexed, 6, ldx)
	set(0xBE, "LDX", Extended, 5, ldx)
	stx := func(cpu *CPU) { cpu.write16(cpu.AddrAbs, cpu.IX); set16N(cpu, cpu.IX) }
	set(0x9F, "STX", Direct, 5, stx)
	set(0xAF, "STX", Indexed, 7, stx)
	set(0xBF, "STX", Extended, 6, stx)
	cpx := func(cpu *CPU) {
		m := cpu.fetch16()
		result := cpu.IX - m
		cpu.setFlag(FlagZ, result == 0)
		cpu.setFlag(FlagN, result&0x8000 != 0)
		cpu.setFlag(FlagV, (cpu.IX^m)&(cpu.IX^result)&0x8000 != 0)
	}
	set(0x8C, "CPX", Immediate16, 3, cpx)
	set(0x9C, "CPX", Direct, 4, cpx)
	set(0xAC, "CPX", Indexed, 6, cpx)
	set(0xBC, "CPX", Extended, 5, cpx)
	set(0x8F, "XGDX", Inherent, 4, func(cpu *CPU) {
		a, b := cpu.A, cpu.B
		cpu.A, cpu.B = byte(cpu.IX>>8), byte(cpu.IX)
		cpu.IX = uint16(a)<<8 | uint16(b)
	})

	ldsHandler := func(cpu *CPU) { v := cpu.fetch16(); cpu.SP = v; set16N(cpu, v) }
	set(0xCE, "LDS", Immediate16, 3, ldsHandler)
	set(0xDE, "LDS", Direct, 4, ldsHandler)
	set(0xEE, "LDS", Indexed, 6, ldsHandler)
	set(0xFE, "LDS", Extended, 5, ldsHandler)
	stsHandler := func(cpu *CPU) { cpu.write16(cpu.AddrAbs, cpu.SP); set16N(cpu, cpu.SP) }
	set(0xDF, "STS", Direct, 5, stsHandler)
	set(0xEF, "STS", Indexed, 7, stsHandler)
	set(0xFF, "STS", Extended, 6, stsHandler)

	// ADX: MB8861 extension, add an 8-bit immediate into IX (Z flag only).
	set(0xEC, "ADX", Immediate8, 3, func(cpu *CPU) {
		cpu.IX += uint16(cpu.fetch())
		cpu.setFlag(FlagZ, cpu.IX == 0)
	})

	return t
}
