package jr100

import "log/slog"

// resetVectorAddr and interrupt vector addresses, per spec.md §4.1.
const (
	nmiVectorAddr   uint16 = 0xFFFC
	resetVectorAddr uint16 = 0xFFFE
	irqVectorAddr   uint16 = 0xFFF8
	swiVectorAddr   uint16 = 0xFFFA
)

// Instruction is one entry of the 256-slot opcode dispatch table: a mnemonic
// for disassembly/logging, the addressing mode used to resolve its operand,
// the handler that performs the operation, and the fixed cycle cost of the
// whole fetch-decode-execute sequence.
type Instruction struct {
	Mnemonic string
	Mode     AddressingMode
	Execute  func(cpu *CPU)
	Cycles   int
}

// CPU emulates the MB8861, a 6800-family processor with accumulators A and
// B, one 16-bit index register IX, and the usual program counter / stack
// pointer / condition code register.
type CPU struct {
	A, B byte
	IX   uint16
	PC   uint16
	SP   uint16
	CC   byte

	// Fetched and AddrAbs/AddrRel are set by the addressing-mode resolver
	// and consumed by instruction handlers, mirroring the teacher's
	// Cpu6502 scratch fields.
	Fetched byte
	AddrAbs uint16
	AddrRel uint16
	Opcode  byte

	// wait is true while the CPU is parked in WAI awaiting an interrupt;
	// halt is cleared by Reset and is not set by any instruction, including
	// an illegal opcode.
	wait bool
	halt bool

	pendingNMI bool
	pendingIRQ bool

	CycleCount uint64

	bus    *Bus
	Logger *slog.Logger

	instLookup [256]Instruction
}

// NewCPU constructs a CPU wired to the given bus with the full MB8861
// opcode table installed.
func NewCPU(bus *Bus) *CPU {
	cpu := &CPU{bus: bus, Logger: slog.Default()}
	cpu.instLookup = buildOpcodeTable()
	return cpu
}

func (cpu *CPU) read(addr uint16) byte {
	return cpu.bus.Read(addr)
}

func (cpu *CPU) write(addr uint16, v byte) {
	cpu.bus.Write(addr, v)
}

// read16/write16 are big-endian, matching the MB8861's byte order for
// 16-bit operands and vectors (spec.md §3).
func (cpu *CPU) read16(addr uint16) uint16 {
	hi := cpu.read(addr)
	lo := cpu.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (cpu *CPU) write16(addr uint16, v uint16) {
	cpu.write(addr, byte(v>>8))
	cpu.write(addr+1, byte(v))
}

func (cpu *CPU) fetch() byte {
	cpu.Fetched = cpu.read(cpu.AddrAbs)
	return cpu.Fetched
}

func (cpu *CPU) fetch16() uint16 {
	return cpu.read16(cpu.AddrAbs)
}

func (cpu *CPU) push8(v byte) {
	cpu.write(cpu.SP, v)
	cpu.SP--
}

func (cpu *CPU) pop8() byte {
	cpu.SP++
	return cpu.read(cpu.SP)
}

func (cpu *CPU) push16(v uint16) {
	cpu.push8(byte(v))
	cpu.push8(byte(v >> 8))
}

func (cpu *CPU) pop16() uint16 {
	hi := cpu.pop8()
	lo := cpu.pop8()
	return uint16(hi)<<8 | uint16(lo)
}

// Reset loads PC from the reset vector and puts the CPU in its documented
// post-reset state: interrupts masked, stack pointer at 0x01FF (the top of
// page 1).
func (cpu *CPU) Reset() {
	cpu.A, cpu.B = 0, 0
	cpu.IX = 0
	cpu.SP = 0x01FF
	cpu.CC = ccUnusedMask | FlagI
	cpu.wait = false
	cpu.halt = false
	cpu.pendingNMI = false
	cpu.pendingIRQ = false
	cpu.PC = cpu.read16(resetVectorAddr)
	cpu.CycleCount = 0
}

// RaiseNMI latches a non-maskable interrupt request; it is serviced before
// the next instruction fetch regardless of the I flag.
func (cpu *CPU) RaiseNMI() {
	cpu.pendingNMI = true
}

// RaiseIRQ latches a maskable interrupt request; it is serviced before the
// next instruction fetch only if the I flag is clear.
func (cpu *CPU) RaiseIRQ() {
	cpu.pendingIRQ = true
}

// serviceInterrupts vectors to the NMI or IRQ handler if one is pending and,
// for IRQ, unmasked. Returns the cycle cost of servicing, or 0 if nothing
// was serviced.
func (cpu *CPU) serviceInterrupts() int {
	switch {
	case cpu.pendingNMI:
		cpu.pendingNMI = false
		return cpu.takeInterrupt(nmiVectorAddr)
	case cpu.pendingIRQ && !cpu.getFlag(FlagI):
		cpu.pendingIRQ = false
		return cpu.takeInterrupt(irqVectorAddr)
	default:
		return 0
	}
}

// takeInterrupt vectors the CPU to the given handler. If the CPU was parked
// in WAI, the registers are already on the stack (WAI pushed them before
// parking), so only the vector fetch is charged; otherwise enterInterrupt
// does the full push-then-vector sequence.
func (cpu *CPU) takeInterrupt(vector uint16) int {
	if cpu.wait {
		cpu.wait = false
		cpu.setFlag(FlagI, true)
		cpu.PC = cpu.read16(vector)
		return 4
	}
	cpu.enterInterrupt(vector)
	return 12
}

// enterInterrupt pushes PC, IX, A, B, CC (in that order, per the 6800-family
// convention) then sets I and jumps to the vector.
func (cpu *CPU) enterInterrupt(vector uint16) {
	cpu.push16(cpu.PC)
	cpu.push16(cpu.IX)
	cpu.push8(cpu.A)
	cpu.push8(cpu.B)
	cpu.push8(cpu.CC)
	cpu.setFlag(FlagI, true)
	cpu.PC = cpu.read16(vector)
}

// Step executes exactly one instruction (after servicing any pending
// interrupt) and returns the number of cycles it consumed. If the CPU is
// parked in WAI with no pending interrupt it consumes a single cycle and
// does nothing else. An illegal opcode returns *IllegalOpcode and consumes
// no further cycles.
func (cpu *CPU) Step() (int, error) {
	if cycles := cpu.serviceInterrupts(); cycles > 0 {
		cpu.CycleCount += uint64(cycles)
		return cycles, nil
	}

	if cpu.wait {
		cpu.CycleCount++
		return 1, nil
	}

	pc := cpu.PC
	opcode := cpu.read(pc)
	cpu.PC++
	cpu.Opcode = opcode

	inst := cpu.instLookup[opcode]
	if inst.Execute == nil {
		err := &IllegalOpcode{Pc: pc, Opcode: opcode}
		cpu.Logger.Error("illegal opcode", "pc", pc, "opcode", opcode)
		return 0, err
	}

	cpu.resolve(inst.Mode)
	inst.Execute(cpu)

	cpu.Logger.Debug("step", "pc", pc, "mnemonic", inst.Mnemonic, "cycles", inst.Cycles)

	cpu.CycleCount += uint64(inst.Cycles)
	return inst.Cycles, nil
}
