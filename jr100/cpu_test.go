package jr100

import "testing"

// newTestMachine builds a machine with a flat RAM-backed bus covering the
// whole address space, so tests can place code and vectors anywhere
// without worrying about the real JR-100 memory map.
func newTestMachine() (*CPU, *Bus, []byte) {
	ram := make([]byte, 0x10000)
	bus := NewBus()
	bus.MapRegion("ram", 0, 0xFFFF, func(off uint16) byte { return ram[off] }, func(off uint16, v byte) { ram[off] = v })
	// MapRegion's base+length must stay within uint16 arithmetic; cover
	// the last byte with a second one-byte region.
	bus.MapRegion("ram-top", 0xFFFF, 1, func(off uint16) byte { return ram[0xFFFF] }, func(off uint16, v byte) { ram[0xFFFF] = v })
	cpu := NewCPU(bus)
	return cpu, bus, ram
}

func TestCPUReset(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[0xFFFE] = 0x12
	ram[0xFFFF] = 0x34

	cpu.Reset()

	if cpu.PC != 0x1234 {
		t.Errorf("PC after reset = %#x, want 0x1234", cpu.PC)
	}
	if !cpu.getFlag(FlagI) {
		t.Error("I flag should be set after reset")
	}
	if cpu.CC&ccUnusedMask != ccUnusedMask {
		t.Errorf("CC unused bits not set after reset: %#x", cpu.CC)
	}
}

func TestCPUStepLDAAImmediate(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[0x0000] = 0x86 // LDAA #$42
	ram[0x0001] = 0x42
	cpu.PC = 0

	cycles, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if cpu.A != 0x42 {
		t.Errorf("A = %#x, want 0x42", cpu.A)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if cpu.getFlag(FlagZ) || cpu.getFlag(FlagN) {
		t.Errorf("unexpected flags after LDAA #$42: CC=%#x", cpu.CC)
	}
}

func TestCPUStepSTAADirect(t *testing.T) {
	cpu, bus, ram := newTestMachine()
	cpu.A = 0x99
	ram[0x0000] = 0x97 // STAA $50
	ram[0x0001] = 0x50
	cpu.PC = 0

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if got := bus.Read(0x0050); got != 0x99 {
		t.Errorf("mem[0x50] = %#x, want 0x99", got)
	}
}

func TestCPUStepCMPABranch(t *testing.T) {
	// CMPA #$05 ; BNE +2 (skip the next instruction if A != 5)
	cpu, _, ram := newTestMachine()
	cpu.A = 0x05
	ram[0x0000] = 0x81 // CMPA #$05
	ram[0x0001] = 0x05
	ram[0x0002] = 0x26 // BNE
	ram[0x0003] = 0x02
	cpu.PC = 0

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("CMPA step error: %v", err)
	}
	if !cpu.getFlag(FlagZ) {
		t.Fatal("Z flag should be set after CMPA #$05 when A == 5")
	}

	pcBefore := cpu.PC
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("BNE step error: %v", err)
	}
	if cpu.PC != pcBefore+2 {
		t.Errorf("BNE should not have branched (Z set): PC = %#x, want %#x", cpu.PC, pcBefore+2)
	}
}

func TestCPUStepIllegalOpcode(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[0x0000] = 0x02 // unused 6800-family opcode
	cpu.PC = 0

	_, err := cpu.Step()
	var illegal *IllegalOpcode
	if err == nil {
		t.Fatal("expected IllegalOpcode error, got nil")
	}
	if ie, ok := err.(*IllegalOpcode); !ok {
		t.Fatalf("expected *IllegalOpcode, got %T", err)
	} else {
		illegal = ie
	}
	if illegal.Opcode != 0x02 || illegal.Pc != 0 {
		t.Errorf("IllegalOpcode = %+v, want {Pc:0 Opcode:0x02}", illegal)
	}
}

func TestCPUJSRRTSRoundTrip(t *testing.T) {
	cpu, _, ram := newTestMachine()
	cpu.SP = 0x01FF
	ram[0x0000] = 0xBD // JSR $0010
	ram[0x0001] = 0x00
	ram[0x0002] = 0x10
	ram[0x0010] = 0x39 // RTS
	cpu.PC = 0

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("JSR step error: %v", err)
	}
	if cpu.PC != 0x0010 {
		t.Fatalf("PC after JSR = %#x, want 0x0010", cpu.PC)
	}

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("RTS step error: %v", err)
	}
	if cpu.PC != 0x0003 {
		t.Errorf("PC after RTS = %#x, want 0x0003 (return address)", cpu.PC)
	}
}

func TestCPUIRQMaskedByI(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[irqVectorAddr] = 0x20
	ram[irqVectorAddr+1] = 0x00
	ram[0x0000] = 0x01 // NOP
	cpu.PC = 0
	cpu.SP = 0x01FF
	cpu.setFlag(FlagI, true)

	cpu.RaiseIRQ()
	cycles, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if cpu.PC != 0x0001 {
		t.Errorf("IRQ should stay masked while I is set: PC = %#x, want 0x0001", cpu.PC)
	}
	if cycles != 2 {
		t.Errorf("expected the NOP's own cycle cost (2), got %d", cycles)
	}
}

func TestCPUNMIAlwaysServiced(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[nmiVectorAddr] = 0x30
	ram[nmiVectorAddr+1] = 0x00
	ram[0x0000] = 0x01 // NOP
	cpu.PC = 0
	cpu.SP = 0x01FF
	cpu.setFlag(FlagI, true)

	cpu.RaiseNMI()
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if cpu.PC != 0x3000 {
		t.Errorf("NMI should be serviced even with I set: PC = %#x, want 0x3000", cpu.PC)
	}
}

func TestCPUSWIVectorsSeparatelyFromIRQ(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[swiVectorAddr] = 0x40
	ram[swiVectorAddr+1] = 0x00
	ram[irqVectorAddr] = 0x50
	ram[irqVectorAddr+1] = 0x00
	ram[0x0000] = 0x3F // SWI
	cpu.PC = 0
	cpu.SP = 0x01FF

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("SWI step error: %v", err)
	}
	if cpu.PC != 0x4000 {
		t.Errorf("SWI should vector through swiVectorAddr (0x4000), got PC = %#x", cpu.PC)
	}
}

func TestCPUWAIWakeDoesNotDoublePushRegisters(t *testing.T) {
	cpu, _, ram := newTestMachine()
	ram[irqVectorAddr] = 0x60
	ram[irqVectorAddr+1] = 0x00
	ram[0x0000] = 0x3E // WAI
	cpu.PC = 0
	cpu.SP = 0x01FF
	cpu.setFlag(FlagI, false)

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("WAI step error: %v", err)
	}
	if !cpu.wait {
		t.Fatal("WAI should park the CPU in wait state")
	}
	spAfterWAI := cpu.SP
	if spAfterWAI != 0x01FF-7 {
		t.Fatalf("WAI should push 7 bytes (PC,IX,A,B,CC), SP = %#x, want %#x", spAfterWAI, 0x01FF-7)
	}

	cpu.RaiseIRQ()
	cycles, err := cpu.Step()
	if err != nil {
		t.Fatalf("IRQ-wake step error: %v", err)
	}
	if cpu.wait {
		t.Error("servicing the pending IRQ should clear wait")
	}
	if cpu.PC != 0x6000 {
		t.Errorf("PC after IRQ wake = %#x, want 0x6000", cpu.PC)
	}
	if cpu.SP != spAfterWAI {
		t.Errorf("IRQ wake from WAI must not push registers again: SP = %#x, want %#x (unchanged)", cpu.SP, spAfterWAI)
	}
	if cycles != 4 {
		t.Errorf("IRQ wake from WAI should charge only the vector fetch (4 cycles), got %d", cycles)
	}
}
