package jr100

import (
	"encoding/binary"
	"testing"
)

func leUint16(v int) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

func leUint32(v int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

// buildSection frames a section as type(u16) + length(u32) + payload, per
// spec.md §6.
func buildSection(sectionType uint16, payload []byte) []byte {
	var buf []byte
	buf = append(buf, leUint16(int(sectionType))...)
	buf = append(buf, leUint32(len(payload))...)
	buf = append(buf, payload...)
	return buf
}

func buildProgFixture(name string, isBasic bool, addr uint16, data []byte) []byte {
	var sections [][]byte
	sections = append(sections, buildSection(sectionProgramName, []byte(name)))

	basicFlag := byte(0)
	if isBasic {
		basicFlag = 1
	}
	sections = append(sections, buildSection(sectionBasicFlag, []byte{basicFlag}))

	memPayload := append(leUint16(int(addr)), leUint16(len(data))...)
	memPayload = append(memPayload, data...)
	sections = append(sections, buildSection(sectionMemoryBytes, memPayload))

	var buf []byte
	buf = append(buf, []byte(progMagic)...)
	buf = append(buf, leUint16(1)...)             // version
	buf = append(buf, leUint16(len(sections))...) // section count
	for _, s := range sections {
		buf = append(buf, s...)
	}
	return buf
}

func TestLoadProgRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	fixture := buildProgFixture("HELLO", true, 0x1000, data)

	prog, err := LoadProg(fixture)
	if err != nil {
		t.Fatalf("LoadProg returned error: %v", err)
	}
	if prog.Name != "HELLO" {
		t.Errorf("Name = %q, want HELLO", prog.Name)
	}
	if !prog.IsBasic {
		t.Error("IsBasic = false, want true")
	}
	if len(prog.MemWrites) != 1 || prog.MemWrites[0].Addr != 0x1000 {
		t.Fatalf("unexpected MemWrites: %+v", prog.MemWrites)
	}

	bus := NewBus()
	ram := make([]byte, 0x2000)
	bus.MapRegion("ram", 0x1000, 0x1000, func(off uint16) byte { return ram[off] }, func(off uint16, v byte) { ram[off] = v })
	prog.Apply(bus)

	for i, want := range data {
		if got := bus.Read(0x1000 + uint16(i)); got != want {
			t.Errorf("bus.Read(0x%04X) = %#x, want %#x", 0x1000+i, got, want)
		}
	}
}

// TestLoadProgSpecExample replays spec.md §8.6's literal scenario: header
// `PROG\x01\x00\x02\x00`, a memory-bytes section (addr=0x0100, one byte
// 0xAB), then a basic-flag section (true). After load, memory[0x0100] must
// read 0xAB and the program must report IsBasic.
func TestLoadProgSpecExample(t *testing.T) {
	header := append([]byte(progMagic), 0x01, 0x00, 0x02, 0x00)

	memPayload := append(leUint16(0x0100), leUint16(1)...)
	memPayload = append(memPayload, 0xAB)
	memSection := buildSection(sectionMemoryBytes, memPayload)

	basicSection := buildSection(sectionBasicFlag, []byte{0x01})

	fixture := append(header, memSection...)
	fixture = append(fixture, basicSection...)

	prog, err := LoadProg(fixture)
	if err != nil {
		t.Fatalf("LoadProg returned error on spec.md §8.6's example: %v", err)
	}
	if !prog.IsBasic {
		t.Error("IsBasic = false, want true")
	}
	if len(prog.MemWrites) != 1 || prog.MemWrites[0].Addr != 0x0100 {
		t.Fatalf("unexpected MemWrites: %+v", prog.MemWrites)
	}

	bus := NewBus()
	ram := make([]byte, 0x200)
	bus.MapRegion("ram", 0, 0x200, func(off uint16) byte { return ram[off] }, func(off uint16, v byte) { ram[off] = v })
	prog.Apply(bus)

	if got := bus.Read(0x0100); got != 0xAB {
		t.Errorf("memory[0x0100] = %#x, want 0xAB", got)
	}
}

func TestLoadProgBadMagic(t *testing.T) {
	_, err := LoadProg([]byte("XXXX\x00\x00\x00\x00"))
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	if pe, ok := err.(*ProgParseError); !ok || pe.Reason != ProgBadMagic {
		t.Errorf("error = %v, want ProgBadMagic", err)
	}
}

func TestLoadProgTruncated(t *testing.T) {
	fixture := buildProgFixture("X", false, 0, []byte{1})
	truncated := fixture[:len(fixture)-2]

	_, err := LoadProg(truncated)
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
	pe, ok := err.(*ProgParseError)
	if !ok || pe.Reason != ProgTruncated {
		t.Errorf("error = %v, want ProgTruncated", err)
	}
}

func TestLoadROMSize(t *testing.T) {
	if _, err := LoadROM(make([]byte, 100)); err == nil {
		t.Fatal("expected RomSizeError for undersized ROM")
	}
	rom, err := LoadROM(make([]byte, RomSize))
	if err != nil {
		t.Fatalf("LoadROM returned error for correctly sized ROM: %v", err)
	}
	if len(rom) != RomSize {
		t.Errorf("len(rom) = %d, want %d", len(rom), RomSize)
	}
}

func TestParseBasicListing(t *testing.T) {
	events := ParseBasicListing("AB")
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4 (press+release per char)", len(events))
	}
	if !events[0].Press || events[1].Press {
		t.Error("expected press then release for the first character")
	}
	if events[0].Row != 0 || events[0].Column != 0 {
		t.Errorf("'A' mapped to row=%d col=%d, want row=0 col=0", events[0].Row, events[0].Column)
	}
}

func TestParseBasicListingSkipsUnmapped(t *testing.T) {
	events := ParseBasicListing("A\t")
	if len(events) != 2 {
		t.Errorf("expected the unmapped tab character to be skipped, got %d events", len(events))
	}
}
