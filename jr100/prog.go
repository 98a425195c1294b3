package jr100

import "encoding/binary"

const progMagic = "PROG"

// PROG section type tags, per spec.md §4.7/§6.
const (
	sectionProgramName uint16 = 0x0001
	sectionBasicFlag   uint16 = 0x0002
	sectionMemoryBytes uint16 = 0x0100
)

// RomBaseAddr is where a raw 8192-byte BASIC ROM image is mapped, per
// spec.md §4.7.
const RomBaseAddr uint16 = 0xE000
const RomSize = 8192

// Program is the parsed result of a PROG file: the program's declared
// name, whether its basic-flag section marks it as a BASIC program rather
// than machine code, and the memory writes it requests.
type Program struct {
	Name      string
	IsBasic   bool
	MemWrites []MemWrite
}

// MemWrite is one typed memory-bytes section: a starting address and the
// bytes to place there.
type MemWrite struct {
	Addr  uint16
	Bytes []byte
}

// LoadProg parses a PROG container: a fixed header (4-byte "PROG" magic,
// u16 version, u16 section count) followed by exactly that many typed
// sections (u16 type, u32 length, payload), little-endian throughout, per
// spec.md §6. Grounded on nes/cartridge.go's fixed-header-then-sections
// parsing shape, generalized from iNES's single fixed layout to PROG's
// repeatable typed sections. Unrecognized section types are skipped using
// their length field rather than rejected, per spec.md §4.7.
func LoadProg(data []byte) (*Program, error) {
	const headerSize = 4 + 2 + 2
	if len(data) < headerSize {
		return nil, &ProgParseError{Reason: ProgTruncated, Offset: 0}
	}
	if string(data[:4]) != progMagic {
		return nil, &ProgParseError{Reason: ProgBadMagic, Offset: 0}
	}
	sectionCount := int(binary.LittleEndian.Uint16(data[6:8]))

	prog := &Program{}
	offset := headerSize
	for i := 0; i < sectionCount; i++ {
		const sectionHeaderSize = 2 + 4
		if offset+sectionHeaderSize > len(data) {
			return nil, &ProgParseError{Reason: ProgTruncated, Offset: offset}
		}
		sectionType := binary.LittleEndian.Uint16(data[offset : offset+2])
		length := int(binary.LittleEndian.Uint32(data[offset+2 : offset+6]))
		payloadStart := offset + sectionHeaderSize
		payloadEnd := payloadStart + length
		if length < 0 || payloadEnd > len(data) {
			return nil, &ProgParseError{Reason: ProgTruncated, Offset: offset}
		}
		payload := data[payloadStart:payloadEnd]

		switch sectionType {
		case sectionProgramName:
			prog.Name = string(payload)
		case sectionBasicFlag:
			if length < 1 {
				return nil, &ProgParseError{Reason: ProgBadLength, Offset: offset}
			}
			prog.IsBasic = payload[0] != 0
		case sectionMemoryBytes:
			if length < 4 {
				return nil, &ProgParseError{Reason: ProgBadLength, Offset: offset}
			}
			addr := binary.LittleEndian.Uint16(payload[0:2])
			size := int(binary.LittleEndian.Uint16(payload[2:4]))
			if 4+size > length || int(addr)+size > 0x10000 {
				return nil, &ProgParseError{Reason: ProgBadLength, Offset: offset}
			}
			bytes := make([]byte, size)
			copy(bytes, payload[4:4+size])
			prog.MemWrites = append(prog.MemWrites, MemWrite{Addr: addr, Bytes: bytes})
		default:
			// Unknown section type: skip via its declared length.
		}

		offset = payloadEnd
	}

	return prog, nil
}

// Apply writes every memory-bytes section of the program to the bus. It is
// the caller's responsibility to have already mapped RAM regions covering
// the target addresses.
func (p *Program) Apply(bus *Bus) {
	for _, w := range p.MemWrites {
		for i, b := range w.Bytes {
			bus.Write(w.Addr+uint16(i), b)
		}
	}
}

// LoadROM validates and returns a raw BASIC ROM image for mapping at
// RomBaseAddr.
func LoadROM(data []byte) ([]byte, error) {
	if len(data) != RomSize {
		return nil, &RomSizeError{Got: len(data), Want: RomSize}
	}
	return data, nil
}

// KeyEvent is one timed keystroke produced by ParseBasicListing, replayed
// by the host paste adapter through Keyboard.Press/Release.
type KeyEvent struct {
	Row, Column int
	Press       bool
}

// basicKeyMap maps ASCII characters to the JR-100 key matrix position that
// types them. Only the characters a BASIC listing plausibly contains
// (uppercase letters, digits, common punctuation, space, newline) are
// mapped; unmapped characters are skipped. Exact matrix geometry here is a
// standing choice (see DESIGN.md's Open Question decisions) since neither
// the distilled spec nor the example pack document full keycap placement.
var basicKeyMap = buildBasicKeyMap()

func buildBasicKeyMap() map[byte][2]int {
	m := map[byte][2]int{}
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for i := 0; i < len(letters); i++ {
		row := i / 8
		col := i % 8
		m[letters[i]] = [2]int{row, col}
	}
	digits := "0123456789"
	for i := 0; i < len(digits); i++ {
		row := 4 + i/8
		col := i % 8
		m[digits[i]] = [2]int{row, col}
	}
	m[' '] = [2]int{6, 0}
	m['\n'] = [2]int{6, 1}
	m['='] = [2]int{6, 2}
	m['+'] = [2]int{6, 3}
	m['-'] = [2]int{6, 4}
	m['"'] = [2]int{6, 5}
	m['('] = [2]int{6, 6}
	m[')'] = [2]int{6, 7}
	return m
}

// ParseBasicListing turns pasted BASIC program text into a sequence of
// press/release KeyEvents, one pair per recognized character, in the order
// the host should replay them. Characters with no key mapping are
// silently skipped rather than aborting the whole paste, since a BASIC
// listing pasted from an arbitrary source (e.g. a web page) may contain
// stray formatting characters.
func ParseBasicListing(text string) []KeyEvent {
	var events []KeyEvent
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		pos, ok := basicKeyMap[c]
		if !ok {
			continue
		}
		events = append(events, KeyEvent{Row: pos[0], Column: pos[1], Press: true})
		events = append(events, KeyEvent{Row: pos[0], Column: pos[1], Press: false})
	}
	return events
}
