package object

// Magic identifies an RVO (rv32x object) container.
const Magic uint32 = 0x5256_3158 // spells "RV1X" big-endian; stored little-endian as "X1VR"

const containerVersion = 1

// header is the fixed 18-byte RVO header, modeled on the teacher's 16-byte
// WOF header (lang/yld/types.go) extended with wider counts since this
// object format carries named custom sections and a string table.
type header struct {
	Magic           uint32
	Version         uint8
	Flags           uint8
	SectionCount    uint16
	SymbolCount     uint16
	RelocCount      uint16
	EntryNameOffset uint16 // into string table; 0xFFFF = no explicit entry symbol
	StringTableSize uint32
}

// sectionRec, symbolRec and relocRec are the fixed-size table-of-contents
// rows that precede the string table and the raw section bytes, following
// the teacher's WOFSymbol/WOFReloc layout (lang/yld/types.go).
type sectionRec struct {
	NameOffset uint16
	_          uint16
	Base       uint32
	Length     uint32
	Alignment  uint32
}

type symbolRec struct {
	NameOffset    uint16
	SectionOffset uint16
	Offset        uint32
	Length        uint32
	Kind          uint8
	Scope         uint8
	_             uint16
}

type relocRec struct {
	SectionOffset uint16
	TargetOffset  uint16
	Offset        uint32
	Addend        int32
	Kind          uint8
	_             [3]byte
}
