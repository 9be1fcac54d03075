package object

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// stringTable accumulates unique strings and hands back their byte offset,
// the way lang/yld's reader decodes symbol names from a shared table.
type stringTable struct {
	buf     bytes.Buffer
	offsets map[string]uint16
}

func newStringTable() *stringTable {
	return &stringTable{offsets: make(map[string]uint16)}
}

func (t *stringTable) intern(s string) uint16 {
	if s == "" {
		return 0xFFFF
	}
	if off, ok := t.offsets[s]; ok {
		return off
	}
	off := uint16(t.buf.Len())
	t.offsets[s] = off
	t.buf.WriteString(s)
	t.buf.WriteByte(0)
	return off
}

// Write serializes an Object into the RVO container format.
func Write(obj *Object) ([]byte, error) {
	if len(obj.Sections) > 0xFFFF || len(obj.Symbols) > 0xFFFF || len(obj.Relocations) > 0xFFFF {
		return nil, fmt.Errorf("object: too many sections/symbols/relocations for RVO container")
	}

	strs := newStringTable()

	sectionRecs := make([]sectionRec, len(obj.Sections))
	for i, s := range obj.Sections {
		sectionRecs[i] = sectionRec{
			NameOffset: strs.intern(s.Name),
			Base:       s.Base,
			Length:     uint32(len(s.Bytes)),
			Alignment:  s.Alignment,
		}
	}

	symbolRecs := make([]symbolRec, len(obj.Symbols))
	for i, sym := range obj.Symbols {
		symbolRecs[i] = symbolRec{
			NameOffset:    strs.intern(sym.Name),
			SectionOffset: strs.intern(sym.Section),
			Offset:        sym.Offset,
			Length:        sym.Length,
			Kind:          uint8(sym.Kind),
			Scope:         uint8(sym.Scope),
		}
	}

	relocRecs := make([]relocRec, len(obj.Relocations))
	for i, r := range obj.Relocations {
		relocRecs[i] = relocRec{
			SectionOffset: strs.intern(r.Section),
			TargetOffset:  strs.intern(r.Target),
			Offset:        r.Offset,
			Addend:        r.Addend,
			Kind:          uint8(r.Kind),
		}
	}

	entryOff := strs.intern(obj.Entry)

	hdr := header{
		Magic:           Magic,
		Version:         containerVersion,
		SectionCount:    uint16(len(obj.Sections)),
		SymbolCount:     uint16(len(obj.Symbols)),
		RelocCount:      uint16(len(obj.Relocations)),
		EntryNameOffset: entryOff,
		StringTableSize: uint32(strs.buf.Len()),
	}

	var out bytes.Buffer
	w := func(v any) {
		_ = binary.Write(&out, binary.LittleEndian, v)
	}
	w(hdr)
	w(sectionRecs)
	w(symbolRecs)
	w(relocRecs)
	out.Write(strs.buf.Bytes())
	for _, s := range obj.Sections {
		out.Write(s.Bytes)
	}
	return out.Bytes(), nil
}
