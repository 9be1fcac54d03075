package object

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Read parses an RVO container back into an Object, the reverse of Write.
func Read(data []byte) (*Object, error) {
	r := bytes.NewReader(data)

	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("object: reading header: %w", err)
	}
	if hdr.Magic != Magic {
		return nil, fmt.Errorf("object: bad magic 0x%08X (expected 0x%08X)", hdr.Magic, Magic)
	}

	sectionRecs := make([]sectionRec, hdr.SectionCount)
	if err := binary.Read(r, binary.LittleEndian, &sectionRecs); err != nil {
		return nil, fmt.Errorf("object: reading section table: %w", err)
	}
	symbolRecs := make([]symbolRec, hdr.SymbolCount)
	if err := binary.Read(r, binary.LittleEndian, &symbolRecs); err != nil {
		return nil, fmt.Errorf("object: reading symbol table: %w", err)
	}
	relocRecs := make([]relocRec, hdr.RelocCount)
	if err := binary.Read(r, binary.LittleEndian, &relocRecs); err != nil {
		return nil, fmt.Errorf("object: reading relocation table: %w", err)
	}

	strTab := make([]byte, hdr.StringTableSize)
	if _, err := r.Read(strTab); err != nil && hdr.StringTableSize > 0 {
		return nil, fmt.Errorf("object: reading string table: %w", err)
	}
	str := func(off uint16) string {
		if off == 0xFFFF {
			return ""
		}
		if int(off) >= len(strTab) {
			return ""
		}
		end := int(off)
		for end < len(strTab) && strTab[end] != 0 {
			end++
		}
		return string(strTab[off:end])
	}

	obj := &Object{Entry: str(hdr.EntryNameOffset)}

	obj.Sections = make([]Section, len(sectionRecs))
	for i, sr := range sectionRecs {
		buf := make([]byte, sr.Length)
		if _, err := r.Read(buf); err != nil && sr.Length > 0 {
			return nil, fmt.Errorf("object: reading bytes for section %d: %w", i, err)
		}
		obj.Sections[i] = Section{
			Name:      str(sr.NameOffset),
			Base:      sr.Base,
			Bytes:     buf,
			Alignment: sr.Alignment,
		}
	}

	obj.Symbols = make([]Symbol, len(symbolRecs))
	for i, sy := range symbolRecs {
		obj.Symbols[i] = Symbol{
			Name:    str(sy.NameOffset),
			Section: str(sy.SectionOffset),
			Offset:  sy.Offset,
			Length:  sy.Length,
			Kind:    SymbolKind(sy.Kind),
			Scope:   Scope(sy.Scope),
		}
	}

	obj.Relocations = make([]Relocation, len(relocRecs))
	for i, rr := range relocRecs {
		obj.Relocations[i] = Relocation{
			Section: str(rr.SectionOffset),
			Offset:  rr.Offset,
			Target:  str(rr.TargetOffset),
			Addend:  rr.Addend,
			Kind:    RelocKind(rr.Kind),
		}
	}

	return obj, nil
}

// LoadImage is the object-consumption contract's return shape (spec.md §6):
// a map from section name to bytes, a symbol address map, and an entry PC.
type LoadImage struct {
	Sections     map[string][]byte
	SectionBases map[string]uint32 // base address each Sections entry loads at
	Symbols      map[string]uint32 // absolute address = section base + offset
	Entry        uint32
}

// Load reads a container and reduces it to the flat shape the emulator
// loader consumes: no relocations survive here, so Load only produces
// something useful for fully-resolved (relocation-free) objects.
func Load(data []byte) (*LoadImage, error) {
	obj, err := Read(data)
	if err != nil {
		return nil, err
	}
	if len(obj.Relocations) > 0 {
		return nil, fmt.Errorf("object: %d unresolved relocations; link before loading", len(obj.Relocations))
	}

	img := &LoadImage{
		Sections:     make(map[string][]byte, len(obj.Sections)),
		SectionBases: make(map[string]uint32, len(obj.Sections)),
		Symbols:      make(map[string]uint32, len(obj.Symbols)),
	}
	bases := make(map[string]uint32, len(obj.Sections))
	for _, s := range obj.Sections {
		img.Sections[s.Name] = s.Bytes
		img.SectionBases[s.Name] = s.Base
		bases[s.Name] = s.Base
	}
	for _, sym := range obj.Symbols {
		img.Symbols[sym.Name] = bases[sym.Section] + sym.Offset
	}

	if obj.Entry != "" {
		addr, ok := img.Symbols[obj.Entry]
		if !ok {
			return nil, fmt.Errorf("object: entry symbol %q not found", obj.Entry)
		}
		img.Entry = addr
	} else if base, ok := bases["text"]; ok {
		img.Entry = base
	}
	return img, nil
}
