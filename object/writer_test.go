package object

import (
	"bytes"
	"testing"
)

func sampleObject() *Object {
	return &Object{
		Sections: []Section{
			{Name: "text", Base: 0x1000, Bytes: []byte{0x13, 0x01, 0x01, 0x01}, Alignment: 4},
			{Name: "data", Base: 0x2000, Bytes: []byte{0xDE, 0xAD, 0xBE, 0xEF}, Alignment: 4},
		},
		Symbols: []Symbol{
			{Name: "_start", Section: "text", Offset: 0, Length: 4, Kind: SymText, Scope: ScopeGlobal},
			{Name: "buf", Section: "data", Offset: 0, Length: 4, Kind: SymData, Scope: ScopeLocal},
		},
		Relocations: []Relocation{
			{Section: "text", Offset: 0, Target: "buf", Addend: 0, Kind: RelocHi20},
		},
		Entry: "_start",
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	want := sampleObject()
	data, err := Write(want)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Entry != want.Entry {
		t.Errorf("Entry = %q, want %q", got.Entry, want.Entry)
	}
	if len(got.Sections) != len(want.Sections) {
		t.Fatalf("got %d sections, want %d", len(got.Sections), len(want.Sections))
	}
	for i := range want.Sections {
		ws, gs := want.Sections[i], got.Sections[i]
		if ws.Name != gs.Name || ws.Base != gs.Base || ws.Alignment != gs.Alignment {
			t.Errorf("section %d: got %+v, want %+v", i, gs, ws)
		}
		if !bytes.Equal(ws.Bytes, gs.Bytes) {
			t.Errorf("section %d bytes: got %v, want %v", i, gs.Bytes, ws.Bytes)
		}
	}
	if len(got.Symbols) != len(want.Symbols) {
		t.Fatalf("got %d symbols, want %d", len(got.Symbols), len(want.Symbols))
	}
	for i := range want.Symbols {
		if got.Symbols[i] != want.Symbols[i] {
			t.Errorf("symbol %d: got %+v, want %+v", i, got.Symbols[i], want.Symbols[i])
		}
	}
	if len(got.Relocations) != len(want.Relocations) {
		t.Fatalf("got %d relocations, want %d", len(got.Relocations), len(want.Relocations))
	}
	for i := range want.Relocations {
		if got.Relocations[i] != want.Relocations[i] {
			t.Errorf("relocation %d: got %+v, want %+v", i, got.Relocations[i], want.Relocations[i])
		}
	}
}

func TestWriteBadMagicRejected(t *testing.T) {
	data, err := Write(sampleObject())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data[0] ^= 0xFF
	if _, err := Read(data); err == nil {
		t.Error("Read accepted a container with corrupted magic")
	}
}

func TestLoadRejectsUnresolvedRelocations(t *testing.T) {
	data, err := Write(sampleObject())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Load(data); err == nil {
		t.Error("Load accepted an object with outstanding relocations")
	}
}

func TestLoadResolvesEntryAndSymbols(t *testing.T) {
	obj := sampleObject()
	obj.Relocations = nil
	data, err := Write(obj)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	img, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Entry != 0x1000 {
		t.Errorf("Entry = 0x%X, want 0x1000", img.Entry)
	}
	if addr := img.Symbols["buf"]; addr != 0x2000 {
		t.Errorf("buf = 0x%X, want 0x2000", addr)
	}
	if !bytes.Equal(img.Sections["data"], []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("data section bytes mismatch: %v", img.Sections["data"])
	}
}

func TestStringTableInterning(t *testing.T) {
	st := newStringTable()
	a := st.intern("foo")
	b := st.intern("foo")
	if a != b {
		t.Errorf("intern(\"foo\") returned different offsets: %d vs %d", a, b)
	}
	empty := st.intern("")
	if empty != 0xFFFF {
		t.Errorf("intern(\"\") = %d, want 0xFFFF", empty)
	}
}
