// Package object defines the object emission/consumption contract between
// the assembler core and its container-format collaborator (spec.md §6),
// plus a small concrete container ("RVO") modeled on the teacher's WOF
// format (lang/yld/types.go) so the repo has something runnable end to end.
package object

// SymbolKind classifies what a Symbol names.
type SymbolKind uint8

const (
	SymText SymbolKind = iota
	SymData
	SymEntry
)

// Scope says whether a Symbol is visible outside its defining object.
type Scope uint8

const (
	ScopeLocal Scope = iota
	ScopeGlobal
)

// RelocKind selects which immediate-field mask a Relocation patches.
type RelocKind uint8

const (
	RelocAbsolute32 RelocKind = iota
	RelocHi20
	RelocLo12
)

// Section is one named, based, byte-bearing region of the object: Text,
// Data, Bss, or a user-named custom section.
type Section struct {
	Name      string
	Base      uint32
	Bytes     []byte
	Alignment uint32
}

// Symbol is one entry of the object's symbol table.
type Symbol struct {
	Name    string
	Section string
	Offset  uint32
	Length  uint32
	Kind    SymbolKind
	Scope   Scope
}

// Relocation is a deferred patch: at Offset bytes into Section, apply Kind's
// patch rule using the final address of Target plus Addend.
type Relocation struct {
	Section string
	Offset  uint32
	Target  string
	Addend  int32
	Kind    RelocKind
}

// Object is the structured description the assembler hands to the
// object-writer collaborator, and what the object-reader collaborator
// reconstructs when loading a file back.
type Object struct {
	Sections    []Section
	Symbols     []Symbol
	Relocations []Relocation
	Entry       string // entry-point symbol name; "" means offset 0 of Text
}

// SectionByName returns the section with the given name, if present.
func (o *Object) SectionByName(name string) (*Section, bool) {
	for i := range o.Sections {
		if o.Sections[i].Name == name {
			return &o.Sections[i], true
		}
	}
	return nil, false
}
