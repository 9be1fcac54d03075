package main

import (
	"github.com/gmofishsauce/rv32x/isa"
	"github.com/gmofishsauce/rv32x/object"
)

type symbolEntry struct {
	Section string
	Offset  uint32
	Defined bool
}

/* Assembler drives Passes A-G over the blocks the Parser produced and
   yields the object.Object bundle the emitter hands to object.Write. */
type Assembler struct {
	ext         isa.Table
	constants   map[string]int32
	globals     map[string]bool
	symbols     map[string]symbolEntry
	sectionBase map[string]uint32
	relocs      []object.Relocation
	diags       []error
}

func newAssembler() *Assembler {
	return &Assembler{
		ext:         isa.AllExtensions(),
		constants:   make(map[string]int32),
		globals:     make(map[string]bool),
		symbols:     make(map[string]symbolEntry),
		sectionBase: make(map[string]uint32),
	}
}

/* canonicalOrder is Pass B's section ordering rule: Data, Text, Bss, then
   any custom sections in first-appearance order. */
var canonicalOrder = []string{"data", "text", "bss"}

func isCanonical(name string) bool {
	for _, c := range canonicalOrder {
		if c == name {
			return true
		}
	}
	return false
}

/* Assemble runs the full pipeline over src and returns the final object
   plus any accumulated diagnostics. A non-empty diags slice from parsing
   or semantic passes does not necessarily mean obj is nil: lines that
   failed to parse are simply dropped, per spec.md §4.3's recovery policy. */
func Assemble(src string) (*object.Object, []error) {
	p := newParser(src)
	blocks, diags := p.Parse()

	a := newAssembler()
	a.diags = append(a.diags, diags...)

	blocks = a.extractConstants(blocks)
	blocks = a.expandPseudos(blocks)
	blocks = a.mergeSections(blocks)
	a.layoutBlocks(blocks)
	a.buildSymbolTable(blocks)
	a.resolveSymbols(blocks)

	obj, err := a.emit(blocks)
	if err != nil {
		a.diags = append(a.diags, err)
		return nil, a.diags
	}
	return obj, a.diags
}

/* extractConstants pulls every ".set name, value" line out of the block
   list before any address pass runs: SPEC_FULL.md documents this directive
   as a compile-time symbol table entry that never reaches the
   section/address passes. */
func (a *Assembler) extractConstants(blocks []GenericBlock) []GenericBlock {
	out := make([]GenericBlock, len(blocks))
	for bi, b := range blocks {
		var kept []GenericLine
		for _, line := range b.Lines {
			if line.Kw == KwDirective && line.Directive == "globl" {
				for _, arg := range line.Args {
					if arg.Kind == ArgSymbolFull {
						a.globals[arg.Symbol] = true
					}
				}
				continue
			}
			if line.Kw == KwDirective && line.Directive == "set" {
				if len(line.Args) != 2 || line.Args[0].Kind != ArgSymbolFull || line.Args[1].Kind != ArgNumber {
					a.diags = append(a.diags, errAt("BadArgumentShape", line.Pos, ".set expects a name and a value"))
					continue
				}
				name := line.Args[0].Symbol
				if _, exists := a.constants[name]; exists {
					a.diags = append(a.diags, errAt("DuplicateSymbol", line.Pos, "%q already defined by .set", name))
					continue
				}
				a.constants[name] = line.Args[1].Num
				continue
			}
			kept = append(kept, line)
		}
		out[bi] = GenericBlock{Section: b.Section, Lines: kept}
	}
	return out
}

/* expandPseudos runs Pass A. */
func (a *Assembler) expandPseudos(blocks []GenericBlock) []GenericBlock {
	out := make([]GenericBlock, len(blocks))
	for bi, b := range blocks {
		var lines []GenericLine
		for _, line := range b.Lines {
			if line.Kw != KwPseudo {
				lines = append(lines, line)
				continue
			}
			expanded, err := expandPseudo(line, a.ext)
			if err != nil {
				a.diags = append(a.diags, err)
				continue
			}
			lines = append(lines, expanded...)
		}
		out[bi] = GenericBlock{Section: b.Section, Lines: lines}
	}
	return out
}

/* mergeSections runs Pass B. */
func (a *Assembler) mergeSections(blocks []GenericBlock) []GenericBlock {
	merged := make(map[string]*GenericBlock)
	var order []string

	for _, b := range blocks {
		if _, ok := merged[b.Section]; !ok {
			merged[b.Section] = &GenericBlock{Section: b.Section}
			order = append(order, b.Section)
		}
		merged[b.Section].Lines = append(merged[b.Section].Lines, b.Lines...)
	}

	var result []GenericBlock
	for _, name := range canonicalOrder {
		if blk, ok := merged[name]; ok {
			result = append(result, *blk)
			delete(merged, name)
		}
	}
	for _, name := range order {
		if isCanonical(name) {
			continue
		}
		if blk, ok := merged[name]; ok {
			result = append(result, *blk)
			delete(merged, name)
		}
	}
	return result
}

/* layoutBlocks runs Passes C and D together: each line's per-line relative
   address and size are computed first (Pass D's numbers do not depend on
   a block's base), then each block's base address is assigned in output
   order using those now-known lengths (Pass C). */
func (a *Assembler) layoutBlocks(blocks []GenericBlock) {
	lengths := make([]uint32, len(blocks))
	for bi := range blocks {
		lengths[bi] = a.layoutLines(&blocks[bi])
	}

	var base uint32
	for bi := range blocks {
		blocks[bi].Base = base
		a.sectionBase[blocks[bi].Section] = base
		base += lengths[bi] + 4
	}
}

func (a *Assembler) layoutLines(b *GenericBlock) uint32 {
	var cursor uint32
	for li := range b.Lines {
		line := &b.Lines[li]
		switch line.Kw {
		case KwLabel:
			line.RelAddr = cursor
		case KwOpcode:
			line.RelAddr = cursor
			line.Size = 4
			cursor += 4
		case KwDirective:
			raw, err := directiveByteLen(*line)
			if err != nil {
				a.diags = append(a.diags, err)
				raw = 0
			}
			line.RelAddr = cursor
			line.Size = alignUp4(raw)
			cursor += line.Size
		}
	}
	return cursor
}

/* buildSymbolTable runs Pass E's symbol half (the section half is already
   recorded in a.sectionBase by layoutBlocks). */
func (a *Assembler) buildSymbolTable(blocks []GenericBlock) {
	for _, b := range blocks {
		for _, line := range b.Lines {
			if line.Kw != KwLabel {
				continue
			}
			if prev, ok := a.symbols[line.Label]; ok && prev.Defined {
				a.diags = append(a.diags, errAt("DuplicateSymbol", line.Pos, "%q", line.Label))
				continue
			}
			a.symbols[line.Label] = symbolEntry{Section: b.Section, Offset: line.RelAddr, Defined: true}
		}
	}
}

/* resolveSymbols runs Pass F, rewriting ArgSymbolFull/Hi/Lo arguments into
   ArgNumber values in place. The PC-relative distance used is the true
   cross-section absolute-address difference (section_base[target] +
   symbol_offset) - (section_base[line] + line_relative), except that a
   %lo is measured from the instruction one word earlier (the auipc that
   carries the matching %hi). %hi is rounded so that adding the
   sign-extended %lo restores the full distance. This lets an la sequence
   materialize a Data-section address from Text (spec.md §8 scenario 7),
   and is consistent with the within-object approximation spec.md's Design
   Notes call out for branches to a symbol in another section. */
func (a *Assembler) resolveSymbols(blocks []GenericBlock) {
	for bi := range blocks {
		b := &blocks[bi]
		curBase := a.sectionBase[b.Section]
		for li := range b.Lines {
			line := &b.Lines[li]
			if line.Kw != KwOpcode {
				continue
			}
			lineAbs := int64(curBase) + int64(line.RelAddr)
			for ai := range line.Args {
				arg := &line.Args[ai]
				switch arg.Kind {
				case ArgSymbolFull, ArgSymbolHi, ArgSymbolLo:
					a.resolveOne(b.Section, line.RelAddr, lineAbs, arg)
				}
			}
		}
	}
}

func (a *Assembler) resolveOne(section string, relAddr uint32, lineAbs int64, arg *Arg) {
	name := arg.Symbol
	kind := arg.Kind

	if v, ok := a.constants[name]; ok {
		arg.Num = reduceConstant(kind, v)
		arg.Kind = ArgNumber
		return
	}

	sym, ok := a.symbols[name]
	if !ok {
		a.relocs = append(a.relocs, object.Relocation{
			Section: section,
			Offset:  relAddr,
			Target:  name,
			Kind:    relocKindFor(kind),
		})
		arg.Num = 0
		arg.Kind = ArgNumber
		return
	}

	symAbs := int64(a.sectionBase[sym.Section]) + int64(sym.Offset)
	offset := symAbs - lineAbs
	if kind == ArgSymbolLo {
		offset += 4 /* relative to the paired auipc one word earlier */
	}
	arg.Num = reduceConstant(kind, int32(offset))
	arg.Kind = ArgNumber
}

func reduceConstant(kind int, v int32) int32 {
	switch kind {
	case ArgSymbolHi:
		return ((v + 0x800) >> 12) & 0xFFFFF
	case ArgSymbolLo:
		return v & 0xFFF
	default:
		return v
	}
}

func relocKindFor(argKind int) object.RelocKind {
	switch argKind {
	case ArgSymbolHi:
		return object.RelocHi20
	case ArgSymbolLo:
		return object.RelocLo12
	default:
		return object.RelocAbsolute32
	}
}
