package isa

import (
	"fmt"
	"strings"
)

// ArgName names one of the four positional operand roles a mnemonic's
// calling syntax can bind: the two source registers, the destination
// register, or an immediate/offset value.
type ArgName int

const (
	ArgRS1 ArgName = iota
	ArgRS2
	ArgRD
	ArgImm
	ArgOff
)

// CallingSyntax lists, in left-to-right source order, which ArgName each
// positional operand of a mnemonic binds to. It is the data-driven
// replacement for hand-written per-mnemonic argument parsing.
type CallingSyntax []ArgName

// Extension maps a mnemonic to a fixed instruction layout plus the fields
// that are constant for that mnemonic (funct3/funct7/opcode), and to the
// calling syntax a programmer uses to write it. The set of mnemonics is
// closed per extension (RV32I, RV32M, ...), matching a build where the
// extension roster is fixed; a third-party-extension scheme would instead
// make Extension an open, dynamically registered interface.
type Extension interface {
	// Mnemonic is the lowercase keyword recognized by the lexer.
	Mnemonic() string
	// Syntax describes the argument list, in field-name order.
	Syntax() CallingSyntax
	// Build produces the Instruction for this mnemonic given resolved
	// integer values for rs1, rs2, rd and the immediate/offset, in
	// whichever subset the mnemonic's syntax actually uses.
	Build(rs1, rs2, rd uint32, imm int32) Instruction
}

// Table is a name-indexed set of extensions, used by the lexer to
// recognize opcode mnemonics and by codegen to build instructions.
type Table map[string]Extension

// Lookup case-normalizes and looks up a mnemonic in the table.
func (t Table) Lookup(mnemonic string) (Extension, bool) {
	e, ok := t[strings.ToLower(mnemonic)]
	return e, ok
}

// AllExtensions is the fixed roster recognized by this build: the base
// integer set (RV32I) plus the multiply/divide extension (RV32M).
func AllExtensions() Table {
	t := make(Table)
	for _, e := range rv32i {
		t[e.Mnemonic()] = e
	}
	for _, e := range rv32m {
		t[e.Mnemonic()] = e
	}
	return t
}

// Encode assembles the word(s) for one instruction line: resolve the
// mnemonic's calling syntax against the supplied arguments (in source
// order) and build the final instruction.
func Encode(ext Extension, args []int32) (uint32, error) {
	syntax := ext.Syntax()
	if len(syntax) != len(args) {
		return 0, fmt.Errorf("%s: expected %d operands, got %d", ext.Mnemonic(), len(syntax), len(args))
	}
	var rs1, rs2, rd uint32
	var imm int32
	for i, name := range syntax {
		v := args[i]
		switch name {
		case ArgRS1:
			rs1 = uint32(v)
		case ArgRS2:
			rs2 = uint32(v)
		case ArgRD:
			rd = uint32(v)
		case ArgImm, ArgOff:
			imm = v
		}
	}
	return ext.Build(rs1, rs2, rd, imm).Encode(), nil
}
