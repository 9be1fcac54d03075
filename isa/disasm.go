package isa

import "fmt"

// allDefs is consulted by Disassemble to recover a mnemonic for a decoded
// Instruction's (layout, opcode, funct3, funct7) triple.
var allDefs = func() []instrDef {
	defs := append([]instrDef{}, rv32i...)
	defs = append(defs, rv32m...)
	return defs
}()

func (d instrDef) matches(in Instruction) bool {
	if d.layout != in.Layout || d.opcode != in.Opcode {
		return false
	}
	switch d.layout {
	case LayoutU, LayoutJ:
		return true
	case LayoutR:
		return d.funct3 == in.Funct3 && d.funct7 == in.Funct7
	default:
		return d.funct3 == in.Funct3
	}
}

// Disassemble formats a raw 32-bit word as mnemonic text, e.g.
// "addi sp, sp, 16". Unrecognized words print as a raw hex word.
func Disassemble(word uint32) string {
	in, ok := Decode(word)
	if !ok {
		return fmt.Sprintf(".word 0x%08x", word)
	}
	for _, d := range allDefs {
		if !d.matches(in) {
			continue
		}
		return formatMnemonic(d, in)
	}
	return fmt.Sprintf(".word 0x%08x", word)
}

func formatMnemonic(d instrDef, in Instruction) string {
	reg := func(id uint32) string { return RegisterName(uint8(id)) }

	// Memory operand mnemonics (loads: RD,OFF,RS1 / stores: RS2,OFF,RS1)
	// print as "rd, off(rs1)" rather than three comma-separated operands.
	if len(d.syntax) == 3 && d.syntax[1] == ArgOff && d.syntax[2] == ArgRS1 {
		first := reg(in.RD)
		if d.syntax[0] == ArgRS2 {
			first = reg(in.RS2)
		}
		return fmt.Sprintf("%s %s, %d(%s)", d.mnemonic, first, in.Imm, reg(in.RS1))
	}

	parts := make([]string, 0, 3)
	for _, name := range d.syntax {
		switch name {
		case ArgRS1:
			parts = append(parts, reg(in.RS1))
		case ArgRS2:
			parts = append(parts, reg(in.RS2))
		case ArgRD:
			parts = append(parts, reg(in.RD))
		case ArgImm, ArgOff:
			parts = append(parts, fmt.Sprintf("%d", in.Imm))
		}
	}
	if len(parts) == 0 {
		return d.mnemonic
	}
	out := d.mnemonic + " " + parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
