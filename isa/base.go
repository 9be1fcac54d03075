package isa

// instrDef is a single data-driven table row: the fixed layout + field
// constants for one mnemonic, plus its calling syntax. Every RV32I and
// RV32M mnemonic is expressed as one instrDef value; Build below turns the
// resolved operands into a concrete Instruction according to def.layout.
type instrDef struct {
	mnemonic string
	layout   Layout
	opcode   uint32
	funct3   uint32
	funct7   uint32
	syntax   CallingSyntax
}

func (d instrDef) Mnemonic() string      { return d.mnemonic }
func (d instrDef) Syntax() CallingSyntax { return d.syntax }

func (d instrDef) Build(rs1, rs2, rd uint32, imm int32) Instruction {
	in := Instruction{
		Layout: d.layout,
		Opcode: d.opcode,
		Funct3: d.funct3,
		Funct7: d.funct7,
		RS1:    rs1,
		RS2:    rs2,
		RD:     rd,
		Imm:    imm,
	}
	if d.layout == LayoutI && (d.mnemonic == "slli" || d.mnemonic == "srli" || d.mnemonic == "srai") {
		// Shift amounts use only the low 5 bits of the immediate; sign of a
		// negative shamt literal is not part of the ISA and is simply
		// masked away here, per spec's documented ambiguity resolution.
		in.Imm = int32(uint32(imm) & 0x1F)
		if d.mnemonic == "srai" {
			in.Imm |= 0x400 // bit 10 selects arithmetic shift (funct7 bit 5)
		}
	}
	if d.layout == LayoutU {
		// The source operand of lui/auipc is the 20-bit field itself;
		// Instruction.Imm holds it shifted into place (bits 31:12).
		in.Imm = int32(uint32(imm) << 12)
	}
	return in
}

// rv32i is the base integer instruction set this build recognizes: the ISA
// manual's 40 RV32I mnemonics minus FENCE (no memory-ordering model in this
// core) and EBREAK (not needed alongside the debug stub's own breakpoints).
var rv32i = []instrDef{
	{"add", LayoutR, OpAdd, 0b000, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"sub", LayoutR, OpAdd, 0b000, 0b0100000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"and", LayoutR, OpAdd, 0b111, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"or", LayoutR, OpAdd, 0b110, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"xor", LayoutR, OpAdd, 0b100, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"sll", LayoutR, OpAdd, 0b001, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"srl", LayoutR, OpAdd, 0b101, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"sra", LayoutR, OpAdd, 0b101, 0b0100000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"slt", LayoutR, OpAdd, 0b010, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"sltu", LayoutR, OpAdd, 0b011, 0b0000000, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},

	{"addi", LayoutI, OpOpImm, 0b000, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"andi", LayoutI, OpOpImm, 0b111, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"ori", LayoutI, OpOpImm, 0b110, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"xori", LayoutI, OpOpImm, 0b100, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"slti", LayoutI, OpOpImm, 0b010, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"sltiu", LayoutI, OpOpImm, 0b011, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"slli", LayoutI, OpOpImm, 0b001, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"srli", LayoutI, OpOpImm, 0b101, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},
	{"srai", LayoutI, OpOpImm, 0b101, 0, CallingSyntax{ArgRD, ArgRS1, ArgImm}},

	{"jalr", LayoutI, OpJalr, 0b000, 0, CallingSyntax{ArgRD, ArgRS1, ArgOff}},
	{"ecall", LayoutI, OpSystem, 0b000, 0, CallingSyntax{}},

	{"lb", LayoutI, OpLoad, 0b000, 0, CallingSyntax{ArgRD, ArgOff, ArgRS1}},
	{"lbu", LayoutI, OpLoad, 0b100, 0, CallingSyntax{ArgRD, ArgOff, ArgRS1}},
	{"lh", LayoutI, OpLoad, 0b001, 0, CallingSyntax{ArgRD, ArgOff, ArgRS1}},
	{"lhu", LayoutI, OpLoad, 0b101, 0, CallingSyntax{ArgRD, ArgOff, ArgRS1}},
	{"lw", LayoutI, OpLoad, 0b010, 0, CallingSyntax{ArgRD, ArgOff, ArgRS1}},

	{"sb", LayoutS, OpStore, 0b000, 0, CallingSyntax{ArgRS2, ArgOff, ArgRS1}},
	{"sh", LayoutS, OpStore, 0b001, 0, CallingSyntax{ArgRS2, ArgOff, ArgRS1}},
	{"sw", LayoutS, OpStore, 0b010, 0, CallingSyntax{ArgRS2, ArgOff, ArgRS1}},

	{"beq", LayoutB, OpBranch, 0b000, 0, CallingSyntax{ArgRS1, ArgRS2, ArgOff}},
	{"bne", LayoutB, OpBranch, 0b001, 0, CallingSyntax{ArgRS1, ArgRS2, ArgOff}},
	{"blt", LayoutB, OpBranch, 0b100, 0, CallingSyntax{ArgRS1, ArgRS2, ArgOff}},
	{"bltu", LayoutB, OpBranch, 0b110, 0, CallingSyntax{ArgRS1, ArgRS2, ArgOff}},
	{"bge", LayoutB, OpBranch, 0b101, 0, CallingSyntax{ArgRS1, ArgRS2, ArgOff}},
	{"bgeu", LayoutB, OpBranch, 0b111, 0, CallingSyntax{ArgRS1, ArgRS2, ArgOff}},

	{"lui", LayoutU, OpLui, 0, 0, CallingSyntax{ArgRD, ArgImm}},
	{"auipc", LayoutU, OpAuipc, 0, 0, CallingSyntax{ArgRD, ArgImm}},

	{"jal", LayoutJ, OpJal, 0, 0, CallingSyntax{ArgRD, ArgOff}},
}
