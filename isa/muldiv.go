package isa

// rv32m is the integer multiply/divide extension. All eight mnemonics
// share the R layout and opcode with RV32I's base arithmetic ops; only
// funct7 (always 0b0000001) and funct3 distinguish them.
var rv32m = []instrDef{
	{"mul", LayoutR, OpAdd, 0b000, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"mulh", LayoutR, OpAdd, 0b001, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"mulhsu", LayoutR, OpAdd, 0b010, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"mulhu", LayoutR, OpAdd, 0b011, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"div", LayoutR, OpAdd, 0b100, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"divu", LayoutR, OpAdd, 0b101, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"rem", LayoutR, OpAdd, 0b110, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
	{"remu", LayoutR, OpAdd, 0b111, 0b0000001, CallingSyntax{ArgRD, ArgRS1, ArgRS2}},
}
