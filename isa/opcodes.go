package isa

// Primary 7-bit opcode field values, one per layout family.
const (
	OpAdd    uint32 = 0b0110011 // R
	OpOpImm  uint32 = 0b0010011 // I: arithmetic-immediate
	OpLoad   uint32 = 0b0000011 // I: LB/LBU/LH/LHU/LW
	OpJalr   uint32 = 0b1100111 // I
	OpSystem uint32 = 0b1110011 // I: ECALL
	OpStore  uint32 = 0b0100011 // S
	OpBranch uint32 = 0b1100011 // B
	OpLui    uint32 = 0b0110111 // U
	OpAuipc  uint32 = 0b0010111 // U
	OpJal    uint32 = 0b1101111 // J
)
