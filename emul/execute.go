// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.

package main

import (
	"github.com/gmofishsauce/rv32x/isa"
)

// execute executes one decoded instruction and returns the PC the machine
// should advance to next (nextPC is pc+4 unless the instruction branches
// or jumps). Memory/exit side effects land in cpu's registers/memory
// directly; errors are always non-fatal faults the caller logs and steps
// past (see CPU.fault).
func (cpu *CPU) execute(in isa.Instruction, nextPC uint32) (uint32, error) {
	switch in.Opcode {
	case isa.OpAdd:
		return nextPC, cpu.executeR(in)
	case isa.OpOpImm:
		return nextPC, cpu.executeOpImm(in)
	case isa.OpLoad:
		return nextPC, cpu.executeLoad(in)
	case isa.OpStore:
		return nextPC, cpu.executeStore(in)
	case isa.OpBranch:
		return cpu.executeBranch(in, nextPC), nil
	case isa.OpLui:
		cpu.SetReg(in.RD, uint32(in.Imm))
		return nextPC, nil
	case isa.OpAuipc:
		cpu.SetReg(in.RD, cpu.pc+uint32(in.Imm))
		return nextPC, nil
	case isa.OpJal:
		cpu.SetReg(in.RD, nextPC)
		return uint32(int32(cpu.pc) + in.Imm), nil
	case isa.OpJalr:
		target := uint32(int32(cpu.GetReg(in.RS1))+in.Imm) &^ 1
		cpu.SetReg(in.RD, nextPC)
		return target, nil
	case isa.OpSystem:
		return nextPC, cpu.executeEcall()
	default:
		return nextPC, &UnhandledInstruction{In: in}
	}
}

// executeR handles every opcode-OpAdd mnemonic: the RV32I base ALU ops
// (funct7 0b0000000/0b0100000) and the RV32M multiply/divide extension
// (funct7 0b0000001), distinguished by funct3 within each funct7.
func (cpu *CPU) executeR(in isa.Instruction) error {
	a := cpu.GetReg(in.RS1)
	b := cpu.GetReg(in.RS2)

	switch in.Funct7 {
	case 0b0000000:
		var result uint32
		switch in.Funct3 {
		case 0b000: // ADD
			result = a + b
		case 0b001: // SLL
			result = a << (b & 0x1F)
		case 0b010: // SLT
			result = boolToWord(int32(a) < int32(b))
		case 0b011: // SLTU
			result = boolToWord(a < b)
		case 0b100: // XOR
			result = a ^ b
		case 0b101: // SRL
			result = a >> (b & 0x1F)
		case 0b110: // OR
			result = a | b
		case 0b111: // AND
			result = a & b
		default:
			return &UnhandledInstruction{In: in}
		}
		cpu.SetReg(in.RD, result)
		return nil

	case 0b0100000:
		var result uint32
		switch in.Funct3 {
		case 0b000: // SUB
			result = a - b
		case 0b101: // SRA
			result = uint32(int32(a) >> (b & 0x1F))
		default:
			return &UnhandledInstruction{In: in}
		}
		cpu.SetReg(in.RD, result)
		return nil

	case 0b0000001:
		return cpu.executeMulDiv(in, a, b)

	default:
		return &UnhandledInstruction{In: in}
	}
}

// executeMulDiv implements the eight RV32M mnemonics, including the
// divide-by-zero and signed-overflow results the RISC-V manual mandates
// instead of a trap: DIVU/REMU by zero return all-ones/the dividend; a
// signed DIV overflow (MinInt32 / -1) returns the dividend; the matching
// REM overflow returns 0.
func (cpu *CPU) executeMulDiv(in isa.Instruction, a, b uint32) error {
	var result uint32
	switch in.Funct3 {
	case 0b000: // MUL
		result = a * b
	case 0b001: // MULH
		result = uint32((int64(int32(a)) * int64(int32(b))) >> 32)
	case 0b010: // MULHSU
		result = uint32((int64(int32(a)) * int64(uint64(b))) >> 32)
	case 0b011: // MULHU
		result = uint32((uint64(a) * uint64(b)) >> 32)
	case 0b100: // DIV
		sa, sb := int32(a), int32(b)
		switch {
		case sb == 0:
			result = 0xFFFFFFFF
		case sa == -(1<<31) && sb == -1:
			result = a
		default:
			result = uint32(sa / sb)
		}
	case 0b101: // DIVU
		if b == 0 {
			result = 0xFFFFFFFF
		} else {
			result = a / b
		}
	case 0b110: // REM
		sa, sb := int32(a), int32(b)
		switch {
		case sb == 0:
			result = a
		case sa == -(1<<31) && sb == -1:
			result = 0
		default:
			result = uint32(sa % sb)
		}
	case 0b111: // REMU
		if b == 0 {
			result = a
		} else {
			result = a % b
		}
	default:
		return &UnhandledInstruction{In: in}
	}
	cpu.SetReg(in.RD, result)
	return nil
}

func (cpu *CPU) executeOpImm(in isa.Instruction) error {
	a := cpu.GetReg(in.RS1)
	imm := in.Imm
	var result uint32

	switch in.Funct3 {
	case 0b000: // ADDI
		result = uint32(int32(a) + imm)
	case 0b010: // SLTI
		result = boolToWord(int32(a) < imm)
	case 0b011: // SLTIU
		result = boolToWord(a < uint32(imm))
	case 0b100: // XORI
		result = a ^ uint32(imm)
	case 0b110: // ORI
		result = a | uint32(imm)
	case 0b111: // ANDI
		result = a & uint32(imm)
	case 0b001: // SLLI
		result = a << (uint32(imm) & 0x1F)
	case 0b101: // SRLI / SRAI, distinguished by bit 10 of the packed shamt
		if imm&0x400 != 0 {
			result = uint32(int32(a) >> (uint32(imm) & 0x1F))
		} else {
			result = a >> (uint32(imm) & 0x1F)
		}
	default:
		return &UnhandledInstruction{In: in}
	}
	cpu.SetReg(in.RD, result)
	return nil
}

func (cpu *CPU) executeLoad(in isa.Instruction) error {
	addr := uint32(int32(cpu.GetReg(in.RS1)) + in.Imm)
	switch in.Funct3 {
	case 0b000: // LB
		v, ok := cpu.mem.ReadByte(addr)
		if !ok {
			return &MemoryOutOfBounds{Addr: addr, Size: 1}
		}
		cpu.SetReg(in.RD, uint32(int32(int8(v))))
	case 0b100: // LBU
		v, ok := cpu.mem.ReadByte(addr)
		if !ok {
			return &MemoryOutOfBounds{Addr: addr, Size: 1}
		}
		cpu.SetReg(in.RD, uint32(v))
	case 0b001: // LH
		v, ok := cpu.mem.ReadHalf(addr)
		if !ok {
			return &MemoryOutOfBounds{Addr: addr, Size: 2}
		}
		cpu.SetReg(in.RD, uint32(int32(int16(v))))
	case 0b101: // LHU
		v, ok := cpu.mem.ReadHalf(addr)
		if !ok {
			return &MemoryOutOfBounds{Addr: addr, Size: 2}
		}
		cpu.SetReg(in.RD, uint32(v))
	case 0b010: // LW
		v, ok := cpu.mem.ReadWord(addr)
		if !ok {
			return &MemoryOutOfBounds{Addr: addr, Size: 4}
		}
		cpu.SetReg(in.RD, v)
	default:
		return &UnhandledInstruction{In: in}
	}
	return nil
}

func (cpu *CPU) executeStore(in isa.Instruction) error {
	addr := uint32(int32(cpu.GetReg(in.RS1)) + in.Imm)
	v := cpu.GetReg(in.RS2)
	var ok bool
	switch in.Funct3 {
	case 0b000: // SB
		ok = cpu.mem.WriteByte(addr, byte(v))
	case 0b001: // SH
		ok = cpu.mem.WriteHalf(addr, uint16(v))
	case 0b010: // SW
		ok = cpu.mem.WriteWord(addr, v)
	default:
		return &UnhandledInstruction{In: in}
	}
	if !ok {
		size := 1 << in.Funct3
		return &MemoryOutOfBounds{Addr: addr, Size: size}
	}
	return nil
}

func (cpu *CPU) executeBranch(in isa.Instruction, nextPC uint32) uint32 {
	a := cpu.GetReg(in.RS1)
	b := cpu.GetReg(in.RS2)
	var taken bool
	switch in.Funct3 {
	case 0b000: // BEQ
		taken = a == b
	case 0b001: // BNE
		taken = a != b
	case 0b100: // BLT
		taken = int32(a) < int32(b)
	case 0b101: // BGE
		taken = int32(a) >= int32(b)
	case 0b110: // BLTU
		taken = a < b
	case 0b111: // BGEU
		taken = a >= b
	}
	if taken {
		return uint32(int32(cpu.pc) + in.Imm)
	}
	return nextPC
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
