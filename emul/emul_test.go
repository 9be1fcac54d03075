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
	"encoding/binary"
	"testing"

	"github.com/gmofishsauce/rv32x/isa"
)

// program packs encoded instruction words into a little-endian byte
// program loaded at address 0.
func program(words ...uint32) []byte {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], w)
	}
	return buf
}

func addi(rd, rs1 uint32, imm int32) uint32 {
	return isa.Instruction{Layout: isa.LayoutI, Opcode: isa.OpOpImm, RD: rd, RS1: rs1, Imm: imm}.Encode()
}

func ecall() uint32 {
	return isa.Instruction{Layout: isa.LayoutI, Opcode: isa.OpSystem}.Encode()
}

func newCPUWithText(bytes []byte) *CPU {
	cpu := NewCPU()
	cpu.mem.LoadSection(0, bytes)
	return cpu
}

// spec.md §8 scenario 6: li a7,93; li a0,1000; ecall must exit with code
// 1000 truncated to its 32-bit representation (it fits, so no truncation
// actually occurs — this is the concrete worked example).
func TestEcallExitsWithCode(t *testing.T) {
	cpu := newCPUWithText(program(
		addi(17, 0, 93),   // a7 = 93 (exit)
		addi(10, 0, 1000), // a0 = 1000
		ecall(),
	))
	if err := cpu.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !cpu.exited {
		t.Fatal("expected cpu.exited = true")
	}
	if cpu.exitCode != 1000 {
		t.Errorf("exit code = %d, want 1000", cpu.exitCode)
	}
}

func TestAddAndBranch(t *testing.T) {
	add := isa.Instruction{Layout: isa.LayoutR, Opcode: isa.OpAdd, RD: 5, RS1: 1, RS2: 2}.Encode()
	beqTaken := isa.Instruction{Layout: isa.LayoutB, Opcode: isa.OpBranch, RS1: 5, RS2: 6, Imm: 8}.Encode()
	cpu := newCPUWithText(program(
		addi(1, 0, 3),
		addi(2, 0, 4),
		add,           // r5 = 7
		addi(6, 0, 7), // r6 = 7
		beqTaken,      // branches +8 past the next addi
		addi(7, 0, 99),
		addi(8, 0, 1), // landed here if branch taken
		addi(17, 0, 93),
		ecall(),
	))
	if err := cpu.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cpu.GetReg(5) != 7 {
		t.Errorf("r5 = %d, want 7", cpu.GetReg(5))
	}
	if cpu.GetReg(7) != 0 {
		t.Errorf("r7 = %d, want 0 (branch should have skipped this addi)", cpu.GetReg(7))
	}
	if cpu.GetReg(8) != 1 {
		t.Errorf("r8 = %d, want 1", cpu.GetReg(8))
	}
}

func TestLoadStoreRoundTrip(t *testing.T) {
	sw := isa.Instruction{Layout: isa.LayoutS, Opcode: isa.OpStore, Funct3: 0b010, RS1: 2, RS2: 1, Imm: 0}.Encode()
	lw := isa.Instruction{Layout: isa.LayoutI, Opcode: isa.OpLoad, Funct3: 0b010, RD: 3, RS1: 2, Imm: 0}.Encode()
	cpu := newCPUWithText(program(
		addi(1, 0, 0x123),
		addi(2, 0, 64), // base address, inside the default memory
		sw,
		lw,
		addi(17, 0, 93),
		ecall(),
	))
	if err := cpu.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cpu.GetReg(3) != 0x123 {
		t.Errorf("r3 = 0x%X, want 0x123", cpu.GetReg(3))
	}
}

func TestDivideByZero(t *testing.T) {
	divu := isa.Instruction{Layout: isa.LayoutR, Opcode: isa.OpAdd, Funct3: 0b101, Funct7: 0b0000001, RD: 3, RS1: 1, RS2: 2}.Encode()
	remu := isa.Instruction{Layout: isa.LayoutR, Opcode: isa.OpAdd, Funct3: 0b111, Funct7: 0b0000001, RD: 4, RS1: 1, RS2: 2}.Encode()
	cpu := newCPUWithText(program(
		addi(1, 0, 5),
		addi(2, 0, 0),
		divu,
		remu,
		addi(17, 0, 93),
		ecall(),
	))
	if err := cpu.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cpu.GetReg(3) != 0xFFFFFFFF {
		t.Errorf("DIVU by zero = 0x%X, want 0xFFFFFFFF", cpu.GetReg(3))
	}
	if cpu.GetReg(4) != 5 {
		t.Errorf("REMU by zero = %d, want 5 (the dividend)", cpu.GetReg(4))
	}
}

func TestSignedDivOverflow(t *testing.T) {
	div := isa.Instruction{Layout: isa.LayoutR, Opcode: isa.OpAdd, Funct3: 0b100, Funct7: 0b0000001, RD: 3, RS1: 1, RS2: 2}.Encode()
	rem := isa.Instruction{Layout: isa.LayoutR, Opcode: isa.OpAdd, Funct3: 0b110, Funct7: 0b0000001, RD: 4, RS1: 1, RS2: 2}.Encode()
	lui := isa.Instruction{Layout: isa.LayoutU, Opcode: isa.OpLui, RD: 1, Imm: int32(0x80000000)}.Encode()
	cpu := newCPUWithText(program(
		lui,              // r1 = 0x80000000 (MinInt32)
		addi(2, 0, -1),   // r2 = -1
		div,
		rem,
		addi(17, 0, 93),
		ecall(),
	))
	if err := cpu.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cpu.GetReg(3) != 0x80000000 {
		t.Errorf("DIV overflow = 0x%X, want 0x80000000 (the dividend)", cpu.GetReg(3))
	}
	if cpu.GetReg(4) != 0 {
		t.Errorf("REM overflow = %d, want 0", cpu.GetReg(4))
	}
}

func TestRegisterZeroIsHardwired(t *testing.T) {
	cpu := NewCPU()
	cpu.SetReg(0, 0xFFFFFFFF)
	if cpu.GetReg(0) != 0 {
		t.Errorf("x0 = 0x%X, want 0", cpu.GetReg(0))
	}
}

func TestUnknownInstructionIsNonFatal(t *testing.T) {
	cpu := newCPUWithText(program(0xFFFFFFFF))
	if err := cpu.Step(); err != nil {
		t.Fatalf("Step returned a fatal error: %v", err)
	}
	if cpu.pc != 4 {
		t.Errorf("pc = %d, want 4 (should advance past the bad word)", cpu.pc)
	}
}
