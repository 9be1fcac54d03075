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
	"fmt"
	"io"

	"github.com/gmofishsauce/rv32x/isa"
)

// Tracer generates a per-instruction execution trace, written to -trace's
// file when the flag is set. Disabled tracers (cpu.tracer == nil) cost
// nothing; the CPU checks for nil before calling in.
type Tracer struct {
	out      io.Writer
	prevRegs [32]uint32
}

// NewTracer creates a tracer writing to out.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{out: out}
}

// TracePreInstruction records register state and prints the cycle/PC/
// disassembled-instruction header before execution runs.
func (t *Tracer) TracePreInstruction(cpu *CPU) {
	t.prevRegs = cpu.regs

	fmt.Fprintf(t.out, "\n========================================\n")
	fmt.Fprintf(t.out, "CYCLE: %016d\n", cpu.cycles)
	fmt.Fprintf(t.out, "PC: 0x%08X\n", cpu.pc)

	word, ok := cpu.mem.ReadWord(cpu.pc)
	if ok {
		fmt.Fprintf(t.out, "INST: 0x%08X  %s\n", word, isa.Disassemble(word))
	} else {
		fmt.Fprintf(t.out, "INST: <out of bounds fetching instruction>\n")
	}
}

// TracePostInstruction prints the registers the instruction changed.
func (t *Tracer) TracePostInstruction(cpu *CPU, in isa.Instruction) {
	fmt.Fprintf(t.out, "EXECUTE: ")
	any := false
	for i := 1; i < 32; i++ {
		if cpu.regs[i] != t.prevRegs[i] {
			fmt.Fprintf(t.out, "%s ← 0x%08X ", isa.RegisterName(uint8(i)), cpu.regs[i])
			any = true
		}
	}
	if !any {
		fmt.Fprintf(t.out, "(no register change)")
	}
	fmt.Fprintf(t.out, "\n")
}

// TraceExit records the program's exit through ECALL.
func (t *Tracer) TraceExit(code int32) {
	fmt.Fprintf(t.out, "\n*** EXIT: code=%d\n", code)
}

// TraceFault records a non-fatal instruction fault (see CPU.fault).
func (t *Tracer) TraceFault(err error, pc uint32) {
	fmt.Fprintf(t.out, "\n*** FAULT: %v (pc=0x%08X)\n", err, pc)
}
