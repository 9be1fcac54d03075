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
	"os"
)

// DefaultMemorySize is used when an object doesn't otherwise force memory
// to grow larger (see Memory.LoadSection).
const DefaultMemorySize = 1 * 1024 * 1024 // 1MB

// CPU represents the emulated machine's architectural state: 32
// general-purpose registers (x0 hardwired to zero) plus the program
// counter, flat byte-addressable memory, and the run/exit bookkeeping the
// fetch-decode-execute loop needs.
type CPU struct {
	regs [32]uint32
	pc   uint32

	mem *Memory

	running  bool
	exited   bool
	exitCode int32

	cycles uint64

	consoleOut interface {
		Write(p []byte) (int, error)
	}

	tracer *Tracer
}

// NewCPU creates a CPU ready to run, with freshly zeroed registers and memory.
func NewCPU() *CPU {
	return &CPU{
		mem:        NewMemory(DefaultMemorySize),
		running:    true,
		consoleOut: os.Stdout,
	}
}

// Reset restores architectural state to power-on values without
// discarding the loaded memory image.
func (cpu *CPU) Reset() {
	for i := range cpu.regs {
		cpu.regs[i] = 0
	}
	cpu.pc = 0
	cpu.running = true
	cpu.exited = false
	cpu.exitCode = 0
	cpu.cycles = 0
}

// GetReg reads general register id (0-31); register 0 always reads zero.
func (cpu *CPU) GetReg(id uint32) uint32 {
	if id == 0 {
		return 0
	}
	return cpu.regs[id]
}

// SetReg writes general register id; writes to register 0 are discarded,
// matching RISC-V's hardwired zero register.
func (cpu *CPU) SetReg(id uint32, v uint32) {
	if id == 0 {
		return
	}
	cpu.regs[id] = v
}

// Run executes the fetch-decode-execute loop until the program exits or a
// fatal error is returned. It applies no cycle budget; runFreeRunning in
// main.go enforces -max-cycles by calling Step itself.
func (cpu *CPU) Run() error {
	for cpu.running {
		if err := cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one instruction. It is also the engine behind
// debugstub.Target.Step: debugTarget.Step calls it directly rather than
// going through Run, then reads the post-commit PC and exit status from
// the CPU.
func (cpu *CPU) Step() error {
	if !cpu.running {
		return nil
	}

	if cpu.tracer != nil {
		cpu.tracer.TracePreInstruction(cpu)
	}

	word, ok := cpu.mem.ReadWord(cpu.pc)
	if !ok {
		return cpu.fault(&MemoryOutOfBounds{Addr: cpu.pc, Size: 4})
	}

	in, ok := decode(word)
	if !ok {
		return cpu.fault(&UnknownInstruction{Word: word, PC: cpu.pc})
	}

	nextPC := cpu.pc + 4
	newPC, err := cpu.execute(in, nextPC)
	if err != nil {
		return cpu.fault(err)
	}
	cpu.pc = newPC
	cpu.cycles++

	if cpu.tracer != nil {
		cpu.tracer.TracePostInstruction(cpu, in)
	}

	return nil
}

// fault logs a non-fatal warning to stderr and advances past the faulting
// instruction rather than aborting the run, matching spec.md's choice to
// keep MemoryOutOfBounds/UnhandledInstruction recoverable.
func (cpu *CPU) fault(err error) error {
	fmt.Fprintf(os.Stderr, "warning: %v (pc=0x%08X)\n", err, cpu.pc)
	if cpu.tracer != nil {
		cpu.tracer.TraceFault(err, cpu.pc)
	}
	cpu.pc += 4
	cpu.cycles++
	return nil
}
