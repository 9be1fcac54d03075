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

// Syscall numbers recognized on ECALL, read from a7 per the RISC-V Linux
// calling convention the worked examples in spec.md §8 assume.
const (
	sysWrite = 64
	sysExit  = 93
)

// executeEcall dispatches on a7 (x17): sysExit halts the machine and
// records a0 as the exit code, sysWrite is a no-op (no file descriptors
// or console wiring exist in this build, only the exit path matters for
// the worked examples), and any other syscall number is also a no-op —
// unrecognized syscalls don't fault, they're simply unimplemented.
func (cpu *CPU) executeEcall() error {
	switch cpu.GetReg(17) {
	case sysExit:
		cpu.exited = true
		cpu.exitCode = int32(cpu.GetReg(10))
		cpu.running = false
		if cpu.tracer != nil {
			cpu.tracer.TraceExit(cpu.exitCode)
		}
	case sysWrite:
		// no console device wired up; treated as a no-op.
	default:
		// unrecognized syscall number: no-op.
	}
	return nil
}
