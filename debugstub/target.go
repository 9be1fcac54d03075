// Package debugstub wraps an emulator as a remote-debuggable target: a
// state machine plus a cooperative single-thread event loop (spec.md §4.7).
// It models the semantics a wire protocol like gdbstub would drive, without
// any wire encoding of its own — framing a connection's bytes into GDB
// remote-protocol packets is out of scope here, same as spec.md scopes it.
package debugstub

// Target is the five-operation surface the event loop drives. Breakpoints
// and interrupts are handled by Session, not by the target. An emulator
// implements this to become debuggable.
type Target interface {
	ReadAllRegisters() [33]uint32
	WriteAllRegisters(regs [33]uint32)
	ReadMemory(addr uint32, buf []byte) (int, error)
	WriteMemory(addr uint32, data []byte) error

	// Step executes exactly one instruction and reports the PC afterward.
	Step() (pc uint32, exited bool, exitCode int32)
}

// PC is a convenience accessor pulled out of ReadAllRegisters, register 32
// by convention (indices 0-31 are the GPRs, r0 hardwired to zero).
func PC(regs [33]uint32) uint32 { return regs[32] }
