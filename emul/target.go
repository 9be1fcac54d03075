package main

// debugTarget adapts *CPU to debugstub.Target: register/memory access plus
// single-step, expressed in terms of the same Step the plain Run loop uses
// so the debug stub and the free-running emulator can never drift apart.
type debugTarget struct {
	cpu *CPU
}

func (d *debugTarget) ReadAllRegisters() [33]uint32 {
	var out [33]uint32
	for i := 0; i < 32; i++ {
		out[i] = d.cpu.GetReg(uint32(i))
	}
	out[32] = d.cpu.pc
	return out
}

func (d *debugTarget) WriteAllRegisters(regs [33]uint32) {
	for i := 1; i < 32; i++ {
		d.cpu.SetReg(uint32(i), regs[i])
	}
	d.cpu.pc = regs[32]
}

func (d *debugTarget) ReadMemory(addr uint32, buf []byte) (int, error) {
	n := d.cpu.mem.ReadBytes(addr, buf)
	if n != len(buf) {
		return n, &MemoryOutOfBounds{Addr: addr, Size: len(buf)}
	}
	return n, nil
}

func (d *debugTarget) WriteMemory(addr uint32, data []byte) error {
	if !d.cpu.mem.WriteBytes(addr, data) {
		return &MemoryOutOfBounds{Addr: addr, Size: len(data)}
	}
	return nil
}

func (d *debugTarget) Step() (pc uint32, exited bool, exitCode int32) {
	d.cpu.Step()
	return d.cpu.pc, d.cpu.exited, d.cpu.exitCode
}
