package debugstub

import (
	"testing"
	"time"
)

// fakeTarget walks PC forward by 4 on every Step, exiting when it reaches
// exitAt.
type fakeTarget struct {
	pc     uint32
	exitAt uint32
}

func (f *fakeTarget) ReadAllRegisters() [33]uint32 {
	var r [33]uint32
	r[32] = f.pc
	return r
}
func (f *fakeTarget) WriteAllRegisters(regs [33]uint32) { f.pc = regs[32] }
func (f *fakeTarget) ReadMemory(addr uint32, buf []byte) (int, error) { return 0, nil }
func (f *fakeTarget) WriteMemory(addr uint32, data []byte) error      { return nil }

func (f *fakeTarget) Step() (uint32, bool, int32) {
	f.pc += 4
	if f.pc == f.exitAt {
		return f.pc, true, 7
	}
	return f.pc, false, 0
}

// neverSource never has a byte pending; it lets the loop run to completion
// purely on Step() results.
type neverSource struct{}

func (neverSource) TryReadByte() (byte, bool, error) { return 0, false, nil }

func TestStepRequestStopsAfterOneInstruction(t *testing.T) {
	tgt := &fakeTarget{exitAt: 1000}
	sess := NewSession(tgt, NewBreakpoints())
	sess.StepRequest()

	reason, err := sess.RunUntilStop(neverSource{}, time.Millisecond)
	if err != nil {
		t.Fatalf("RunUntilStop: %v", err)
	}
	if reason.Kind != StopDoneStep {
		t.Errorf("Kind = %v, want StopDoneStep", reason.Kind)
	}
	if sess.State() != Idle {
		t.Errorf("State = %v, want Idle", sess.State())
	}
	if tgt.pc != 4 {
		t.Errorf("pc = %d, want 4 (exactly one instruction)", tgt.pc)
	}
}

func TestResumeStopsOnBreakpoint(t *testing.T) {
	tgt := &fakeTarget{exitAt: 1000}
	bp := NewBreakpoints()
	bp.Add(12)
	sess := NewSession(tgt, bp)
	sess.Resume()

	reason, err := sess.RunUntilStop(neverSource{}, time.Millisecond)
	if err != nil {
		t.Fatalf("RunUntilStop: %v", err)
	}
	if reason.Kind != StopSwBreak {
		t.Errorf("Kind = %v, want StopSwBreak", reason.Kind)
	}
	if tgt.pc != 12 {
		t.Errorf("pc = %d, want 12 (stopped at breakpoint, not past it)", tgt.pc)
	}
}

func TestResumeStopsOnExit(t *testing.T) {
	tgt := &fakeTarget{exitAt: 8}
	sess := NewSession(tgt, NewBreakpoints())
	sess.Resume()

	reason, err := sess.RunUntilStop(neverSource{}, time.Millisecond)
	if err != nil {
		t.Fatalf("RunUntilStop: %v", err)
	}
	if reason.Kind != StopExited || reason.ExitCode != 7 {
		t.Errorf("reason = %+v, want Exited/7", reason)
	}
}

// onceSource reports one pending byte then nothing, so the loop treats it
// as an interrupt request on the first poll.
type onceSource struct{ fired bool }

func (o *onceSource) TryReadByte() (byte, bool, error) {
	if o.fired {
		return 0, false, nil
	}
	o.fired = true
	return 0x03, true, nil
}

func TestIncomingByteInterruptsRunningTarget(t *testing.T) {
	tgt := &fakeTarget{exitAt: 1000}
	sess := NewSession(tgt, NewBreakpoints())
	sess.Resume()

	reason, err := sess.RunUntilStop(&onceSource{}, time.Millisecond)
	if err != nil {
		t.Fatalf("RunUntilStop: %v", err)
	}
	if reason.Kind != StopSIGINT {
		t.Errorf("Kind = %v, want StopSIGINT", reason.Kind)
	}
	if sess.State() != Idle {
		t.Errorf("State = %v, want Idle", sess.State())
	}
	if tgt.pc != 0 {
		t.Errorf("pc = %d, want 0 (interrupted before any Step)", tgt.pc)
	}
}

func TestAddRemoveBreakpoint(t *testing.T) {
	bp := NewBreakpoints()
	bp.Add(0x100)
	if !bp.Has(0x100) {
		t.Fatal("breakpoint not recorded")
	}
	bp.Remove(0x100)
	if bp.Has(0x100) {
		t.Fatal("breakpoint still present after Remove")
	}
}
