package debugstub

import (
	"errors"
	"time"
)

// ByteSource is a non-blocking single-byte source: TryReadByte returns
// ok=false (not an error) when no byte is pending right now. This is the
// abstraction point for "a non-blocking read of one byte from the
// connection" (spec.md §5); TCPByteSource in tcp.go is the concrete TCP
// implementation the emulator's debug server wires in.
type ByteSource interface {
	TryReadByte() (b byte, ok bool, err error)
}

// ErrConnectionClosed is returned by a ByteSource when its peer hung up.
var ErrConnectionClosed = errors.New("debugstub: connection closed")

// Session owns a Target, its breakpoint set, and the current State. It is
// not safe for concurrent use — the whole point of the cooperative loop is
// that exactly one goroutine drives it (spec.md §5: "shared resources:
// none across threads").
type Session struct {
	target Target
	bp     *Breakpoints
	state  State
}

func NewSession(target Target, bp *Breakpoints) *Session {
	return &Session{target: target, bp: bp, state: Idle}
}

func (s *Session) State() State { return s.state }

// Resume transitions Idle -> Running. Any other starting state is a no-op
// (spec.md §4.7 only defines the Idle -> Running transition).
func (s *Session) Resume() {
	if s.state == Idle {
		s.state = Running
	}
}

// StepRequest transitions Idle -> Stepping.
func (s *Session) StepRequest() {
	if s.state == Idle {
		s.state = Stepping
	}
}

// Interrupt transitions Running/Stepping -> Idle immediately, regardless of
// where in the current loop iteration the target is.
func (s *Session) Interrupt() StopReason {
	s.state = Idle
	return StopReason{Kind: StopSIGINT}
}

func (s *Session) AddBreakpoint(addr uint32)    { s.bp.Add(addr) }
func (s *Session) RemoveBreakpoint(addr uint32) { s.bp.Remove(addr) }

// RunUntilStop drives the cooperative event loop: each iteration tries a
// non-blocking byte read first (any incoming byte is treated as an
// interrupt request, since packet framing is out of this package's scope),
// then — if Running or Stepping — executes exactly one instruction and
// checks the post-commit PC against the breakpoint set. Idle iterations
// sleep idleSleep to avoid busy-spinning. It returns once a stop reason is
// produced or the byte source reports an error.
func (s *Session) RunUntilStop(src ByteSource, idleSleep time.Duration) (StopReason, error) {
	for {
		b, ok, err := src.TryReadByte()
		if err != nil {
			return StopReason{}, err
		}
		if ok {
			_ = b // no wire protocol to decode; any byte interrupts
			return s.Interrupt(), nil
		}

		switch s.state {
		case Running, Stepping:
			pc, exited, code := s.target.Step()
			if exited {
				s.state = Idle
				return StopReason{Kind: StopExited, ExitCode: code}, nil
			}
			if s.state == Stepping {
				s.state = Idle
				return StopReason{Kind: StopDoneStep}, nil
			}
			if s.bp.Has(pc) {
				s.state = Idle
				return StopReason{Kind: StopSwBreak}, nil
			}
			// still Running: loop again, checking for incoming bytes first
		case Idle, Trapped:
			time.Sleep(idleSleep)
		}
	}
}
