package debugstub

import (
	"errors"
	"io"
	"net"
	"time"
)

// pollTimeout is how long each non-blocking read attempt waits before
// reporting "no byte pending" — short enough that the event loop stays
// responsive to an interrupt, long enough to avoid a hot spin on the
// syscall itself.
const pollTimeout = 2 * time.Millisecond

// TCPByteSource adapts a net.Conn (as accepted from a debugger's
// "target remote host:port") into the ByteSource the event loop polls,
// using a short read deadline to emulate a non-blocking read.
type TCPByteSource struct {
	Conn net.Conn
}

func (t TCPByteSource) TryReadByte() (byte, bool, error) {
	_ = t.Conn.SetReadDeadline(time.Now().Add(pollTimeout))
	var buf [1]byte
	n, err := t.Conn.Read(buf[:])
	if n == 1 {
		return buf[0], true, nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return 0, false, nil
	}
	if errors.Is(err, io.EOF) {
		return 0, false, ErrConnectionClosed
	}
	return 0, false, err
}

// WaitForDebuggerConnection blocks until a debugger connects to the given
// TCP port (a bare port number such as "2345"; ":" is prepended), using a
// single blocking Accept call. It prints nothing itself.
func WaitForDebuggerConnection(port string) (net.Conn, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, err
	}
	defer ln.Close()
	return ln.Accept()
}
