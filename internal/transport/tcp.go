package transport

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/avtools/matrixctl/internal/logging"
)

const (
	// DefaultDialTimeout bounds connection establishment.
	DefaultDialTimeout = 2 * time.Second

	// DefaultReadDeadline bounds a single read phase. The device that
	// accepts a connection but never writes would otherwise hang the
	// caller forever.
	DefaultReadDeadline = 750 * time.Millisecond
)

// Sender performs one-shot exchanges against a single device address.
type Sender struct {
	// DialTimeout is the TCP connect timeout.
	DialTimeout time.Duration

	// ReadDeadline bounds how long Send waits for reply bytes after
	// the payload has been written.
	ReadDeadline time.Duration
}

// New returns a Sender with default timeouts.
func New() *Sender {
	return &Sender{
		DialTimeout:  DefaultDialTimeout,
		ReadDeadline: DefaultReadDeadline,
	}
}

// Send opens a TCP connection to host:port, writes the payload fully,
// reads until the peer closes the stream or the read deadline elapses,
// and closes the connection. The reply is returned byte-for-byte as
// received: 0x00 is a meaningful value in binary status frames, so any
// padding the device adds around ASCII replies is the decoder's
// problem, not the transport's. An empty reply is not an error; dial
// and write failures are.
func (s *Sender) Send(host string, port int, payload []byte) ([]byte, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", addr, s.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetWriteDeadline(time.Now().Add(s.DialTimeout)); err != nil {
		return nil, fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("write %d bytes to %s: %w", len(payload), addr, err)
	}
	logging.LogRawBytes("transport write", payload)

	if err := conn.SetReadDeadline(time.Now().Add(s.ReadDeadline)); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	var reply []byte
	buf := make([]byte, 512)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			reply = append(reply, buf[:n]...)
		}
		if err != nil {
			// EOF means the device closed after replying; a deadline
			// means it left the connection open. Either way whatever
			// was collected is the reply.
			if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
				logging.Debug("read ended", zap.String("addr", addr), zap.Error(err))
			}
			break
		}
	}

	logging.LogRawBytes("transport read", reply)
	return reply, nil
}
