package device

import (
	"bytes"
	"strings"
	"time"

	"github.com/avtools/matrixctl/internal/logging"
	"github.com/avtools/matrixctl/internal/protocol"
	"github.com/avtools/matrixctl/internal/transport"
)

const (
	// DefaultHost is the factory address of the matrix switch.
	DefaultHost = "192.168.1.10"

	// DefaultPort is the device's raw TCP command port.
	DefaultPort = 5000

	// DefaultMaxAttempts bounds the polling loop. Together with the
	// retry delay this caps a permanently unreachable device at about
	// two seconds plus per-attempt read deadlines, instead of hanging
	// the caller.
	DefaultMaxAttempts = 10

	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = 200 * time.Millisecond
)

// ByteSender performs one one-shot byte exchange with the device.
// *transport.Sender is the production implementation.
type ByteSender interface {
	Send(host string, port int, payload []byte) ([]byte, error)
}

// Client issues operations against a single matrix switch.
type Client struct {
	Host string
	Port int

	// Sender performs the raw exchanges.
	Sender ByteSender

	// MaxAttempts is the maximum number of exchanges per operation.
	MaxAttempts int

	// RetryDelay is the fixed delay between attempts.
	RetryDelay time.Duration
}

// NewClient creates a client for the device at host:port with default
// retry behavior.
func NewClient(host string, port int) *Client {
	return &Client{
		Host:        host,
		Port:        port,
		Sender:      transport.New(),
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// Expectation is the validity predicate for a reply. Exactly one of
// the matching modes applies, checked in order: Check, Bytes, Text.
// With none set, any reply containing a printable byte is accepted,
// unless Raw is set, in which case any non-empty reply is.
type Expectation struct {
	// Check accepts or rejects the raw reply. Used when validity means
	// "decodes cleanly", so that malformed frames stay inside the
	// retry loop.
	Check func(reply []byte) bool

	// Bytes must appear literally in the raw reply (binary-safe).
	Bytes []byte

	// Text must appear in the printable content of the reply.
	Text string

	// Raw skips the printable-content requirement of the default mode.
	Raw bool
}

func (e Expectation) matches(reply []byte) bool {
	if len(reply) == 0 {
		return false
	}
	switch {
	case e.Check != nil:
		return e.Check(reply)
	case e.Bytes != nil:
		return bytes.Contains(reply, e.Bytes)
	case e.Text != "":
		return strings.Contains(protocol.Printable(reply), e.Text)
	case e.Raw:
		return true
	default:
		return protocol.ContainsPrintable(reply)
	}
}

// Exchange sends payload and polls until a reply satisfies the
// expectation: up to MaxAttempts one-shot exchanges with RetryDelay
// between them. Transport failures and rejected replies both count as
// failed attempts. The first valid reply is returned immediately.
func (c *Client) Exchange(payload []byte, expect Expectation) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(c.RetryDelay)
		}

		reply, err := c.Sender.Send(c.Host, c.Port, payload)
		if err != nil {
			lastErr = NewTransportError("exchange failed", err)
			logging.LogAttempt(attempt, c.MaxAttempts, 0, false)
			continue
		}

		ok := expect.matches(reply)
		logging.LogAttempt(attempt, c.MaxAttempts, len(reply), ok)
		if ok {
			return reply, nil
		}
	}

	return nil, NewNoValidReplyError("no valid reply", c.MaxAttempts, lastErr)
}

// deliver sends a fire-and-forget command. The reply, if any, is
// ignored; an attempt succeeds as soon as the payload is written.
// Transport failures are retried up to the same bound as Exchange.
func (c *Client) deliver(payload []byte) error {
	var lastErr error

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(c.RetryDelay)
		}

		_, err := c.Sender.Send(c.Host, c.Port, payload)
		if err == nil {
			logging.LogAttempt(attempt, c.MaxAttempts, 0, true)
			return nil
		}
		lastErr = NewTransportError("delivery failed", err)
		logging.LogAttempt(attempt, c.MaxAttempts, 0, false)
	}

	return NewNoValidReplyError("could not deliver command", c.MaxAttempts, lastErr)
}
