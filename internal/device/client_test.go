package device

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// scriptedSender replays canned replies (or errors) in order and
// records every payload it was asked to send. Once the script runs
// out, the last step repeats.
type scriptedSender struct {
	steps []step
	sent  [][]byte
}

type step struct {
	reply []byte
	err   error
}

func (s *scriptedSender) Send(host string, port int, payload []byte) ([]byte, error) {
	s.sent = append(s.sent, append([]byte(nil), payload...))
	i := len(s.sent) - 1
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	if len(s.steps) == 0 {
		return nil, nil
	}
	return s.steps[i].reply, s.steps[i].err
}

func newTestClient(s *scriptedSender) *Client {
	return &Client{
		Host:        "127.0.0.1",
		Port:        5000,
		Sender:      s,
		MaxAttempts: 10,
		RetryDelay:  time.Millisecond,
	}
}

func TestExchange_ReturnsFirstValidReply(t *testing.T) {
	valid := []byte("IP:192.168.1.10;")
	sender := &scriptedSender{steps: []step{
		{reply: nil},            // silent device
		{err: errors.New("connection refused")},
		{reply: valid},
	}}
	c := newTestClient(sender)

	got, err := c.Exchange([]byte("IP?;"), Expectation{Text: "IP:"})
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if !bytes.Equal(got, valid) {
		t.Errorf("Exchange() = %q, want %q", got, valid)
	}
	// The valid reply ends the loop at once: no further exchanges.
	if len(sender.sent) != 3 {
		t.Errorf("sender called %d times, want 3", len(sender.sent))
	}
}

func TestExchange_ExhaustsExactlyMaxAttempts(t *testing.T) {
	sender := &scriptedSender{steps: []step{{reply: []byte("noise")}}}
	c := newTestClient(sender)
	c.MaxAttempts = 4

	_, err := c.Exchange([]byte("GW?;"), Expectation{Text: "GW:"})
	if !IsNoValidReplyError(err) {
		t.Fatalf("Exchange() error = %v, want no-valid-reply", err)
	}
	if len(sender.sent) != 4 {
		t.Errorf("sender called %d times, want exactly 4", len(sender.sent))
	}

	var devErr *Error
	if !errors.As(err, &devErr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if devErr.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", devErr.Attempts)
	}
}

func TestExchange_EmptyReplyNeverAccepted(t *testing.T) {
	sender := &scriptedSender{steps: []step{{reply: nil}}}
	c := newTestClient(sender)
	c.MaxAttempts = 2

	// Even the permissive raw mode rejects an empty reply.
	if _, err := c.Exchange([]byte{0xAA}, Expectation{Raw: true}); !IsNoValidReplyError(err) {
		t.Errorf("Exchange() error = %v, want no-valid-reply", err)
	}
}

func TestExpectationMatches(t *testing.T) {
	tests := []struct {
		name   string
		expect Expectation
		reply  []byte
		want   bool
	}{
		{
			name:   "default accepts printable",
			expect: Expectation{},
			reply:  []byte{0x00, 'O', 'K'},
			want:   true,
		},
		{
			name:   "default rejects pure binary",
			expect: Expectation{},
			reply:  []byte{0xAA, 0xBB, 0x03},
			want:   false,
		},
		{
			name:   "raw accepts pure binary",
			expect: Expectation{Raw: true},
			reply:  []byte{0xAA, 0xBB, 0x03},
			want:   true,
		},
		{
			name:   "bytes literal found",
			expect: Expectation{Bytes: []byte{0xBB, 0x03}},
			reply:  []byte{0xAA, 0xBB, 0x03, 0x11},
			want:   true,
		},
		{
			name:   "bytes literal absent",
			expect: Expectation{Bytes: []byte{0xEE, 0xEE}},
			reply:  []byte{0xAA, 0xBB, 0x03, 0x11},
			want:   false,
		},
		{
			name:   "text matched against printable content only",
			expect: Expectation{Text: "OK"},
			reply:  []byte{0x00, 'O', 0x01, 'K', 0xFF},
			want:   true, // noise bytes cannot hide the token
		},
		{
			name:   "text substring",
			expect: Expectation{Text: "MA:"},
			reply:  []byte("MA:255.255.255.0;"),
			want:   true,
		},
		{
			name:   "check function wins",
			expect: Expectation{Check: func(r []byte) bool { return len(r) == 2 }, Text: "nope"},
			reply:  []byte("ab"),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expect.matches(tt.reply); got != tt.want {
				t.Errorf("matches(% X) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestDeliver_RetriesTransportFailures(t *testing.T) {
	sender := &scriptedSender{steps: []step{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{reply: nil}, // write succeeded, silent device is fine
	}}
	c := newTestClient(sender)

	if err := c.deliver([]byte{0xAA, 0xBB, 0x03, 0x02, 0x0F, 0xEE}); err != nil {
		t.Fatalf("deliver() error = %v", err)
	}
	if len(sender.sent) != 3 {
		t.Errorf("sender called %d times, want 3", len(sender.sent))
	}
}

func TestDeliver_UnreachableDevice(t *testing.T) {
	sender := &scriptedSender{steps: []step{{err: errors.New("no route to host")}}}
	c := newTestClient(sender)
	c.MaxAttempts = 3

	err := c.deliver([]byte{0xAA})
	if !IsNoValidReplyError(err) {
		t.Fatalf("deliver() error = %v, want no-valid-reply", err)
	}
	if len(sender.sent) != 3 {
		t.Errorf("sender called %d times, want 3", len(sender.sent))
	}
}
