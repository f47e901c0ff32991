package sim

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avtools/matrixctl/internal/logging"
	"github.com/avtools/matrixctl/internal/protocol"
)

// readDeadline bounds how long the simulator waits for a request on
// an accepted connection. Real clients write immediately after dialing.
const readDeadline = 2 * time.Second

// statusNoise precedes every status frame, matching the junk bytes the
// real firmware flushes from its UART buffer.
var statusNoise = []byte{0x00, 0xF7, 0x00}

var setRequest = regexp.MustCompile(`^([A-Z]{2}): ?([^;]*);`)

// State is the simulated device state.
type State struct {
	Input      int
	Buzzer     bool
	Detection  bool
	LEDTimeout int

	// Network values as the firmware stores them, zero-padded.
	Network map[string]string
}

func defaultState() State {
	return State{
		Input:  1,
		Buzzer: true,
		Network: map[string]string{
			protocol.KeyIP:      "192.168.001.010",
			protocol.KeyPort:    "05000",
			protocol.KeyNetmask: "255.255.255.000",
			protocol.KeyGateway: "192.168.001.001",
		},
	}
}

// Simulator is a fake matrix switch listening on a TCP socket.
type Simulator struct {
	listener net.Listener

	mu    sync.Mutex
	state State
}

// Listen starts a simulator on the given address. Use "127.0.0.1:0"
// for an ephemeral port in tests.
func Listen(addr string) (*Simulator, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Simulator{listener: listener, state: defaultState()}
	go s.acceptLoop()

	logging.Info("simulator listening", zap.String("addr", listener.Addr().String()))
	return s, nil
}

// Addr returns the address the simulator is listening on.
func (s *Simulator) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting connections.
func (s *Simulator) Close() error {
	return s.listener.Close()
}

// Snapshot returns a copy of the current device state.
func (s *Simulator) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.Network = make(map[string]string, len(s.state.Network))
	for k, v := range s.state.Network {
		state.Network[k] = v
	}
	return state
}

func (s *Simulator) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

// handle serves one request/reply cycle. The protocol is one-shot:
// read whatever the client sent, answer if the request calls for an
// answer, close.
func (s *Simulator) handle(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readDeadline))

	buffer := make([]byte, 256)
	n, err := conn.Read(buffer)
	if err != nil || n == 0 {
		return
	}
	request := buffer[:n]

	logging.LogRawBytes("sim request", request)

	reply := s.respond(request)
	if reply != nil {
		logging.LogRawBytes("sim reply", reply)
		conn.Write(reply)
	}
}

// respond applies the request to the device state and returns the
// reply bytes, or nil for fire-and-forget commands.
func (s *Simulator) respond(request []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(request) == protocol.FrameSize &&
		request[0] == protocol.FrameSync1 &&
		request[1] == protocol.FrameSync2 &&
		request[2] == protocol.FrameFamily &&
		request[5] == protocol.FrameTerminator {
		return s.applyFrame(request[3], request[4])
	}

	return s.applyText(string(request))
}

func (s *Simulator) applyFrame(opcode, param byte) []byte {
	switch opcode {
	case protocol.OpSwitchInput:
		if param >= 1 && int(param) <= protocol.MaxInput {
			s.state.Input = int(param)
			logging.Info("sim switched input", zap.Int("input", s.state.Input))
		}
		return nil

	case protocol.OpBuzzer:
		s.state.Buzzer = param == protocol.ParamEnable
		return nil

	case protocol.OpLEDTimeout:
		s.state.LEDTimeout = int(param)
		return nil

	case protocol.OpInputDetection:
		s.state.Detection = param == protocol.ParamEnable
		return nil

	case protocol.OpQueryInput:
		// Status byte is zero-based; noise bytes first, like the
		// real device.
		frame := protocol.EncodeBinary(protocol.OpInputStatus, byte(s.state.Input-1))
		return append(append([]byte{}, statusNoise...), frame...)
	}

	return nil
}

func (s *Simulator) applyText(request string) []byte {
	// Query: "IP?;"
	if len(request) >= 4 && strings.HasSuffix(strings.TrimRight(request, "\x00"), "?;") {
		key := strings.ToUpper(strings.TrimRight(request, "\x00")[:2])
		if value, ok := s.state.Network[key]; ok {
			return nulPad(fmt.Sprintf("%s: %s;", key, value))
		}
		return nil
	}

	// Set: "IP: 192.168.1.50;"
	if m := setRequest.FindStringSubmatch(request); m != nil {
		key := strings.ToUpper(m[1])
		if _, ok := s.state.Network[key]; ok {
			s.state.Network[key] = m[2]
			logging.Info("sim network field set", zap.String("key", key), zap.String("value", m[2]))
			return nulPad("OK;")
		}
	}

	return nil
}

// nulPad appends the trailing NUL bytes the firmware pads its ASCII
// replies with.
func nulPad(reply string) []byte {
	return append([]byte(reply), 0x00, 0x00)
}
