package sim

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/avtools/matrixctl/internal/device"
	"github.com/avtools/matrixctl/internal/protocol"
)

// startSim runs a simulator on an ephemeral port and returns a real
// client wired to it. This is the closest we get to hardware in CI:
// the full client stack (retry loop, transport, codec) against the
// simulated firmware quirks.
func startSim(t *testing.T) (*Simulator, *device.Client) {
	t.Helper()

	s, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	host, portStr, err := net.SplitHostPort(s.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)

	client := device.NewClient(host, port)
	client.RetryDelay = time.Millisecond
	return s, client
}

func TestCurrentInputAgainstSimulator(t *testing.T) {
	_, client := startSim(t)

	input, err := client.CurrentInput()
	if err != nil {
		t.Fatalf("CurrentInput() error = %v", err)
	}
	if input != 1 {
		t.Errorf("CurrentInput() = %d, want 1", input)
	}
}

func TestSwitchInputAgainstSimulator(t *testing.T) {
	s, client := startSim(t)

	if err := client.SwitchInput(4); err != nil {
		t.Fatalf("SwitchInput(4) error = %v", err)
	}

	if got := s.Snapshot().Input; got != 4 {
		t.Errorf("simulator input = %d, want 4", got)
	}

	input, err := client.CurrentInput()
	if err != nil {
		t.Fatalf("CurrentInput() error = %v", err)
	}
	if input != 4 {
		t.Errorf("CurrentInput() = %d, want 4", input)
	}
}

func TestBuzzerAndDetectionAgainstSimulator(t *testing.T) {
	s, client := startSim(t)

	if err := client.SetBuzzer(false); err != nil {
		t.Fatalf("SetBuzzer(false) error = %v", err)
	}
	if err := client.SetInputDetection(true); err != nil {
		t.Fatalf("SetInputDetection(true) error = %v", err)
	}
	if err := client.SetLEDTimeout(30); err != nil {
		t.Fatalf("SetLEDTimeout(30) error = %v", err)
	}

	// Fire-and-forget commands report success once written; give the
	// simulator a moment to apply them.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		state := s.Snapshot()
		if !state.Buzzer && state.Detection && state.LEDTimeout == 30 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("simulator state = %+v", s.Snapshot())
}

func TestNetworkFieldsAgainstSimulator(t *testing.T) {
	_, client := startSim(t)

	// The simulator stores zero-padded values; the client canonicalizes.
	ip, err := client.NetworkField(protocol.KeyIP)
	if err != nil {
		t.Fatalf("NetworkField(IP) error = %v", err)
	}
	if ip != "192.168.1.10" {
		t.Errorf("NetworkField(IP) = %q, want 192.168.1.10", ip)
	}

	if err := client.SetNetworkField(protocol.KeyGateway, "192.168.1.254"); err != nil {
		t.Fatalf("SetNetworkField(GW) error = %v", err)
	}

	cfg, err := client.ReadNetworkConfig()
	if err != nil {
		t.Fatalf("ReadNetworkConfig() error = %v", err)
	}
	if cfg.Gateway != "192.168.1.254" {
		t.Errorf("Gateway = %q, want 192.168.1.254", cfg.Gateway)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000 (padding stripped)", cfg.Port)
	}
}
