package device

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/avtools/matrixctl/internal/logging"
	"github.com/avtools/matrixctl/internal/protocol"
)

// CurrentInput polls the device for the currently active input and
// returns it 1-indexed.
func (c *Client) CurrentInput() (int, error) {
	reply, err := c.Exchange(protocol.EncodeInputQuery(), Expectation{
		Check: func(r []byte) bool {
			_, err := protocol.DecodeCurrentInput(r)
			return err == nil
		},
	})
	if err != nil {
		return 0, err
	}

	id, err := protocol.DecodeCurrentInput(reply)
	if err != nil {
		// Unreachable once the expectation passed; kept so a decode
		// regression cannot report a bogus input.
		return 0, NewDecodeError("status reply", err)
	}
	return id, nil
}

// SwitchInput selects the given input and verifies the switch by
// re-querying the device. The device gives no acknowledgment for the
// switch command itself, so read-after-write is the only confirmation.
func (c *Client) SwitchInput(id int) error {
	if err := ValidateInputID(id); err != nil {
		return err
	}
	frame, err := protocol.EncodeInputSwitch(id)
	if err != nil {
		return NewValidationError("%v", err)
	}

	if err := c.deliver(frame); err != nil {
		return err
	}

	got, err := c.CurrentInput()
	if err != nil {
		return err
	}
	if got != id {
		return NewStateMismatchError("input switch not applied",
			inputLabel(id), inputLabel(got))
	}

	logging.Info("input switched", zap.Int("input", id))
	return nil
}

// SetBuzzer enables or disables the key-press buzzer. Fire-and-forget:
// the device exposes no way to read the buzzer state back.
func (c *Client) SetBuzzer(on bool) error {
	return c.deliver(protocol.EncodeBinary(protocol.OpBuzzer, onOffParam(on)))
}

// SetLEDTimeout sets the front-panel LED timeout in seconds. Only 0
// (never dim), 10 and 30 are accepted by the device.
func (c *Client) SetLEDTimeout(seconds int) error {
	if err := ValidateLEDTimeout(seconds); err != nil {
		return err
	}
	return c.deliver(protocol.EncodeBinary(protocol.OpLEDTimeout, byte(seconds)))
}

// SetInputDetection enables or disables automatic input detection.
// Fire-and-forget, like SetBuzzer.
func (c *Client) SetInputDetection(on bool) error {
	return c.deliver(protocol.EncodeBinary(protocol.OpInputDetection, onOffParam(on)))
}

// NetworkField reads one network configuration field and returns it in
// canonical form, with the device's zero-padding stripped.
func (c *Client) NetworkField(key string) (string, error) {
	if err := ValidateNetworkKey(key); err != nil {
		return "", err
	}

	reply, err := c.Exchange(protocol.EncodeQuery(key), Expectation{
		Check: func(r []byte) bool {
			_, err := protocol.DecodeKeyValue(protocol.Printable(r), key)
			return err == nil
		},
	})
	if err != nil {
		return "", err
	}

	raw, err := protocol.DecodeKeyValue(protocol.Printable(reply), key)
	if err != nil {
		return "", NewDecodeError("key/value reply", err)
	}
	return canonicalize(key, raw), nil
}

// SetNetworkField writes one network configuration field. The device
// acknowledges a successful set with a reply containing "OK"; the new
// value is then read back and compared in canonical form.
func (c *Client) SetNetworkField(key, value string) error {
	if err := ValidateNetworkValue(key, value); err != nil {
		return err
	}

	if _, err := c.Exchange(protocol.EncodeSet(key, value), Expectation{Text: "OK"}); err != nil {
		return err
	}

	got, err := c.NetworkField(key)
	if err != nil {
		return err
	}
	want := canonicalize(key, value)
	if got != want {
		return NewStateMismatchError(key+" not applied", want, got)
	}

	logging.Info("network field set", zap.String("key", key), zap.String("value", want))
	return nil
}

// NetworkConfig is the device's complete network configuration in
// canonical form.
type NetworkConfig struct {
	IP      string
	Port    string
	Netmask string
	Gateway string
}

// ReadNetworkConfig queries all four network fields.
func (c *Client) ReadNetworkConfig() (*NetworkConfig, error) {
	cfg := &NetworkConfig{}
	fields := []struct {
		key string
		dst *string
	}{
		{protocol.KeyIP, &cfg.IP},
		{protocol.KeyPort, &cfg.Port},
		{protocol.KeyNetmask, &cfg.Netmask},
		{protocol.KeyGateway, &cfg.Gateway},
	}
	for _, f := range fields {
		v, err := c.NetworkField(f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return cfg, nil
}

func onOffParam(on bool) byte {
	if on {
		return protocol.ParamEnable
	}
	return protocol.ParamDisable
}

// canonicalize strips zero-padding the way the device's own tooling
// does: dotted quads per octet, the port as a plain decimal.
func canonicalize(key, value string) string {
	if key == protocol.KeyPort {
		return protocol.SanitizeDecimal(value)
	}
	return protocol.SanitizeDottedQuad(value)
}

func inputLabel(id int) string {
	return "input " + strconv.Itoa(id)
}
