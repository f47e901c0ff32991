package device

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/avtools/matrixctl/internal/protocol"
)

// LED timeout durations the device accepts, in seconds. Zero disables
// the timeout entirely.
var ledTimeouts = []int{0, 10, 30}

var dottedQuadShape = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// ValidateInputID checks that id is a valid 1-indexed input.
func ValidateInputID(id int) error {
	if id < 1 || id > protocol.MaxInput {
		return NewValidationError("input must be 1-%d, got %d", protocol.MaxInput, id)
	}
	return nil
}

// ValidateLEDTimeout checks that seconds is a supported LED timeout.
func ValidateLEDTimeout(seconds int) error {
	for _, d := range ledTimeouts {
		if seconds == d {
			return nil
		}
	}
	return NewValidationError("LED timeout must be 0 (disabled), 10 or 30 seconds, got %d", seconds)
}

// ValidateNetworkKey checks that key names a known network field.
func ValidateNetworkKey(key string) error {
	if !protocol.IsNetworkKey(key) {
		return NewValidationError("unknown network field %q (known: IP, PT, MA, GW)", key)
	}
	return nil
}

// ValidateNetworkValue checks a value for a network field before it is
// sent. IP, netmask and gateway must be dotted quads of in-range
// octets; the port must be an integer in [0,65535]. Zero-padded forms
// are accepted everywhere.
func ValidateNetworkValue(key, value string) error {
	if err := ValidateNetworkKey(key); err != nil {
		return err
	}

	if key == protocol.KeyPort {
		n, err := strconv.Atoi(value)
		if err != nil {
			return NewValidationError("port must be an integer, got %q", value)
		}
		if n < 0 || n > 65535 {
			return NewValidationError("port must be 0-65535, got %d", n)
		}
		return nil
	}

	if !dottedQuadShape.MatchString(value) {
		return NewValidationError("%s must be a dotted quad like 192.168.1.10, got %q", key, value)
	}
	for _, octet := range strings.Split(value, ".") {
		n, err := strconv.Atoi(octet)
		if err != nil || n > 255 {
			return NewValidationError("%s octet %q out of range 0-255", key, octet)
		}
	}
	return nil
}
