package protocol

import (
	"fmt"
	"regexp"
	"strings"
)

// Network configuration keys understood by the device.
const (
	KeyIP      = "IP"
	KeyPort    = "PT"
	KeyNetmask = "MA"
	KeyGateway = "GW"
)

// NetworkKeys lists every supported network configuration key.
var NetworkKeys = []string{KeyIP, KeyPort, KeyNetmask, KeyGateway}

// IsNetworkKey reports whether key names a known network field.
func IsNetworkKey(key string) bool {
	for _, k := range NetworkKeys {
		if k == key {
			return true
		}
	}
	return false
}

// EncodeQuery builds an ASCII query frame, e.g. "IP?;".
func EncodeQuery(key string) []byte {
	return []byte(key + "?;")
}

// EncodeSet builds an ASCII set frame, e.g. "MA: 255.255.255.0;".
func EncodeSet(key, value string) []byte {
	return []byte(key + ": " + value + ";")
}

// Printable reduces a reply to its printable ASCII content. Key/value
// replies arrive wrapped in whatever noise the device emits around
// them; text matching is always done against this reduced form.
func Printable(reply []byte) string {
	var sb strings.Builder
	sb.Grow(len(reply))
	for _, b := range reply {
		if b >= 0x20 && b <= 0x7E {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// ContainsPrintable reports whether the reply carries at least one
// printable ASCII byte.
func ContainsPrintable(reply []byte) bool {
	for _, b := range reply {
		if b >= 0x20 && b <= 0x7E {
			return true
		}
	}
	return false
}

// DecodeKeyValue extracts the value for key from a key/value reply.
// The reply grammar is "<key>:<value>;" with optional whitespace after
// the colon; matching is done against the printable content only.
func DecodeKeyValue(reply, key string) (string, error) {
	re, err := regexp.Compile(regexp.QuoteMeta(key) + `: ?([^;]*);`)
	if err != nil {
		return "", fmt.Errorf("bad key %q: %w", key, err)
	}
	m := re.FindStringSubmatch(reply)
	if m == nil {
		return "", fmt.Errorf("no %s value in reply %q", key, reply)
	}
	return m[1], nil
}

// octetPadding matches the zero-padding run at the start of each octet.
var octetPadding = regexp.MustCompile(`(^|\.)0+`)

// SanitizeDottedQuad strips the device's per-octet zero-padding from a
// dotted-quad value: "192.168.001.010" becomes "192.168.1.10". The
// whole leading zero run is removed, so an all-zero octet collapses to
// empty, matching the device's own tooling. Idempotent.
func SanitizeDottedQuad(s string) string {
	return octetPadding.ReplaceAllString(s, "$1")
}

// SanitizeDecimal strips leading zero-padding from a plain decimal
// value: "0080" becomes "80". A bare zero is preserved.
func SanitizeDecimal(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" && strings.Contains(s, "0") {
		return "0"
	}
	return t
}
