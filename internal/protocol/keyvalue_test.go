package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{KeyIP, "IP?;"},
		{KeyPort, "PT?;"},
		{KeyNetmask, "MA?;"},
		{KeyGateway, "GW?;"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := EncodeQuery(tt.key); !bytes.Equal(got, []byte(tt.want)) {
				t.Errorf("EncodeQuery(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestEncodeSet(t *testing.T) {
	got := EncodeSet(KeyNetmask, "255.255.255.0")
	want := "MA: 255.255.255.0;"
	if !bytes.Equal(got, []byte(want)) {
		t.Errorf("EncodeSet() = %q, want %q", got, want)
	}
}

func TestDecodeKeyValue(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		key     string
		want    string
		wantErr bool
	}{
		{
			name:  "plain value",
			reply: "IP:192.168.1.10;",
			key:   KeyIP,
			want:  "192.168.1.10",
		},
		{
			name:  "space after colon",
			reply: "GW: 192.168.1.1;",
			key:   KeyGateway,
			want:  "192.168.1.1",
		},
		{
			name:  "zero-padded value passed through",
			reply: "IP:192.168.001.010;",
			key:   KeyIP,
			want:  "192.168.001.010",
		},
		{
			name:  "value embedded in noise",
			reply: "xxPT:5000;yy",
			key:   KeyPort,
			want:  "5000",
		},
		{
			name:    "missing terminator",
			reply:   "IP:192.168.1.10",
			key:     KeyIP,
			wantErr: true,
		},
		{
			name:    "wrong key",
			reply:   "GW:192.168.1.1;",
			key:     KeyIP,
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			key:     KeyIP,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeKeyValue(tt.reply, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeKeyValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DecodeKeyValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeKeyValue_NULPaddedReply(t *testing.T) {
	// The firmware pads ASCII replies with NUL bytes. The transport
	// hands them over untouched; reducing to printable content before
	// decoding is what makes them harmless.
	reply := append([]byte{0x00}, []byte("IP: 192.168.001.010;")...)
	reply = append(reply, 0x00, 0x00)

	got, err := DecodeKeyValue(Printable(reply), KeyIP)
	if err != nil {
		t.Fatalf("DecodeKeyValue() error = %v", err)
	}
	if got != "192.168.001.010" {
		t.Errorf("DecodeKeyValue() = %q, want %q", got, "192.168.001.010")
	}
}

func TestQueryRoundTrip(t *testing.T) {
	// Encoding a query and decoding the device's reply yields the value.
	frame := EncodeQuery(KeyIP)
	if string(frame) != "IP?;" {
		t.Fatalf("EncodeQuery(IP) = %q", frame)
	}
	got, err := DecodeKeyValue("IP:192.168.1.10;", KeyIP)
	if err != nil {
		t.Fatalf("DecodeKeyValue() error = %v", err)
	}
	if got != "192.168.1.10" {
		t.Errorf("round trip = %q, want %q", got, "192.168.1.10")
	}
}

func TestSanitizeDottedQuad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"192.168.001.010", "192.168.1.10"},
		{"192.168.1.10", "192.168.1.10"},
		{"255.255.255.000", "255.255.255."},
		{"010.001.000.001", "10.1..1"},
		{"00", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeDottedQuad(tt.in); got != tt.want {
				t.Errorf("SanitizeDottedQuad(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Sanitizing is idempotent.
			once := SanitizeDottedQuad(tt.in)
			if twice := SanitizeDottedQuad(once); twice != once {
				t.Errorf("not idempotent: %q -> %q -> %q", tt.in, once, twice)
			}
		})
	}
}

func TestSanitizeDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0080", "80"},
		{"5000", "5000"},
		{"0", "0"},
		{"000", "0"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeDecimal(tt.in); got != tt.want {
				t.Errorf("SanitizeDecimal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrintable(t *testing.T) {
	reply := append([]byte{0x00, 0x01}, []byte("IP:10.0.0.1;")...)
	reply = append(reply, 0xFF, 0x00)
	if got := Printable(reply); got != "IP:10.0.0.1;" {
		t.Errorf("Printable() = %q", got)
	}

	if ContainsPrintable([]byte{0x00, 0x01, 0xFF}) {
		t.Error("ContainsPrintable() = true for non-printable bytes")
	}
	if !ContainsPrintable([]byte{0x00, 'A'}) {
		t.Error("ContainsPrintable() = false for reply containing 'A'")
	}
}
