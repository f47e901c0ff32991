package protocol

import (
	"bytes"
	"fmt"
)

// Binary frame layout constants.
const (
	FrameSync1      = 0xAA
	FrameSync2      = 0xBB
	FrameFamily     = 0x03
	FrameTerminator = 0xEE

	// FrameSize is the fixed length of every binary command frame.
	FrameSize = 6
)

// Command opcodes.
const (
	OpSwitchInput    = 0x01
	OpBuzzer         = 0x02
	OpLEDTimeout     = 0x03
	OpQueryInput     = 0x10
	OpInputStatus    = 0x11 // reply opcode for OpQueryInput
	OpInputDetection = 0x81
)

// Parameter bytes shared by the on/off commands (buzzer, auto-detection).
const (
	ParamEnable  = 0x0F
	ParamDisable = 0xF0
)

// MaxInput is the highest input the device family advertises. Inputs
// above 9 cannot be encoded in the single-nibble switch parameter; see
// EncodeInputSwitch.
const MaxInput = 16

// statusWrapAlias is the alternate status encoding the device emits for
// input 1 after wrapping past the last input.
const statusWrapAlias = 17

// EncodeBinary builds a 6-byte command frame. The opcode and parameter
// are caller-supplied raw bytes; semantic mapping (input ids, durations)
// happens in the typed encoders below.
func EncodeBinary(opcode, param byte) []byte {
	return []byte{FrameSync1, FrameSync2, FrameFamily, opcode, param, FrameTerminator}
}

// EncodeInputSwitch builds a switch-input frame for a 1-indexed input id.
// The parameter field holds the id as a single hex nibble, which limits
// addressable inputs to 1-9 even though the device advertises 16.
func EncodeInputSwitch(id int) ([]byte, error) {
	if id < 1 || id > MaxInput {
		return nil, fmt.Errorf("input id %d out of range 1-%d", id, MaxInput)
	}
	if id > 9 {
		return nil, fmt.Errorf("input id %d not encodable: switch parameter is a single nibble (inputs 1-9)", id)
	}
	return EncodeBinary(OpSwitchInput, byte(id)), nil
}

// EncodeInputQuery builds the query-current-input frame.
func EncodeInputQuery() []byte {
	return EncodeBinary(OpQueryInput, 0x00)
}

// StatusFramePrefix is the byte sequence that opens a current-input
// status reply. Replies are matched by scanning for this prefix rather
// than by exact framing: the device has been observed to prepend noise
// bytes to otherwise well-formed replies.
var StatusFramePrefix = []byte{FrameSync1, FrameSync2, FrameFamily, OpInputStatus}

// DecodeStatusByte extracts the raw status byte from a current-input
// reply. It locates the first status frame inside the reply and returns
// its parameter field. The frame must be complete through its 0xEE
// terminator.
func DecodeStatusByte(reply []byte) (byte, error) {
	i := bytes.Index(reply, StatusFramePrefix)
	if i < 0 {
		return 0, fmt.Errorf("no status frame in %d-byte reply", len(reply))
	}
	if len(reply) < i+FrameSize {
		return 0, fmt.Errorf("truncated status frame at offset %d (%d bytes)", i, len(reply)-i)
	}
	if reply[i+5] != FrameTerminator {
		return 0, fmt.Errorf("status frame missing terminator: got 0x%02X", reply[i+5])
	}
	return reply[i+4], nil
}

// InputFromStatus translates the device's 0-indexed status byte into a
// 1-indexed input id. The device encodes input 1 as either 0 or, after
// wrapping past the last input, as 17.
func InputFromStatus(status byte) (int, error) {
	if status == statusWrapAlias {
		return 1, nil
	}
	id := int(status) + 1
	if id < 1 || id > MaxInput {
		return 0, fmt.Errorf("status byte 0x%02X outside input range 1-%d", status, MaxInput)
	}
	return id, nil
}

// DecodeCurrentInput combines DecodeStatusByte and InputFromStatus.
func DecodeCurrentInput(reply []byte) (int, error) {
	status, err := DecodeStatusByte(reply)
	if err != nil {
		return 0, err
	}
	return InputFromStatus(status)
}
