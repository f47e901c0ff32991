// Package protocol implements the matrix switch wire codec.
//
// The device speaks two grammars over the same raw TCP port:
//
// Binary command frames, always 6 bytes:
//
//	[0] 0xAA   sync
//	[1] 0xBB   sync
//	[2] 0x03   family
//	[3] op     command opcode
//	[4] param  command parameter
//	[5] 0xEE   terminator
//
// Known opcodes: 0x01 switch input, 0x02 buzzer, 0x03 LED timeout,
// 0x81 input auto-detection, 0x10 query current input (param 0x00).
// The reply to a 0x10 query carries opcode 0x11 with the 0-indexed
// current input in the param position.
//
// ASCII key/value frames for network configuration:
//
//	query:  "<KEY>?;"
//	set:    "<KEY>: <value>;"
//	reply:  "<KEY>:<value>;"  or a reply containing the literal "OK"
//
// Known keys are IP, PT (port), MA (netmask) and GW (gateway). The
// device zero-pads values on the wire ("192.168.001.010", "0080");
// the sanitize helpers reduce these to canonical decimal form.
//
// All functions here are pure and stateless: encoding produces the
// exact bytes to transmit, decoding inspects received bytes without
// performing any I/O. Everything is safe for concurrent use.
package protocol
