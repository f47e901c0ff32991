// Package sim emulates a matrix switch on a TCP socket.
//
// The simulator speaks both of the device's wire grammars and
// reproduces its quirks: status replies carry leading noise bytes,
// ASCII replies are NUL-padded, and network values come back
// zero-padded the way the real firmware pads them. It exists for
// development and for exercising the client end to end without
// hardware.
package sim
