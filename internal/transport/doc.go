// Package transport performs one-shot TCP exchanges with the matrix
// switch.
//
// The device does not hold sessions: every command is a single
// connect, write, read, close cycle. Send dials the device, writes the
// payload and then reads whatever arrives until the peer closes the
// stream or a short read deadline elapses. A deadline expiring is not
// an error; the device frequently leaves the connection open after
// replying, and whatever bytes were collected by then are the reply.
//
// The package has no protocol knowledge. Callers hand it opaque bytes
// and interpret whatever comes back.
package transport
