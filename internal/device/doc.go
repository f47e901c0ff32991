// Package device implements the operation catalog for the matrix
// switch: switching inputs, toggling the buzzer and input
// auto-detection, setting the LED timeout, and reading or writing the
// device's network configuration.
//
// The device is slow and noisy. A reply can arrive late, empty, or
// with stray bytes around the interesting part, and mutating commands
// carry no reliable acknowledgment. Two mechanisms compensate:
//
//   - Every query runs through a bounded polling loop (Exchange) that
//     repeats the one-shot TCP exchange until a reply satisfies a
//     content expectation, up to MaxAttempts with a fixed delay
//     between attempts.
//
//   - Every mutation that the device can be asked about afterwards is
//     verified by re-querying the state and comparing it with what was
//     requested (read-after-write verification).
//
// Argument validation happens before any network traffic. Transport
// and decode failures are absorbed by the polling loop; the only
// errors operations surface are validation failures, an exhausted
// retry budget (ErrTypeNoValidReply), and a device that answered but
// did not obey (ErrTypeStateMismatch).
package device
