// Package logging provides structured logging for matrixctl.
//
// Logging is silent by default so that CLI output stays clean: unless
// the MATRIXCTL_LOG_LEVEL environment variable (or an explicit level)
// is set, every call goes to a nop logger. When enabled, output is
// zap's console encoding on stdout.
//
// The raw-byte helpers exist because most debugging of this device
// happens at the wire level: LogRawBytes emits both a hex and an ASCII
// rendering of a payload or reply at debug level.
package logging
