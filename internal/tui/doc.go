// Package tui implements the interactive switching panel: a terminal
// UI that shows the matrix switch's current input and lets the
// operator change it with the keyboard.
//
// The panel is a thin veneer over the device package. Every action
// maps to exactly one device operation, run asynchronously as a
// bubbletea command so the UI stays responsive while the polling retry
// loop does its work.
package tui
