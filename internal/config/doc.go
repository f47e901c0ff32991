// Package config stores user configuration for matrixctl: a registry
// of saved matrix switches (name, address, input labels) plus
// application preferences, persisted as YAML in the platform's
// configuration directory.
//
// The registry is purely client-side metadata. The device itself knows
// nothing about nicknames or input labels; it only has its network
// configuration, which lives on the device and is managed through the
// device package.
package config
