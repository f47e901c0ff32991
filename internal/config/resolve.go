package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables consumed when no flags are given.
const (
	HostEnvVar = "MATRIX_HOST"
	PortEnvVar = "MATRIX_PORT"
)

// Factory defaults of the device family.
const (
	DefaultHost = "192.168.1.10"
	DefaultPort = 5000
)

// Target is the resolved device address for one invocation.
type Target struct {
	Host string
	Port int

	// Name is the registry entry the target came from, if any.
	Name string
}

// ResolveTarget determines which device to talk to. Precedence, most
// specific first: explicit flags, environment variables, the saved
// default device, factory defaults. A flag value of "" (host) or 0
// (port) means "not given".
func ResolveTarget(hostFlag string, portFlag int) (Target, error) {
	target := Target{Host: hostFlag, Port: portFlag}

	if target.Host == "" {
		target.Host = os.Getenv(HostEnvVar)
	}
	if target.Port == 0 {
		if v := os.Getenv(PortEnvVar); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 65535 {
				return Target{}, fmt.Errorf("invalid %s value %q", PortEnvVar, v)
			}
			target.Port = n
		}
	}

	if target.Host == "" {
		registry, err := LoadRegistry()
		if err != nil {
			return Target{}, err
		}
		if device := registry.DefaultDevice(); device != nil {
			target.Host = device.Host
			target.Name = registry.Preferences.DefaultDevice
			if target.Port == 0 {
				target.Port = device.Port
			}
		}
	}

	if target.Host == "" {
		target.Host = DefaultHost
	}
	if target.Port == 0 {
		target.Port = DefaultPort
	}
	return target, nil
}
