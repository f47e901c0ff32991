package config

import (
	"time"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // keyed by user-chosen name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents a saved matrix switch.
type Device struct {
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LastSeen time.Time      `yaml:"last_seen,omitempty"` // last successful exchange
	Inputs   map[int]string `yaml:"inputs,omitempty"`    // user-defined input labels, keyed 1-16
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	// DefaultDevice names the registry entry used when no --host flag
	// or MATRIX_HOST variable is given.
	DefaultDevice string `yaml:"default_device,omitempty"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Devices:     make(map[string]*Device),
		Preferences: &Preferences{},
	}
}

// GetDevice retrieves a saved device by name. Returns nil if the name
// is not in the registry.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// AddDevice adds or replaces a saved device.
func (r *Registry) AddDevice(name, host string, port int) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	device := &Device{
		Host:   host,
		Port:   port,
		Inputs: make(map[int]string),
	}
	r.Devices[name] = device
	return device
}

// RemoveDevice deletes a saved device. Removing the default device
// also clears the default preference.
func (r *Registry) RemoveDevice(name string) bool {
	if _, exists := r.Devices[name]; !exists {
		return false
	}
	delete(r.Devices, name)
	if r.Preferences != nil && r.Preferences.DefaultDevice == name {
		r.Preferences.DefaultDevice = ""
	}
	return true
}

// SetDefaultDevice marks a saved device as the default target.
func (r *Registry) SetDefaultDevice(name string) bool {
	if _, exists := r.Devices[name]; !exists {
		return false
	}
	if r.Preferences == nil {
		r.Preferences = &Preferences{}
	}
	r.Preferences.DefaultDevice = name
	return true
}

// DefaultDevice returns the default saved device, or nil if none is
// configured.
func (r *Registry) DefaultDevice() *Device {
	if r.Preferences == nil || r.Preferences.DefaultDevice == "" {
		return nil
	}
	return r.Devices[r.Preferences.DefaultDevice]
}

// SetInputLabel sets a user-defined label for an input of a saved
// device.
func (r *Registry) SetInputLabel(name string, input int, label string) bool {
	device := r.GetDevice(name)
	if device == nil {
		return false
	}
	if device.Inputs == nil {
		device.Inputs = make(map[int]string)
	}
	device.Inputs[input] = label
	return true
}

// TouchDevice records a successful exchange with a saved device.
func (r *Registry) TouchDevice(name string) {
	if device := r.GetDevice(name); device != nil {
		device.LastSeen = time.Now()
	}
}
