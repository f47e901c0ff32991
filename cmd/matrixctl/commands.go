package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avtools/matrixctl/internal/config"
	"github.com/avtools/matrixctl/internal/device"
	"github.com/avtools/matrixctl/internal/protocol"
	"github.com/avtools/matrixctl/internal/tui"
)

// Device command flags
var (
	hostFlag     string
	portFlag     int
	outputFormat string
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Device IP address (default: saved device or 192.168.1.10)")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Device TCP port (default: saved device or 5000)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	// Add subcommands directly to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(buzzerCmd)
	rootCmd.AddCommand(ledTimeoutCmd)
	rootCmd.AddCommand(autoDetectCmd)
	rootCmd.AddCommand(netShowCmd)
	rootCmd.AddCommand(netGetCmd)
	rootCmd.AddCommand(netSetCmd)
	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(devicesCmd)
}

// newClient resolves the target address and builds a device client.
func newClient() (*device.Client, config.Target, error) {
	target, err := config.ResolveTarget(hostFlag, portFlag)
	if err != nil {
		return nil, config.Target{}, err
	}
	return device.NewClient(target.Host, target.Port), target, nil
}

// inputLabels returns the saved labels for the target device, if it
// came from the registry.
func inputLabels(target config.Target) map[int]string {
	if target.Name == "" {
		return nil
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil
	}
	if d := registry.GetDevice(target.Name); d != nil {
		return d.Inputs
	}
	return nil
}

// touchDevice records a successful exchange with a registry device.
func touchDevice(target config.Target) {
	if target.Name == "" {
		return
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	registry.TouchDevice(target.Name)
	_ = registry.Save()
}

func parseOnOff(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (use on or off)", arg)
}

// statusCmd reads the active input
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the currently active input",
	Long: `Query the switch for its active input.

The switch broadcasts its state as a binary status frame; this command
sends a status query and decodes the reply.`,
	Example: `  # Query the default device
  matrixctl status

  # Query a specific switch
  matrixctl status --host 192.168.1.20

  # JSON output for scripting
  matrixctl status --format json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, target, err := newClient()
	if err != nil {
		return err
	}

	input, err := client.CurrentInput()
	if err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}
	touchDevice(target)

	if outputFormat == "json" {
		data, err := json.Marshal(map[string]any{
			"host":  target.Host,
			"port":  target.Port,
			"input": input,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	label := fmt.Sprintf("input %d", input)
	if labels := inputLabels(target); labels[input] != "" {
		label = fmt.Sprintf("input %d (%s)", input, labels[input])
	}
	fmt.Printf("%s:%d is on %s\n", target.Host, target.Port, label)
	return nil
}

// switchCmd changes the active input
var switchCmd = &cobra.Command{
	Use:   "switch <input>",
	Short: "Switch to a different input",
	Long: `Switch the matrix to the given input (1-9).

The command sends the switch frame and then reads the active input
back until the device reports the requested one, so a successful exit
means the switch really happened.`,
	Example: `  # Switch to input 3
  matrixctl switch 3

  # Switch a specific device
  matrixctl switch 3 --host 192.168.1.20`,
	Args: cobra.ExactArgs(1),
	RunE: runSwitch,
}

func runSwitch(cmd *cobra.Command, args []string) error {
	input, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid input %q: expected a number", args[0])
	}

	client, target, err := newClient()
	if err != nil {
		return err
	}

	fmt.Printf("Switching %s:%d to input %d...\n", target.Host, target.Port, input)
	if err := client.SwitchInput(input); err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}
	touchDevice(target)

	fmt.Printf("✓ Input %d active (verified)\n", input)
	return nil
}

// buzzerCmd toggles the confirmation beep
var buzzerCmd = &cobra.Command{
	Use:   "buzzer <on|off>",
	Short: "Enable or disable the confirmation buzzer",
	Example: `  # Silence the switch
  matrixctl buzzer off`,
	Args: cobra.ExactArgs(1),
	RunE: runBuzzer,
}

func runBuzzer(cmd *cobra.Command, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	if err := client.SetBuzzer(on); err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}

	fmt.Printf("✓ Buzzer %s\n", args[0])
	return nil
}

// ledTimeoutCmd controls the front-panel LED timeout
var ledTimeoutCmd = &cobra.Command{
	Use:   "led-timeout <seconds>",
	Short: "Set the front-panel LED timeout",
	Long: `Set how long the front-panel LEDs stay lit after activity.

Supported values: 0 (always on), 10, 30 seconds.`,
	Example: `  # LEDs off after 30 seconds
  matrixctl led-timeout 30

  # LEDs always on
  matrixctl led-timeout 0`,
	Args: cobra.ExactArgs(1),
	RunE: runLEDTimeout,
}

func runLEDTimeout(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid timeout %q: expected a number of seconds", args[0])
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	if err := client.SetLEDTimeout(seconds); err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}

	fmt.Printf("✓ LED timeout set to %ds\n", seconds)
	return nil
}

// autoDetectCmd toggles automatic input detection
var autoDetectCmd = &cobra.Command{
	Use:   "auto-detect <on|off>",
	Short: "Enable or disable automatic input detection",
	Long: `Control whether the switch hops to a newly active input on its own.

With detection on, the switch follows whichever input starts carrying
a signal. With it off, the active input only changes on command.`,
	Args: cobra.ExactArgs(1),
	RunE: runAutoDetect,
}

func runAutoDetect(cmd *cobra.Command, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	if err := client.SetInputDetection(on); err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}

	fmt.Printf("✓ Input auto-detection %s\n", args[0])
	return nil
}

// netShowCmd dumps the device's network configuration
var netShowCmd = &cobra.Command{
	Use:   "net-show",
	Short: "Show the device's network configuration",
	Long: `Read the switch's IP address, TCP port, netmask, and gateway.

Each field is queried separately; values are shown after stripping the
zero-padding the device pads its replies with.`,
	Example: `  # Show network config
  matrixctl net-show

  # JSON output
  matrixctl net-show --format json`,
	Args: cobra.NoArgs,
	RunE: runNetShow,
}

func runNetShow(cmd *cobra.Command, args []string) error {
	client, target, err := newClient()
	if err != nil {
		return err
	}

	fmt.Printf("Reading network configuration from %s:%d...\n\n", target.Host, target.Port)

	cfg, err := client.ReadNetworkConfig()
	if err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("  IP address: %s\n", cfg.IP)
	fmt.Printf("  TCP port:   %s\n", cfg.Port)
	fmt.Printf("  Netmask:    %s\n", cfg.Netmask)
	fmt.Printf("  Gateway:    %s\n", cfg.Gateway)
	return nil
}

// netGetCmd reads a single network field
var netGetCmd = &cobra.Command{
	Use:   "net-get <field>",
	Short: "Read one network configuration field",
	Long: `Read a single network field from the device.

Fields: IP (address), PT (TCP port), MA (netmask), GW (gateway).`,
	Example: `  matrixctl net-get IP
  matrixctl net-get GW`,
	Args: cobra.ExactArgs(1),
	RunE: runNetGet,
}

func runNetGet(cmd *cobra.Command, args []string) error {
	key := strings.ToUpper(args[0])

	client, _, err := newClient()
	if err != nil {
		return err
	}

	value, err := client.NetworkField(key)
	if err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}

	fmt.Println(value)
	return nil
}

// netSetCmd writes a single network field
var netSetCmd = &cobra.Command{
	Use:   "net-set <field> <value>",
	Short: "Write one network configuration field",
	Long: `Write a single network field and verify it stuck.

Fields: IP (address), PT (TCP port), MA (netmask), GW (gateway).
The device acknowledges the write and the new value is read back
before the command reports success.

Changing IP or PT takes effect after the device's network stack
restarts; subsequent commands must use the new address.`,
	Example: `  # Move the switch to a new address
  matrixctl net-set IP 192.168.1.50

  # Change the control port
  matrixctl net-set PT 5001`,
	Args: cobra.ExactArgs(2),
	RunE: runNetSet,
}

func runNetSet(cmd *cobra.Command, args []string) error {
	key := strings.ToUpper(args[0])
	value := args[1]

	client, target, err := newClient()
	if err != nil {
		return err
	}

	fmt.Printf("Setting %s to %q on %s:%d...\n", key, value, target.Host, target.Port)
	if err := client.SetNetworkField(key, value); err != nil {
		return fmt.Errorf("%s: %w", device.GetShortErrorMessage(err), err)
	}

	fmt.Printf("✓ %s updated and verified\n", key)
	if key == protocol.KeyIP || key == protocol.KeyPort {
		fmt.Println("\nThe change applies after the device's network restart.")
		fmt.Println("Use the new address for further commands.")
	}
	return nil
}

// panelCmd launches the interactive switching panel
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Launch the interactive switching panel",
	Long: `Launch a terminal UI for switching inputs.

The panel shows the active input, lets you move between inputs with
the arrow keys or jump with the digit keys, and displays the labels
saved with 'matrixctl devices'.`,
	Example: `  # Launch the panel (also the default with no command)
  matrixctl panel
  matrixctl

  # Panel for a specific device
  matrixctl panel --host 192.168.1.20`,
	Args: cobra.NoArgs,
	RunE: runPanel,
}

func runPanel(cmd *cobra.Command, args []string) error {
	client, target, err := newClient()
	if err != nil {
		return err
	}
	if err := tui.Run(client, inputLabels(target)); err != nil {
		return fmt.Errorf("panel error: %w", err)
	}
	return nil
}

// devicesCmd manages the saved device registry
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage saved matrix switches",
	Long: `Manage the local registry of known switches.

Saved devices give commands a target without --host flags, and carry
input labels shown by 'status' and the panel. The registry lives in
the user config directory.`,
}

func init() {
	devicesCmd.AddCommand(devicesListCmd)
	devicesCmd.AddCommand(devicesAddCmd)
	devicesCmd.AddCommand(devicesRemoveCmd)
	devicesCmd.AddCommand(devicesDefaultCmd)
	devicesCmd.AddCommand(devicesLabelCmd)
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(registry.Devices) == 0 {
			fmt.Println("No saved devices. Add one with 'matrixctl devices add <name> <host> [port]'.")
			return nil
		}

		names := make([]string, 0, len(registry.Devices))
		for name := range registry.Devices {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			d := registry.Devices[name]
			marker := " "
			if registry.Preferences.DefaultDevice == name {
				marker = "*"
			}
			fmt.Printf("%s %-16s %s:%d\n", marker, name, d.Host, d.Port)
			if len(d.Inputs) > 0 {
				inputs := make([]int, 0, len(d.Inputs))
				for id := range d.Inputs {
					inputs = append(inputs, id)
				}
				sort.Ints(inputs)
				for _, id := range inputs {
					fmt.Printf("    input %d: %s\n", id, d.Inputs[id])
				}
			}
		}
		return nil
	},
}

var devicesAddCmd = &cobra.Command{
	Use:   "add <name> <host> [port]",
	Short: "Save a device",
	Example: `  matrixctl devices add rack 192.168.1.20
  matrixctl devices add studio 10.0.0.5 5001`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := config.DefaultPort
		if len(args) == 3 {
			var err error
			port, err = strconv.Atoi(args[2])
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("invalid port %q", args[2])
			}
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		registry.AddDevice(args[0], args[1], port)
		if len(registry.Devices) == 1 {
			registry.SetDefaultDevice(args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s (%s:%d)\n", args[0], args[1], port)
		return nil
	},
}

var devicesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if !registry.RemoveDevice(args[0]) {
			return fmt.Errorf("no saved device named %q", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Removed %s\n", args[0])
		return nil
	},
}

var devicesDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if !registry.SetDefaultDevice(args[0]) {
			return fmt.Errorf("no saved device named %q", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ %s is now the default device\n", args[0])
		return nil
	},
}

var devicesLabelCmd = &cobra.Command{
	Use:   "label <name> <input> <label>",
	Short: "Label an input on a saved device",
	Example: `  matrixctl devices label rack 1 "Camera 1"
  matrixctl devices label rack 3 Blu-ray`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := strconv.Atoi(args[1])
		if err != nil || input < 1 || input > protocol.MaxInput {
			return fmt.Errorf("invalid input %q (1-%d)", args[1], protocol.MaxInput)
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if !registry.SetInputLabel(args[0], input, args[2]) {
			return fmt.Errorf("no saved device named %q", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Input %d on %s labeled %q\n", input, args[0], args[2])
		return nil
	},
}
