// Matrixctl is a control utility for rack-mount HDMI matrix switches.
//
// It speaks the switch's native binary protocol over a raw TCP socket:
// input switching, buzzer and LED control, input auto-detection, and
// network configuration. No vendor software required.
//
// Usage:
//
//	matrixctl [command] [flags]
//
// Running without arguments in a terminal launches the interactive
// switching panel. See 'matrixctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avtools/matrixctl/internal/logging"
	"github.com/avtools/matrixctl/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "matrixctl",
	Short: "HDMI Matrix Switch Control Utility",
	Long: `A standalone utility for controlling HDMI matrix switches over TCP.

Switch inputs, toggle the buzzer and front-panel LEDs, and read or
change the device's network configuration, all over the switch's
native binary protocol.

If no command is specified and stdout is a terminal, the interactive
switching panel launches automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: interactive panel in a terminal, plain
		// status otherwise (so scripts piping matrixctl still work).
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runPanel(cmd, args)
		}
		return runStatus(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("matrixctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
