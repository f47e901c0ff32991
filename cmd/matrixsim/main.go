// Matrixsim emulates an HDMI matrix switch on a TCP socket.
//
// It answers the switch's native binary and ASCII protocols, including
// the firmware quirks (noise bytes before status frames, NUL-padded
// and zero-padded replies), so matrixctl can be developed and tested
// without hardware on the bench.
//
// Usage:
//
//	matrixsim [flags]
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avtools/matrixctl/internal/logging"
	"github.com/avtools/matrixctl/internal/sim"
	"github.com/avtools/matrixctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	listenHost string
	listenPort int
)

var rootCmd = &cobra.Command{
	Use:   "matrixsim",
	Short: "HDMI Matrix Switch Simulator",
	Long: `A fake matrix switch for developing and testing matrixctl.

Listens on a TCP socket and answers the switch's native protocols,
reproducing the real firmware's reply quirks.`,
	Version: version.Version,
	RunE:    runSim,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&listenHost, "host", "127.0.0.1", "Address to listen on")
	rootCmd.Flags().IntVar(&listenPort, "port", 5000, "TCP port to listen on")
}

func runSim(cmd *cobra.Command, args []string) error {
	// The simulator is chatty by design; default to info level unless
	// the environment says otherwise.
	if os.Getenv(logging.LogLevelEnvVar) == "" {
		logging.Initialize("info")
	} else {
		logging.InitializeFromEnv()
	}
	defer logging.Sync()

	addr := fmt.Sprintf("%s:%d", listenHost, listenPort)
	simulator, err := sim.Listen(addr)
	if err != nil {
		return err
	}
	defer simulator.Close()

	fmt.Printf("Simulated matrix switch on %s\n", simulator.Addr())
	fmt.Printf("Try: matrixctl status --host %s --port %d\n", listenHost, listenPort)
	fmt.Println("Press Ctrl+C to stop.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("\nShutting down.")
	return nil
}
