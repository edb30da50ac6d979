package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ln-swap/config"
	"ln-swap/pkg/client"
	"ln-swap/pkg/swap"
	"ln-swap/pkg/wallet"
)

var rootCmd = &cobra.Command{
	Use:   "ln-swap",
	Short: "A CLI for swapping between Lightning and altcoins",
	Long: `ln-swap is a command-line tool for swapping between a Lightning-network
balance and an altcoin through an exchange gateway. Invoices are created and
paid through a local WebLN wallet bridge.

Examples:
  ln-swap send 69420 to ETH --address 0xAb5801a7D398351b8bE11C439e05C5b3259aec9B
  ln-swap receive 0.01 ETH
  ln-swap rates DOGE
  ln-swap status <order-id> --token <token> --watch
  ln-swap list-assets`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}

// newLogger builds the diagnostic logger. Without --verbose the library
// packages stay silent; user-facing output goes through fmt/color.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// newCoordinator wires the coordinator from configuration
func newCoordinator(cfg *config.Config, log *zap.Logger) *swap.Coordinator {
	gateway := client.New(cfg.GatewayURL, cfg.RequestTimeout(), log)

	// NewHTTPCapability returns nil for an empty bridge URL; keep the
	// interface nil in that case so the adapter reports unavailable.
	var capability wallet.Capability
	if bridge := wallet.NewHTTPCapability(cfg.WalletBridgeURL, cfg.RequestTimeout()); bridge != nil {
		capability = bridge
	}

	coordinator := swap.NewCoordinator(gateway, wallet.NewAdapter(capability))
	coordinator.SetLogger(log)
	coordinator.SetPollInterval(cfg.PollInterval())
	return coordinator
}
