package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ln-swap/config"
	"ln-swap/pkg/client"
)

var (
	statusToken string
	watchStatus bool
)

var statusCmd = &cobra.Command{
	Use:   "status <order-id>",
	Short: "Check the status of a swap order",
	Long: `Check the current status of an order by its id and token. The token was
printed when the order was opened; without it the gateway refuses the lookup.

Examples:
  ln-swap status ord_123 --token sejf84kd
  ln-swap status ord_123 --token sejf84kd --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusToken, "token", "", "Order token (REQUIRED)")
	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates until the order is terminal")
	statusCmd.MarkFlagRequired("token")
}

func runStatus(cmd *cobra.Command, args []string) {
	orderID := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	apiClient := client.New(cfg.GatewayURL, cfg.RequestTimeout(), newLogger(cmd))

	if watchStatus {
		watchOrderStatus(apiClient, cfg, orderID, jsonOutput)
	} else {
		checkOrderStatus(apiClient, orderID, jsonOutput)
	}
}

func checkOrderStatus(apiClient *client.Client, orderID string, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking order status..."
		s.Start()
	}

	status, err := apiClient.GetOrderStatus(context.Background(), orderID, statusToken)

	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"order_id": orderID,
			"status":   string(status),
			"terminal": status.Terminal(),
			"progress": status.Progress(),
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println()
	renderProgress(status)
	fmt.Println()
}

func watchOrderStatus(apiClient *client.Client, cfg *config.Config, orderID string, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching order %s. Press Ctrl+C to stop.\n\n", color.CyanString(orderID))

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	// Check immediately first, then on the interval. Transient status
	// failures are tolerated; the next tick retries.
	for ; ; <-ticker.C {
		status, err := apiClient.GetOrderStatus(context.Background(), orderID, statusToken)
		if err != nil {
			if errors.Is(err, client.ErrStatusUnavailable) {
				continue
			}
			printError(err)
			os.Exit(1)
		}

		renderProgress(status)
		if status.Terminal() {
			fmt.Println()
			return
		}
	}
}
