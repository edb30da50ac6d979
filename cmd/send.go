package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ln-swap/config"
	"ln-swap/pkg/parser"
	"ln-swap/pkg/swap"
	"ln-swap/pkg/types"
	"ln-swap/pkg/wallet"
)

var sendAddress string

var sendCmd = &cobra.Command{
	Use:   "send <sats> to <asset>",
	Short: "Swap Lightning sats into an altcoin",
	Long: `Send sats from your Lightning wallet and receive the chosen altcoin at the
given destination address. The order is opened first; your wallet then pays
the gateway's invoice. The address may carry a URI scheme prefix as produced
by QR scanners (e.g. "ethereum:0xAbc...").

Examples:
  ln-swap send 69420 to ETH --address 0xAb5801a7D398351b8bE11C439e05C5b3259aec9B
  ln-swap send 100000 sats to DOGE --address DBXu2kgc3xtvCUWFcxFE3r9hEYgmuaaCyD`,
	Args: cobra.MinimumNArgs(2),
	Run:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendAddress, "address", "", "Destination address (REQUIRED - where you'll receive the altcoin)")
	sendCmd.MarkFlagRequired("address")
}

func runSend(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	sats, asset, err := parser.ParseSendCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	log := newLogger(cmd)
	coordinator := newCoordinator(cfg, log)
	defer coordinator.Close()

	if !coordinator.WalletAvailable() {
		printError(fmt.Errorf("no Lightning wallet bridge configured. Set LN_SWAP_WALLET_BRIDGE_URL to enable swaps"))
		os.Exit(1)
	}

	updates := make(chan types.OrderStatus, 8)
	coordinator.OnStatus(func(status types.OrderStatus) {
		updates <- status
	})
	coordinator.OnError(func(err error) {
		color.Red("\n%v", err)
	})

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = fmt.Sprintf(" Opening order for %d sats -> %s...", sats, asset.Code)
		s.Start()
	}

	result, err := coordinator.Send(context.Background(), swap.SendParams{
		Asset:      asset.Code,
		AmountSats: sats,
		Address:    sendAddress,
	})

	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(sendOrderOutput(result, asset, sats), "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     ORDER OPENED")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Order ID:  %s\n", color.CyanString(result.Order.ID))
	fmt.Printf("  Token:     %s\n", color.CyanString(result.Order.Token))
	fmt.Printf("  Sending:   %d sats\n", sats)
	fmt.Printf("  Receiving: %s\n", color.YellowString(asset.Code))
	fmt.Printf("\n  Check later with: ln-swap status %s --token %s\n", result.Order.ID, result.Order.Token)
	fmt.Println("\n" + strings.Repeat("=", 60))

	// The payment outcome is reported on its own; the order's status
	// polling below is what actually tracks the funds.
	switch {
	case result.PayErr == nil:
		printSuccess(color.GreenString("Payment sent"))
	case errors.Is(result.PayErr, wallet.ErrPaymentFailed):
		color.Red("\nFailed: the payment failed to go through\n")
	default:
		color.Red("\nPayment error: %v\n", result.PayErr)
	}

	final := displayOrderProgress(result.Order.Status, updates)
	if final == types.StatusDone {
		printSuccess(color.GreenString("Swap completed!"))
	} else {
		color.Red("\nThe swap needs manual recovery. Contact support with order id %s.\n\n", result.Order.ID)
	}
}

// sendOrderOutput is the machine-readable summary of an opened send order,
// including the token the status command needs later.
func sendOrderOutput(result *swap.SendResult, asset types.Asset, sats int64) map[string]interface{} {
	return map[string]interface{}{
		"order_id": result.Order.ID,
		"token":    result.Order.Token,
		"asset":    asset.Code,
		"sats":     sats,
		"paid":     result.PayErr == nil,
	}
}
