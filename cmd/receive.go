package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"ln-swap/config"
	"ln-swap/pkg/convert"
	"ln-swap/pkg/parser"
	"ln-swap/pkg/swap"
	"ln-swap/pkg/types"
)

var receiveCmd = &cobra.Command{
	Use:   "receive <amount> <asset>",
	Short: "Swap an altcoin into Lightning sats",
	Long: `Receive sats on your Lightning wallet in exchange for an altcoin deposit.
Your wallet creates an invoice for the converted amount, the gateway opens an
order paying out to it, and you must then send EXACTLY the displayed altcoin
amount to the displayed recipient address.

Examples:
  ln-swap receive 0.01 ETH
  ln-swap receive 100 DOGE`,
	Args: cobra.ExactArgs(2),
	Run:  runReceive,
}

func init() {
	rootCmd.AddCommand(receiveCmd)
}

func runReceive(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	amount, asset, err := parser.ParseReceiveCommand(strings.Join(args, " "))
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
		s.Suffix = fmt.Sprintf(" Opening order for %s %s...", amount, asset.Code)
		s.Start()
	}

	ctx := context.Background()

	// The quote fetched here is cached for the Receive call below; the
	// conversion gives the fee in the unit the user entered.
	quote, err := coordinator.Quote(ctx, types.DirectionReceive, asset.Code)
	if err != nil {
		if !jsonOutput {
			s.Stop()
		}
		printError(err)
		os.Exit(1)
	}

	conv, err := convert.ForReceive(amount, quote)
	if err != nil {
		if !jsonOutput {
			s.Stop()
		}
		printError(err)
		os.Exit(1)
	}

	order, err := coordinator.Receive(ctx, swap.ReceiveParams{
		Asset:  asset.Code,
		Amount: amount,
	})

	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(receiveOrderOutput(order, asset, conv.Fee), "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     ORDER OPENED")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Order ID:          %s\n", color.CyanString(order.ID))
	fmt.Printf("  Token:             %s\n", color.CyanString(order.Token))
	fmt.Printf("  Recipient Address: %s\n", color.CyanString(order.RecipientAddress))
	fmt.Printf("  Amount:            %s %s\n", color.YellowString(order.Amount.String()), asset.Code)
	fmt.Printf("  Swap Fee:          %s %s\n", conv.Fee, asset.Code)

	color.Yellow("\n  You must send EXACTLY %s %s to the recipient address", order.Amount, asset.Code)
	color.Yellow("  or ALL funds will be lost.")
	fmt.Printf("\n  Check later with: ln-swap status %s --token %s\n", order.ID, order.Token)
	fmt.Println("\n" + strings.Repeat("=", 60))

	final := displayOrderProgress(order.Status, updates)
	if final == types.StatusDone {
		printSuccess(color.GreenString("Swap completed!"))
	} else {
		color.Red("\nThe swap needs manual recovery. Contact support with order id %s.\n\n", order.ID)
	}
}

// receiveOrderOutput is the machine-readable summary of an opened receive
// order. The token is included so the status command can be used later; it
// goes to the order's owner only, never into a shareable link.
func receiveOrderOutput(order *types.Order, asset types.Asset, fee decimal.Decimal) map[string]interface{} {
	return map[string]interface{}{
		"order_id":          order.ID,
		"token":             order.Token,
		"asset":             asset.Code,
		"amount":            order.Amount.String(),
		"recipient_address": order.RecipientAddress,
		"fee":               fee.String(),
	}
}
