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
	"github.com/spf13/cobra"

	"ln-swap/config"
	"ln-swap/pkg/types"
)

var ratesCmd = &cobra.Command{
	Use:   "rates <asset>",
	Short: "Show exchange rates and bounds for an asset",
	Long: `Show the current send and receive quotes for swapping between Lightning
and the given asset.

Examples:
  ln-swap rates ETH
  ln-swap rates DOGE --json`,
	Args: cobra.ExactArgs(1),
	Run:  runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	asset, err := types.FindAsset(args[0])
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

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching rates..."
		s.Start()
	}

	ctx := context.Background()
	sendQuote, sendErr := coordinator.Quote(ctx, types.DirectionSend, asset.Code)
	receiveQuote, receiveErr := coordinator.Quote(ctx, types.DirectionReceive, asset.Code)

	if !jsonOutput {
		s.Stop()
	}

	if sendErr != nil {
		printError(sendErr)
		os.Exit(1)
	}
	if receiveErr != nil {
		printError(receiveErr)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"asset": asset.Code,
			"send": map[string]string{
				"rate": sendQuote.Rate.String(),
				"min":  sendQuote.Min.String(),
				"max":  sendQuote.Max.String(),
			},
			"receive": map[string]string{
				"rate": receiveQuote.Rate.String(),
				"min":  receiveQuote.Min.String(),
				"max":  receiveQuote.Max.String(),
			},
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                  %s / BTC RATES", asset.Code)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Send (BTC -> %s):\n", color.YellowString(asset.Code))
	fmt.Printf("    Rate:  1 BTC = %s %s\n", sendQuote.Rate, asset.Code)
	fmt.Printf("    Range: %s - %s BTC\n", sendQuote.Min, sendQuote.Max)

	fmt.Printf("\n  Receive (%s -> BTC):\n", color.YellowString(asset.Code))
	fmt.Printf("    Rate:  1 %s = %s BTC\n", asset.Code, receiveQuote.Rate)
	fmt.Printf("    Range: %s - %s %s\n", receiveQuote.Min, receiveQuote.Max, asset.Code)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
