package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ln-swap/pkg/types"
)

var assetsCmd = &cobra.Command{
	Use:     "list-assets",
	Aliases: []string{"assets", "ls"},
	Short:   "List supported altcoins",
	Run:     runListAssets,
}

func init() {
	rootCmd.AddCommand(assetsCmd)
}

func runListAssets(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if jsonOutput {
		output := make([]map[string]string, 0, len(types.Assets))
		for _, a := range types.Assets {
			output = append(output, map[string]string{
				"code":    a.Code,
				"name":    a.Name,
				"network": a.Network,
			})
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	color.Green("              SUPPORTED ASSETS")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	for _, a := range types.Assets {
		fmt.Printf("  %-6s %-12s %s\n",
			color.YellowString(a.Code), a.Name, color.HiBlackString(a.Network))
	}

	fmt.Println("\n" + strings.Repeat("=", 50) + "\n")
}
