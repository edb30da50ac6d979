package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"ln-swap/pkg/types"
)

const progressBarWidth = 30

// renderProgress prints a one-line textual progress bar for an order status
func renderProgress(status types.OrderStatus) {
	filled := int(status.Progress() * progressBarWidth)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled)

	label := string(status)
	switch status {
	case types.StatusDone:
		label = color.GreenString(label)
	case types.StatusEmergency:
		label = color.RedString(label)
	default:
		label = color.YellowString(label)
	}

	fmt.Printf("  [%s] %3.0f%%  %s - %s\n", bar, status.Progress()*100, label, status.Description())
}

// displayOrderProgress consumes status updates until the order is terminal
func displayOrderProgress(initial types.OrderStatus, updates <-chan types.OrderStatus) types.OrderStatus {
	fmt.Println("\nOrder progress:")
	renderProgress(initial)

	last := initial
	for !last.Terminal() {
		last = <-updates
		renderProgress(last)
	}
	return last
}
