package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"ln-swap/pkg/types"
)

var (
	sendPattern    = regexp.MustCompile(`(?i)^(\d+)\s+(?:sats?\s+)?to\s+([A-Za-z0-9]+)$`)
	receivePattern = regexp.MustCompile(`(?i)^(\d+\.?\d*)\s+([A-Za-z0-9]+)$`)
)

// ParseSendCommand parses the arguments of a send command
// Examples:
//   - "69420 to ETH"
//   - "69420 sats to DOGE"
func ParseSendCommand(command string) (int64, types.Asset, error) {
	matches := sendPattern.FindStringSubmatch(command)
	if matches == nil {
		return 0, types.Asset{}, fmt.Errorf("invalid send format. Expected: 'send <sats> to <asset>' (e.g., 'send 69420 to ETH')")
	}

	sats, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, types.Asset{}, fmt.Errorf("invalid amount: %w", err)
	}
	if sats <= 0 {
		return 0, types.Asset{}, fmt.Errorf("amount must be greater than 0")
	}

	asset, err := types.FindAsset(matches[2])
	if err != nil {
		return 0, types.Asset{}, err
	}

	return sats, asset, nil
}

// ParseReceiveCommand parses the arguments of a receive command
// Examples:
//   - "0.01 ETH"
//   - "100 DOGE"
func ParseReceiveCommand(command string) (decimal.Decimal, types.Asset, error) {
	matches := receivePattern.FindStringSubmatch(command)
	if matches == nil {
		return decimal.Zero, types.Asset{}, fmt.Errorf("invalid receive format. Expected: 'receive <amount> <asset>' (e.g., 'receive 0.01 ETH')")
	}

	amount, err := decimal.NewFromString(matches[1])
	if err != nil {
		return decimal.Zero, types.Asset{}, fmt.Errorf("invalid amount: %w", err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, types.Asset{}, fmt.Errorf("amount must be greater than 0")
	}

	asset, err := types.FindAsset(matches[2])
	if err != nil {
		return decimal.Zero, types.Asset{}, err
	}

	return amount, asset, nil
}
