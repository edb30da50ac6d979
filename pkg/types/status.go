package types

import (
	"fmt"
	"strings"
)

// OrderStatus is a lifecycle stage of an order. The ordering of the
// non-terminal stages is a UI contract used to compute progress; wire values
// are the uppercase stage names.
type OrderStatus string

const (
	StatusNew      OrderStatus = "NEW"      // order registered, awaiting deposit
	StatusPending  OrderStatus = "PENDING"  // deposit seen, awaiting confirmation
	StatusExchange OrderStatus = "EXCHANGE" // funds confirmed, exchange in progress
	StatusWithdraw OrderStatus = "WITHDRAW" // outgoing payment being sent

	StatusDone      OrderStatus = "DONE"      // terminal: swap completed
	StatusEmergency OrderStatus = "EMERGENCY" // terminal: manual recovery required
)

// nonTerminalStages lists the non-terminal stages in lifecycle order.
var nonTerminalStages = []OrderStatus{
	StatusNew,
	StatusPending,
	StatusExchange,
	StatusWithdraw,
}

// ParseOrderStatus converts a wire value into an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusNew, StatusPending, StatusExchange, StatusWithdraw, StatusDone, StatusEmergency:
		return status, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Terminal returns true if no further status transitions can occur
func (s OrderStatus) Terminal() bool {
	return s == StatusDone || s == StatusEmergency
}

// Progress returns the completion fraction in [0, 1] for progress display.
// Emergency is terminal, not further along, but still renders as complete.
func (s OrderStatus) Progress() float64 {
	if s.Terminal() {
		return 1
	}
	for i, stage := range nonTerminalStages {
		if s == stage {
			return float64(i) / float64(len(nonTerminalStages))
		}
	}
	return 0
}

// Description returns user-facing text for the stage
func (s OrderStatus) Description() string {
	switch s {
	case StatusNew:
		return "Waiting for your deposit"
	case StatusPending:
		return "Deposit received, waiting for confirmations"
	case StatusExchange:
		return "Exchanging funds"
	case StatusWithdraw:
		return "Sending funds to you"
	case StatusDone:
		return "Swap completed"
	case StatusEmergency:
		return "Something went wrong - contact support to recover funds"
	default:
		return string(s)
	}
}
