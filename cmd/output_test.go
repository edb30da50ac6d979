package cmd

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ln-swap/pkg/swap"
	"ln-swap/pkg/types"
)

func TestReceiveOrderOutput(t *testing.T) {
	eth, err := types.FindAsset("ETH")
	require.NoError(t, err)

	order := &types.Order{
		ID:               "ord_1",
		Token:            "tok_1",
		Direction:        types.DirectionReceive,
		Status:           types.StatusNew,
		Amount:           decimal.RequireFromString("0.0000002"),
		RecipientAddress: "0xDeposit",
	}

	out := receiveOrderOutput(order, eth, decimal.RequireFromString("0.0001"))

	assert.Equal(t, "ord_1", out["order_id"])
	// The token must be in the output: without it the order can never be
	// looked up again with the status command.
	assert.Equal(t, "tok_1", out["token"])
	assert.Equal(t, "ETH", out["asset"])
	assert.Equal(t, "0.0000002", out["amount"])
	assert.Equal(t, "0xDeposit", out["recipient_address"])
	assert.Equal(t, "0.0001", out["fee"])
}

func TestSendOrderOutput(t *testing.T) {
	eth, err := types.FindAsset("ETH")
	require.NoError(t, err)

	result := &swap.SendResult{
		Order: &types.Order{
			ID:        "ord_2",
			Token:     "tok_2",
			Direction: types.DirectionSend,
			Status:    types.StatusNew,
			Invoice:   "lnbc69420u1...",
		},
	}

	out := sendOrderOutput(result, eth, 6942000)

	assert.Equal(t, "ord_2", out["order_id"])
	assert.Equal(t, "tok_2", out["token"])
	assert.Equal(t, "ETH", out["asset"])
	assert.Equal(t, int64(6942000), out["sats"])
	assert.Equal(t, true, out["paid"])

	result.PayErr = errors.New("insufficient balance")
	out = sendOrderOutput(result, eth, 6942000)
	assert.Equal(t, false, out["paid"])
}
