package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	testCases := []struct {
		input    string
		expected OrderStatus
	}{
		{"NEW", StatusNew},
		{"pending", StatusPending},
		{" Exchange ", StatusExchange},
		{"WITHDRAW", StatusWithdraw},
		{"DONE", StatusDone},
		{"EMERGENCY", StatusEmergency},
	}

	for _, tc := range testCases {
		status, err := ParseOrderStatus(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, status)
	}

	_, err := ParseOrderStatus("EXPLODED")
	assert.Error(t, err)

	_, err = ParseOrderStatus("")
	assert.Error(t, err)
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, StatusNew.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusExchange.Terminal())
	assert.False(t, StatusWithdraw.Terminal())
	assert.True(t, StatusDone.Terminal())
	assert.True(t, StatusEmergency.Terminal())
}

func TestOrderStatusProgress(t *testing.T) {
	testCases := []struct {
		status   OrderStatus
		expected float64
	}{
		{StatusNew, 0},
		{StatusPending, 0.25},
		{StatusExchange, 0.5},
		{StatusWithdraw, 0.75},
		{StatusDone, 1},
		// Emergency is terminal, not further along, but renders complete.
		{StatusEmergency, 1},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.expected, tc.status.Progress(), 1e-9, "status %s", tc.status)
	}
}

func TestFindAsset(t *testing.T) {
	asset, err := FindAsset("eth")
	require.NoError(t, err)
	assert.Equal(t, "ETH", asset.Code)
	assert.Equal(t, NetworkEVM, asset.Kind)

	asset, err = FindAsset(" DOGE ")
	require.NoError(t, err)
	assert.Equal(t, "Dogecoin", asset.Name)

	_, err = FindAsset("NOPE")
	assert.Error(t, err)
}
