package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSendCommand(t *testing.T) {
	sats, asset, err := ParseSendCommand("69420 to ETH")
	require.NoError(t, err)
	assert.Equal(t, int64(69420), sats)
	assert.Equal(t, "ETH", asset.Code)

	sats, asset, err = ParseSendCommand("100000 sats to doge")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), sats)
	assert.Equal(t, "DOGE", asset.Code)

	for _, invalid := range []string{
		"",
		"to ETH",
		"69420 ETH",
		"0.5 to ETH",
		"69420 to NOPE",
	} {
		_, _, err := ParseSendCommand(invalid)
		assert.Error(t, err, "input %q", invalid)
	}
}

func TestParseReceiveCommand(t *testing.T) {
	amount, asset, err := ParseReceiveCommand("0.01 ETH")
	require.NoError(t, err)
	assert.Equal(t, "0.01", amount.String())
	assert.Equal(t, "ETH", asset.Code)

	amount, asset, err = ParseReceiveCommand("100 doge")
	require.NoError(t, err)
	assert.Equal(t, "100", amount.String())
	assert.Equal(t, "DOGE", asset.Code)

	for _, invalid := range []string{
		"",
		"ETH",
		"0 ETH",
		"0.01 NOPE",
		"0.01 ETH extra",
	} {
		_, _, err := ParseReceiveCommand(invalid)
		assert.Error(t, err, "input %q", invalid)
	}
}
