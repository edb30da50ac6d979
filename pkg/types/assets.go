package types

import (
	"fmt"
	"strings"
)

// NetworkKind determines how destination addresses for an asset are validated
type NetworkKind string

const (
	NetworkEVM    NetworkKind = "evm"
	NetworkSolana NetworkKind = "solana"
	NetworkOther  NetworkKind = "other"
)

// Asset describes an altcoin supported for swapping against Lightning
type Asset struct {
	Code    string
	Name    string
	Network string
	Kind    NetworkKind

	// URIScheme is the prefix wallets put in QR payloads, e.g. "ethereum:"
	URIScheme string
}

// Assets lists the supported altcoins in display order
var Assets = []Asset{
	{Code: "ETH", Name: "Ethereum", Network: "Ethereum", Kind: NetworkEVM, URIScheme: "ethereum"},
	{Code: "USDT", Name: "Tether", Network: "Ethereum", Kind: NetworkEVM, URIScheme: "ethereum"},
	{Code: "SOL", Name: "Solana", Network: "Solana", Kind: NetworkSolana, URIScheme: "solana"},
	{Code: "XMR", Name: "Monero", Network: "Monero", Kind: NetworkOther, URIScheme: "monero"},
	{Code: "DOGE", Name: "Dogecoin", Network: "Dogecoin", Kind: NetworkOther, URIScheme: "dogecoin"},
	{Code: "LTC", Name: "Litecoin", Network: "Litecoin", Kind: NetworkOther, URIScheme: "litecoin"},
}

// FindAsset looks up a supported asset by code (case-insensitive)
func FindAsset(code string) (Asset, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, a := range Assets {
		if a.Code == code {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("asset '%s' is not supported", code)
}
