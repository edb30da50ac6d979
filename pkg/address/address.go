// Package address normalizes and validates altcoin destination addresses.
// QR payloads usually arrive as a URI like "ethereum:0xAbc..."; the scheme
// prefix is stripped before the address is used anywhere.
package address

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"ln-swap/pkg/types"
)

// Normalize strips a single leading URI scheme prefix from a scanned or
// pasted address. A plain address is returned unchanged.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)

	scheme, rest, found := strings.Cut(raw, ":")
	if !found {
		return raw
	}

	// Only strip prefixes that look like a URI scheme, not addresses that
	// happen to contain a colon.
	for _, r := range scheme {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return raw
		}
	}

	return rest
}

// Validate performs a courtesy check of a destination address for the given
// asset. The gateway remains authoritative; this only catches obvious typos
// before an order is opened.
func Validate(addr string, asset types.Asset) error {
	if addr == "" {
		return fmt.Errorf("destination address is required")
	}

	switch asset.Kind {
	case types.NetworkEVM:
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("'%s' is not a valid %s address", addr, asset.Network)
		}
	case types.NetworkSolana:
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("'%s' is not a valid %s address: %w", addr, asset.Network, err)
		}
	}

	return nil
}
