// Package convert implements the pure amount arithmetic for swaps: converting
// user-entered amounts into gateway and invoice units and computing the
// service fee. No I/O happens here; callers validate bounds before touching
// the wallet or the network.
package convert

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ln-swap/pkg/types"
)

// ErrAmountOutOfRange is returned when the entered amount falls outside the
// quote's [min, max] bounds. This is a validation error, never a clamp.
var ErrAmountOutOfRange = errors.New("amount is outside the allowed range")

const (
	// basePrecision is the number of decimal places kept when converting a
	// display amount through the quote rate. Fixed precision keeps the
	// conversion deterministic.
	basePrecision = 7

	// feeDivisor yields the 1% service fee.
	feeDivisor = 100
)

// Conversion is the result of converting a user-entered amount
type Conversion struct {
	// BaseAmount is the amount submitted to the gateway, in the altcoin's
	// own unit (receive) or in BTC (send).
	BaseAmount decimal.Decimal

	// InvoiceMsat is the invoice amount requested from the wallet, in
	// millisatoshis. Zero for send conversions: the gateway supplies the
	// invoice there.
	InvoiceMsat int64

	// Fee is the 1% service fee in the unit the user entered.
	Fee decimal.Decimal
}

// ForReceive converts a user-entered altcoin amount for the receive flow
// (altcoin -> Lightning). The display amount must lie within the quote
// bounds; the base amount is display x rate rounded to seven decimal places.
func ForReceive(display decimal.Decimal, quote types.Quote) (Conversion, error) {
	if err := quote.Validate(); err != nil {
		return Conversion{}, fmt.Errorf("invalid quote: %w", err)
	}
	if !quote.InRange(display) {
		return Conversion{}, fmt.Errorf("%w: %s not in [%s, %s]",
			ErrAmountOutOfRange, display, quote.Min, quote.Max)
	}

	base := display.Mul(quote.Rate).Round(basePrecision)
	sats := base.Mul(decimal.NewFromInt(types.SatsPerBTC)).Round(0)

	return Conversion{
		BaseAmount:  base,
		InvoiceMsat: sats.IntPart() * types.MsatPerSat,
		Fee:         display.Div(decimal.NewFromInt(feeDivisor)),
	}, nil
}

// ForSend converts a user-entered satoshi amount for the send flow
// (Lightning -> altcoin). Bounds from the quote are BTC-denominated and are
// scaled to satoshis before checking.
func ForSend(sats int64, quote types.Quote) (Conversion, error) {
	if err := quote.Validate(); err != nil {
		return Conversion{}, fmt.Errorf("invalid quote: %w", err)
	}

	satsPerBTC := decimal.NewFromInt(types.SatsPerBTC)
	amount := decimal.NewFromInt(sats)
	minSats := quote.Min.Mul(satsPerBTC)
	maxSats := quote.Max.Mul(satsPerBTC)
	if amount.LessThan(minSats) || amount.GreaterThan(maxSats) {
		return Conversion{}, fmt.Errorf("%w: %d sats not in [%s, %s]",
			ErrAmountOutOfRange, sats, minSats, maxSats)
	}

	return Conversion{
		BaseAmount: amount.Div(satsPerBTC),
		Fee:        amount.Div(decimal.NewFromInt(feeDivisor)).Round(0),
	}, nil
}
