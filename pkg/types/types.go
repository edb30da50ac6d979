package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// SatsPerBTC is the number of satoshis in one bitcoin.
	SatsPerBTC = 100_000_000

	// MsatPerSat is the number of millisatoshis in one satoshi.
	MsatPerSat = 1000
)

// Direction indicates which way a swap moves funds relative to Lightning
type Direction string

const (
	DirectionSend    Direction = "send"    // Lightning -> altcoin
	DirectionReceive Direction = "receive" // altcoin -> Lightning
)

// Quote holds the exchange rate and amount bounds for a currency pair at a
// point in time. Quotes are fetched fresh per (direction, asset) key and are
// never persisted.
type Quote struct {
	FromAsset string
	ToAsset   string
	Rate      decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
}

// Validate checks that the quote has usable rate and bounds
func (q Quote) Validate() error {
	if !q.Rate.IsPositive() {
		return fmt.Errorf("quote rate must be positive, got %s", q.Rate)
	}
	if !q.Min.IsPositive() {
		return fmt.Errorf("quote min must be positive, got %s", q.Min)
	}
	if q.Min.GreaterThan(q.Max) {
		return fmt.Errorf("quote min %s exceeds max %s", q.Min, q.Max)
	}
	return nil
}

// InRange reports whether amount lies within the quote's [Min, Max] bounds
func (q Quote) InRange(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(q.Min) && amount.LessThanOrEqual(q.Max)
}

// Order is a tracked exchange transaction opened with the gateway. The Token
// field is the capability secret required to poll status; it must never be
// embedded in any shareable output.
type Order struct {
	ID        string
	Token     string
	Direction Direction
	Status    OrderStatus

	// RecipientAddress and Amount are set on receive orders: the altcoin
	// address and exact amount the user must send.
	RecipientAddress string
	Amount           decimal.Decimal

	// Invoice is the gateway's Lightning invoice (send orders) or the
	// altcoin payment URI (receive orders).
	Invoice string
}
