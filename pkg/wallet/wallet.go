// Package wallet adapts an injected Lightning wallet capability for the swap
// flows. The capability is optional at runtime; when absent the whole swap
// feature is gated off and callers present an alternative notice instead.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrWalletUnavailable is returned when no wallet capability is present
	// or the user denied the enable prompt.
	ErrWalletUnavailable = errors.New("lightning wallet is not available")

	// ErrInvoiceCreationFailed is returned when the wallet could not
	// produce an invoice.
	ErrInvoiceCreationFailed = errors.New("failed to create invoice")

	// ErrPaymentFailed is returned when a payment completed without a
	// preimage: the wallet reported nothing, but the payment did not go
	// through.
	ErrPaymentFailed = errors.New("the payment failed to go through")

	// ErrPaymentError is returned when the wallet rejected the payment
	// outright, e.g. insufficient balance or user cancel. Distinct from
	// ErrPaymentFailed: this one carries an explicit cause.
	ErrPaymentError = errors.New("payment error")
)

// Capability is the injected wallet interface. Implementations create and pay
// Lightning invoices without exposing private keys to this process.
type Capability interface {
	// Enable requests permission to use the wallet. May prompt the user.
	Enable(ctx context.Context) error

	// MakeInvoice creates an invoice for the given amount in millisats and
	// returns its payment request.
	MakeInvoice(ctx context.Context, amountMsat int64) (string, error)

	// SendPayment pays the given payment request and returns the preimage,
	// which may be empty if the payment silently did not complete.
	SendPayment(ctx context.Context, invoice string) (string, error)
}

// Adapter wraps a Capability with idempotent enabling and the error taxonomy
// the swap flows rely on. A nil capability means the feature is unavailable.
type Adapter struct {
	capability Capability

	mu      sync.Mutex
	enabled bool
}

// NewAdapter creates a wallet adapter. capability may be nil when no wallet
// is injected.
func NewAdapter(capability Capability) *Adapter {
	return &Adapter{capability: capability}
}

// Available reports whether a wallet capability was detected
func (a *Adapter) Available() bool {
	return a != nil && a.capability != nil
}

// Enable requests wallet access. The first successful call is latched;
// subsequent calls are no-ops so repeated Send/Receive flows within a session
// never re-prompt the user.
func (a *Adapter) Enable(ctx context.Context) error {
	if !a.Available() {
		return ErrWalletUnavailable
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled {
		return nil
	}
	if err := a.capability.Enable(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}
	a.enabled = true
	return nil
}

// CreateInvoice asks the wallet for an invoice of the given amount in
// millisats. Enable must have succeeded first.
func (a *Adapter) CreateInvoice(ctx context.Context, amountMsat int64) (string, error) {
	if !a.Available() {
		return "", ErrWalletUnavailable
	}

	invoice, err := a.capability.MakeInvoice(ctx, amountMsat)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvoiceCreationFailed, err)
	}
	if invoice == "" {
		return "", ErrInvoiceCreationFailed
	}
	return invoice, nil
}

// PayInvoice pays the given payment request. A wallet error maps to
// ErrPaymentError; a completed call without a preimage maps to
// ErrPaymentFailed. The two are separate user-visible outcomes.
func (a *Adapter) PayInvoice(ctx context.Context, invoice string) (string, error) {
	if !a.Available() {
		return "", ErrWalletUnavailable
	}

	preimage, err := a.capability.SendPayment(ctx, invoice)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentError, err)
	}
	if preimage == "" {
		return "", ErrPaymentFailed
	}
	return preimage, nil
}
