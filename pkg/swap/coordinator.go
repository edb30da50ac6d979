// Package swap implements the order lifecycle coordinator: it drives a swap
// attempt from quote through validation, wallet interaction, and order
// opening, then polls the gateway until the order reaches a terminal state.
package swap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ln-swap/pkg/address"
	"ln-swap/pkg/client"
	"ln-swap/pkg/convert"
	"ln-swap/pkg/types"
	"ln-swap/pkg/wallet"
)

const (
	// DefaultPollInterval is how often order status is re-fetched.
	DefaultPollInterval = 5 * time.Second

	// MinPollInterval avoids hammering the gateway.
	MinPollInterval = 1 * time.Second

	// pollGraceTicks is how many consecutive status failures are tolerated
	// before the coordinator surfaces an error, and only while polling has
	// never once succeeded for the order.
	pollGraceTicks = 24
)

// State is the coordinator's position in the swap lifecycle
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingQuote        State = "awaiting_quote"
	StateValidating           State = "validating"
	StateAwaitingWalletEnable State = "awaiting_wallet_enable"
	StateAwaitingWalletAction State = "awaiting_wallet_action"
	StateAwaitingOrderOpen    State = "awaiting_order_open"
	StatePolling              State = "polling"
	StateTerminal             State = "terminal"
	StateFailed               State = "failed"
)

// Gateway is the exchange backend the coordinator submits orders to.
// *client.Client satisfies it; tests substitute fakes.
type Gateway interface {
	GetRate(ctx context.Context, fromAsset, toAsset string) (types.Quote, error)
	OpenReceiveOrder(ctx context.Context, req client.OpenReceiveRequest) (types.Order, error)
	OpenSendOrder(ctx context.Context, req client.OpenSendRequest) (types.Order, error)
	GetOrderStatus(ctx context.Context, id, token string) (types.OrderStatus, error)
}

// quoteKey identifies which parameters a cached quote belongs to. Any key
// change invalidates the cache so a stale quote is never used for conversion.
type quoteKey struct {
	direction types.Direction
	asset     string
}

// pollHandle is a cancellable polling task for one order
type pollHandle struct {
	orderID  string
	stopChan chan struct{}
	doneChan chan struct{}
}

// Coordinator orchestrates the send and receive swap flows and owns the
// status polling loop. All exported methods are safe for concurrent use.
type Coordinator struct {
	gateway      Gateway
	wallet       *wallet.Adapter
	log          *zap.Logger
	pollInterval time.Duration

	// onStatus and onError deliver polling results to the view layer.
	onStatus func(types.OrderStatus)
	onError  func(error)

	mu        sync.RWMutex
	state     State
	quoteKey  quoteKey
	quote     *types.Quote
	order     *types.Order
	attemptID string
	poll      *pollHandle
}

// ReceiveParams describes an altcoin -> Lightning swap attempt
type ReceiveParams struct {
	Asset  string
	Amount decimal.Decimal
}

// SendParams describes a Lightning -> altcoin swap attempt
type SendParams struct {
	Asset      string
	AmountSats int64
	Address    string
}

// SendResult reports the outcome of a send attempt. The order exists as soon
// as the gateway accepts it; PayErr carries a wallet payment failure that is
// reported to the user independently, because the order's own status polling
// is the authoritative source of truth for fund movement.
type SendResult struct {
	Order  *types.Order
	PayErr error
}

// NewCoordinator creates a coordinator. walletAdapter may wrap a nil
// capability, in which case WalletAvailable reports false and both flows
// fail with wallet.ErrWalletUnavailable.
func NewCoordinator(gateway Gateway, walletAdapter *wallet.Adapter) *Coordinator {
	return &Coordinator{
		gateway:      gateway,
		wallet:       walletAdapter,
		log:          zap.NewNop(),
		pollInterval: DefaultPollInterval,
		state:        StateIdle,
	}
}

// SetLogger sets the coordinator's logger
func (c *Coordinator) SetLogger(log *zap.Logger) {
	if log != nil {
		c.log = log
	}
}

// SetPollInterval sets the status polling interval
func (c *Coordinator) SetPollInterval(interval time.Duration) {
	if interval < MinPollInterval {
		interval = MinPollInterval
	}
	c.pollInterval = interval
}

// OnStatus registers a callback invoked whenever polling observes a status
// change. Must be set before a swap starts.
func (c *Coordinator) OnStatus(fn func(types.OrderStatus)) {
	c.onStatus = fn
}

// OnError registers a callback for polling errors that exceed the grace
// period. Must be set before a swap starts.
func (c *Coordinator) OnError(fn func(error)) {
	c.onError = fn
}

// WalletAvailable reports whether a wallet capability was detected. When
// false the caller should present an alternative notice instead of the form.
func (c *Coordinator) WalletAvailable() bool {
	return c.wallet.Available()
}

// State returns the coordinator's current lifecycle state
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Order returns a snapshot of the current order, or nil if none is open
func (c *Coordinator) Order() *types.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.order == nil {
		return nil
	}
	snapshot := *c.order
	return &snapshot
}

// Quote returns the quote for the given direction and asset, fetching it if
// the cached one belongs to a different (direction, asset) key. Send quotes
// convert BTC into the asset; receive quotes convert the asset into BTC.
func (c *Coordinator) Quote(ctx context.Context, direction types.Direction, assetCode string) (types.Quote, error) {
	asset, err := types.FindAsset(assetCode)
	if err != nil {
		return types.Quote{}, err
	}

	key := quoteKey{direction: direction, asset: asset.Code}

	c.mu.Lock()
	if c.quote != nil && c.quoteKey == key {
		quote := *c.quote
		c.mu.Unlock()
		return quote, nil
	}
	// Parameters changed: the old quote must not be used again.
	c.quote = nil
	c.quoteKey = key
	c.state = StateAwaitingQuote
	c.mu.Unlock()

	from, to := asset.Code, "BTC"
	if direction == types.DirectionSend {
		from, to = "BTC", asset.Code
	}

	quote, err := c.gateway.GetRate(ctx, from, to)
	if err != nil {
		c.setState(StateFailed)
		return types.Quote{}, err
	}

	c.mu.Lock()
	// Only cache if the key is still current; a concurrent parameter
	// change supersedes this fetch.
	if c.quoteKey == key {
		c.quote = &quote
		c.state = StateValidating
	}
	c.mu.Unlock()

	c.log.Debug("quote ready",
		zap.String("direction", string(direction)),
		zap.String("asset", asset.Code),
		zap.String("rate", quote.Rate.String()))

	return quote, nil
}

// Receive runs the altcoin -> Lightning flow: validate the amount, enable
// the wallet, create an invoice for the converted satoshi amount, and open a
// receive order with that invoice as the payout address. Any failure before
// the order opens leaves no partial order and the attempt can be retried.
func (c *Coordinator) Receive(ctx context.Context, params ReceiveParams) (*types.Order, error) {
	quote, err := c.Quote(ctx, types.DirectionReceive, params.Asset)
	if err != nil {
		return nil, err
	}

	c.setState(StateValidating)
	conv, err := convert.ForReceive(params.Amount, quote)
	if err != nil {
		c.setState(StateFailed)
		return nil, err
	}

	c.setState(StateAwaitingWalletEnable)
	if err := c.wallet.Enable(ctx); err != nil {
		c.setState(StateValidating)
		return nil, err
	}

	c.setState(StateAwaitingWalletAction)
	invoice, err := c.wallet.CreateInvoice(ctx, conv.InvoiceMsat)
	if err != nil {
		c.setState(StateValidating)
		return nil, err
	}

	c.setState(StateAwaitingOrderOpen)
	order, err := c.gateway.OpenReceiveOrder(ctx, client.OpenReceiveRequest{
		From:    params.Asset,
		Amount:  conv.BaseAmount,
		Address: invoice,
	})
	if err != nil {
		c.setState(StateValidating)
		return nil, err
	}

	c.adoptOrder(&order)
	snapshot := order
	return &snapshot, nil
}

// Send runs the Lightning -> altcoin flow: validate amount and destination,
// open the order first, then enable the wallet and pay the gateway's
// invoice. The order polls regardless of the payment outcome.
func (c *Coordinator) Send(ctx context.Context, params SendParams) (*SendResult, error) {
	asset, err := types.FindAsset(params.Asset)
	if err != nil {
		return nil, err
	}

	quote, err := c.Quote(ctx, types.DirectionSend, params.Asset)
	if err != nil {
		return nil, err
	}

	c.setState(StateValidating)
	conv, err := convert.ForSend(params.AmountSats, quote)
	if err != nil {
		c.setState(StateFailed)
		return nil, err
	}

	dest := address.Normalize(params.Address)
	if err := address.Validate(dest, asset); err != nil {
		c.setState(StateFailed)
		return nil, err
	}

	c.setState(StateAwaitingOrderOpen)
	order, err := c.gateway.OpenSendOrder(ctx, client.OpenSendRequest{
		To:      params.Asset,
		Amount:  conv.BaseAmount,
		Address: dest,
	})
	if err != nil {
		c.setState(StateValidating)
		return nil, err
	}

	// The order exists from here on: whatever happens with the payment,
	// polling reports its true progress.
	result := &SendResult{}

	c.setState(StateAwaitingWalletEnable)
	payErr := c.wallet.Enable(ctx)
	if payErr == nil {
		c.setState(StateAwaitingWalletAction)
		_, payErr = c.wallet.PayInvoice(ctx, order.Invoice)
	}
	result.PayErr = payErr

	c.adoptOrder(&order)
	snapshot := order
	result.Order = &snapshot
	return result, nil
}

// Reset clears the current order and quote so a fresh swap can start. Any
// active polling is cancelled first.
func (c *Coordinator) Reset() {
	c.stopPolling()

	c.mu.Lock()
	c.order = nil
	c.quote = nil
	c.quoteKey = quoteKey{}
	c.attemptID = ""
	c.state = StateIdle
	c.mu.Unlock()
}

// Close tears down the coordinator, cancelling any active polling. In-flight
// requests may complete but their results are discarded.
func (c *Coordinator) Close() {
	c.stopPolling()
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// adoptOrder installs a freshly opened order and starts its polling loop,
// cancelling the previous order's loop first. Only one polling loop runs per
// coordinator.
func (c *Coordinator) adoptOrder(order *types.Order) {
	c.stopPolling()

	handle := &pollHandle{
		orderID:  order.ID,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	c.mu.Lock()
	stored := *order
	c.order = &stored
	c.attemptID = uuid.NewString()
	c.poll = handle
	c.state = StatePolling
	attemptID := c.attemptID
	c.mu.Unlock()

	c.log.Info("order opened, polling started",
		zap.String("order_id", order.ID),
		zap.String("attempt_id", attemptID),
		zap.String("direction", string(order.Direction)))

	go c.pollLoop(handle, order.Token)
}

// stopPolling cancels the active polling loop, if any, and waits for it to
// exit so no two loops ever run concurrently.
func (c *Coordinator) stopPolling() {
	c.mu.Lock()
	handle := c.poll
	c.poll = nil
	c.mu.Unlock()

	if handle == nil {
		return
	}
	close(handle.stopChan)
	<-handle.doneChan
}

// pollLoop re-fetches order status on a fixed interval until the order
// reaches a terminal state or the handle is cancelled. Transient fetch
// failures never regress the state; they only extend the wait.
func (c *Coordinator) pollLoop(handle *pollHandle, token string) {
	defer close(handle.doneChan)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	succeeded := false
	failures := 0

	for {
		select {
		case <-handle.stopChan:
			c.log.Debug("polling cancelled", zap.String("order_id", handle.orderID))
			return
		case <-ticker.C:
			status, err := c.gateway.GetOrderStatus(context.Background(), handle.orderID, token)
			if err != nil {
				failures++
				c.log.Debug("status fetch failed",
					zap.String("order_id", handle.orderID),
					zap.Int("consecutive_failures", failures),
					zap.Error(err))
				// Tolerated while polling has succeeded at least once;
				// otherwise surfaced after the grace period.
				if !succeeded && failures == pollGraceTicks {
					c.notifyError(fmt.Errorf("order status has not been reachable since polling began: %w", err))
				}
				continue
			}
			succeeded = true
			failures = 0

			if terminal := c.applyStatus(handle, status); terminal {
				c.log.Info("order reached terminal state",
					zap.String("order_id", handle.orderID),
					zap.String("status", string(status)))
				return
			}
		}
	}
}

// applyStatus records a polled status if the handle still belongs to the
// current order. Results from a superseded order are discarded. Returns true
// when the status is terminal and polling should stop.
func (c *Coordinator) applyStatus(handle *pollHandle, status types.OrderStatus) bool {
	c.mu.Lock()
	if c.order == nil || c.order.ID != handle.orderID {
		c.mu.Unlock()
		return true // stale handle: stop quietly
	}

	changed := c.order.Status != status
	c.order.Status = status
	if status.Terminal() {
		c.state = StateTerminal
		if c.poll == handle {
			c.poll = nil
		}
	}
	c.mu.Unlock()

	if changed {
		c.notifyStatus(status)
	}
	return status.Terminal()
}

func (c *Coordinator) notifyStatus(status types.OrderStatus) {
	if c.onStatus != nil {
		c.onStatus(status)
	}
}

func (c *Coordinator) notifyError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
