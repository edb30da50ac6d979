package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ln-swap/pkg/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, time.Second, nil)
}

func TestGetRate(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rate", r.URL.Path)
		assert.Equal(t, "ETH", r.URL.Query().Get("from"))
		assert.Equal(t, "BTC", r.URL.Query().Get("to"))

		fmt.Fprint(w, `{"data":{"from":{"min":0.001,"max":1,"rate":0.00002}}}`)
	})

	quote, err := apiClient.GetRate(context.Background(), "ETH", "BTC")
	require.NoError(t, err)
	assert.Equal(t, "ETH", quote.FromAsset)
	assert.Equal(t, "BTC", quote.ToAsset)
	assert.Equal(t, "0.00002", quote.Rate.String())
	assert.Equal(t, "0.001", quote.Min.String())
	assert.Equal(t, "1", quote.Max.String())
}

func TestGetRateUpstreamError(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"pair temporarily disabled"}`)
	})

	_, err := apiClient.GetRate(context.Background(), "ETH", "BTC")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
	assert.Contains(t, err.Error(), "pair temporarily disabled")
}

func TestGetRateEmptyData(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := apiClient.GetRate(context.Background(), "ETH", "BTC")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestGetRateInvalidBounds(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// min > max must not produce a usable quote.
		fmt.Fprint(w, `{"data":{"from":{"min":2,"max":1,"rate":0.00002}}}`)
	})

	_, err := apiClient.GetRate(context.Background(), "ETH", "BTC")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestOpenReceiveOrder(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/receive", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ETH", body["from"])
		assert.Equal(t, 0.0000002, body["amount"])
		assert.Equal(t, "lnbc20n1...", body["address"])

		fmt.Fprint(w, `{"data":{"id":"ord_1","token":"tok_1","amount":0.0000002,"recipientAddress":"0xDeposit","invoice":"ethereum:0xDeposit?value=0.0000002"}}`)
	})

	order, err := apiClient.OpenReceiveOrder(context.Background(), OpenReceiveRequest{
		From:    "ETH",
		Amount:  dec("0.0000002"),
		Address: "lnbc20n1...",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord_1", order.ID)
	assert.Equal(t, "tok_1", order.Token)
	assert.Equal(t, types.DirectionReceive, order.Direction)
	assert.Equal(t, types.StatusNew, order.Status)
	assert.Equal(t, "0xDeposit", order.RecipientAddress)
	assert.Equal(t, "0.0000002", order.Amount.String())
}

func TestOpenReceiveOrderRejected(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"amount below exchange minimum"}`)
	})

	_, err := apiClient.OpenReceiveOrder(context.Background(), OpenReceiveRequest{
		From:    "ETH",
		Amount:  dec("0.0000002"),
		Address: "lnbc20n1...",
	})

	var rejected *OrderRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "amount below exchange minimum", rejected.Reason)
}

func TestOpenSendOrder(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ETH", body["to"])
		assert.Equal(t, 0.06942, body["amount"])
		assert.Equal(t, "0xAb5801a7D398351b8bE11C439e05C5b3259aec9B", body["address"])

		fmt.Fprint(w, `{"data":{"id":"ord_2","token":"tok_2","invoice":"lnbc69420u1..."}}`)
	})

	order, err := apiClient.OpenSendOrder(context.Background(), OpenSendRequest{
		To:      "ETH",
		Amount:  dec("0.06942"),
		Address: "0xAb5801a7D398351b8bE11C439e05C5b3259aec9B",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord_2", order.ID)
	assert.Equal(t, types.DirectionSend, order.Direction)
	assert.Equal(t, "lnbc69420u1...", order.Invoice)
}

func TestGetOrderStatus(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/status", r.URL.Path)
		assert.Equal(t, "ord_1", r.URL.Query().Get("id"))
		assert.Equal(t, "tok_1", r.URL.Query().Get("token"))

		fmt.Fprint(w, `{"data":{"status":"EXCHANGE"}}`)
	})

	status, err := apiClient.GetOrderStatus(context.Background(), "ord_1", "tok_1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusExchange, status)
}

func TestGetOrderStatusUnavailable(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := apiClient.GetOrderStatus(context.Background(), "ord_1", "tok_1")
	assert.ErrorIs(t, err, ErrStatusUnavailable)
}

func TestGetOrderStatusUnknownValue(t *testing.T) {
	apiClient := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"status":"???"}}`)
	})

	_, err := apiClient.GetOrderStatus(context.Background(), "ord_1", "tok_1")
	assert.ErrorIs(t, err, ErrStatusUnavailable)
}
