package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPCapabilityAbsent(t *testing.T) {
	// An empty bridge URL means no wallet is injected.
	assert.Nil(t, NewHTTPCapability("", time.Second))
}

func TestHTTPCapability(t *testing.T) {
	var enableCalled bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		switch r.URL.Path {
		case "/enable":
			enableCalled = true
			w.WriteHeader(http.StatusOK)
		case "/invoice":
			var body map[string]int64
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int64(20000), body["amount"])
			json.NewEncoder(w).Encode(map[string]string{"paymentRequest": "lnbc20n1..."})
		case "/pay":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "lnbc20n1...", body["invoice"])
			json.NewEncoder(w).Encode(map[string]string{"preimage": "deadbeef"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	capability := NewHTTPCapability(server.URL, time.Second)
	require.NotNil(t, capability)

	ctx := context.Background()

	require.NoError(t, capability.Enable(ctx))
	assert.True(t, enableCalled)

	invoice, err := capability.MakeInvoice(ctx, 20000)
	require.NoError(t, err)
	assert.Equal(t, "lnbc20n1...", invoice)

	preimage, err := capability.SendPayment(ctx, "lnbc20n1...")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", preimage)
}

func TestHTTPCapabilityErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer server.Close()

	capability := NewHTTPCapability(server.URL, time.Second)

	err := capability.Enable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	_, err = capability.MakeInvoice(context.Background(), 1000)
	assert.Error(t, err)

	_, err = capability.SendPayment(context.Background(), "lnbc1...")
	assert.Error(t, err)
}
