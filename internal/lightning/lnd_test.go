package lightning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты REST-адаптера поверх httptest: маппинг ответов и ошибок ноды,
// передача macaroon.

func newTestClient(t *testing.T, handler http.HandlerFunc) *LNDClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLNDClient(srv.URL, "0201deadbeef", 5*time.Second)
}

func TestLNDClient_MacaroonHeader(t *testing.T) {
	t.Parallel()

	var gotMacaroon string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMacaroon = r.Header.Get("Grpc-Metadata-macaroon")
		_ = json.NewEncoder(w).Encode(map[string]string{"address": "bc1test"})
	})

	addr, err := c.DepositAddress(context.Background())
	require.NoError(t, err)
	require.Equal(t, "bc1test", addr)
	require.Equal(t, "0201deadbeef", gotMacaroon)
}

func TestLNDClient_Pay_OK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/channels/transactions", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "lnbc1test", body["payment_request"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"payment_preimage": "cHJlaW1hZ2U=", // base64("preimage")
			"payment_hash":     "aGFzaA==",     // base64("hash")
			"payment_route": map[string]any{
				"total_fees": "3",
				"total_amt":  "503",
				"hops":       []any{map[string]any{}, map[string]any{}},
			},
		})
	})

	result, err := c.Pay(context.Background(), "lnbc1test")
	require.NoError(t, err)
	require.Equal(t, int64(3), result.FeePaid)
	require.Equal(t, "707265696d616765", result.Preimage)
	require.Equal(t, "68617368", result.PaymentHash)
	require.Equal(t, 2, result.Route.Hops)
}

// TestLNDClient_Pay_RouteError — payment_error с "route" маппится в ErrNoRoute,
// прочие — в ErrPaymentFailed.
func TestLNDClient_Pay_Errors(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name    string
		payErr  string
		wantErr error
	}{
		{"no_route", "unable to find a route to destination", ErrNoRoute},
		{"failed", "invoice expired", ErrPaymentFailed},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"payment_error": tc.payErr})
			})

			_, err := c.Pay(context.Background(), "lnbc1test")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLNDClient_DecodeInvoice(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payreq/lnbc1test", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"destination":  "02abcdef",
			"payment_hash": "cafebabe",
			"num_satoshis": "500",
			"timestamp":    "1750000000",
			"expiry":       "3600",
			"description":  "coffee",
		})
	})

	inv, err := c.DecodeInvoice(context.Background(), "lnbc1test")
	require.NoError(t, err)
	require.Equal(t, "02abcdef", inv.Destination)
	require.Equal(t, int64(500), inv.Amount)
	require.Equal(t, time.Hour, inv.Expiry)
	require.Equal(t, "coffee", inv.Description)
}

// TestLNDClient_DecodeInvoice_BadRequest — нода отвечает не-2xx:
// наружу уходит ErrInvalidInvoice.
func TestLNDClient_DecodeInvoice_BadRequest(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"checksum failed"}`, http.StatusBadRequest)
	})

	_, err := c.DecodeInvoice(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrInvalidInvoice)
}

func TestLNDClient_QueryRoute_NoRoutes(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"routes": []any{}})
	})

	_, err := c.QueryRoute(context.Background(), "02dest", 100)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestLNDClient_InvoiceStatus(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		body map[string]any
		want InvoiceState
	}{
		{"settled_flag", map[string]any{"settled": true}, InvoiceSettled},
		{"settled_state", map[string]any{"state": "SETTLED"}, InvoiceSettled},
		{"canceled", map[string]any{"state": "CANCELED"}, InvoiceCanceled},
		{"open", map[string]any{"state": "OPEN"}, InvoiceOpen},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(tc.body)
			})

			state, err := c.InvoiceStatus(context.Background(), "cafebabe")
			require.NoError(t, err)
			require.Equal(t, tc.want, state)
		})
	}
}

func TestLNDClient_PaymentStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"payments": []map[string]string{
				{"payment_hash": "aaaa", "status": "SUCCEEDED"},
				{"payment_hash": "bbbb", "status": "IN_FLIGHT"},
			},
		})
	})

	state, err := c.PaymentStatus(context.Background(), "aaaa")
	require.NoError(t, err)
	require.Equal(t, PaymentSucceeded, state)

	state, err = c.PaymentStatus(context.Background(), "bbbb")
	require.NoError(t, err)
	require.Equal(t, PaymentInFlight, state)

	// Неизвестный платёж считается провалившимся.
	state, err = c.PaymentStatus(context.Background(), "cccc")
	require.NoError(t, err)
	require.Equal(t, PaymentFailed, state)
}

func TestLNDClient_Info(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/getinfo", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"identity_pubkey": "02pub",
			"alias":           "hub",
			"block_height":    800000,
			"num_peers":       4,
			"synced_to_chain": true,
			"version":         "0.18.0-beta",
		})
	})

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "02pub", info.Pubkey)
	require.Equal(t, uint32(800000), info.BlockHeight)
	require.True(t, info.SyncedToChain)
}
