package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/papertrade/tradedash/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second), srv
}

func TestGetPositions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/positions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"SBIN":{"netQuantity":-10,"pnl":-6505.0},"NIFTY":{"netQuantity":5,"pnl":1200.25}}`))
	}))

	positions, err := client.GetPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 2)
	require.Equal(t, -10, positions[domain.SymbolSBIN].NetQuantity)
	require.True(t, positions[domain.SymbolNifty].PnL.Equal(decimal.RequireFromString("1200.25")))
}

func TestGetTradesTodayKeepsBackendOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analytics/trades/today", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"tradeId":"t-2","tradeTime":"2026-08-31T11:00:00Z","symbol":"SBIN","side":"SELL","quantity":5,"price":651.0},
			{"tradeId":"t-1","tradeTime":"2026-08-31T10:00:00Z","symbol":"SBIN","side":"BUY","quantity":10,"price":650.5}
		]`))
	}))

	trades, err := client.GetTradesToday(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 2)
	// No client-side sorting: backend order is preserved.
	require.Equal(t, "t-2", trades[0].TradeID)
	require.Equal(t, "t-1", trades[1].TradeID)
}

func TestGetTradesTodayParsesZonelessTimestamps(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"tradeId":"t-1","tradeTime":"2026-08-31T10:00:00","symbol":"SBIN","side":"BUY","quantity":10,"price":650.5}]`))
	}))

	trades, err := client.GetTradesToday(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 1)
	want := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	require.True(t, trades[0].TradeTime.Equal(want), "got %v", trades[0].TradeTime)
}

func TestUndecodableBodyIsNotANetworkError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"quantity":"ten"}]`))
	}))

	_, err := client.GetTradesToday(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.False(t, errors.As(err, &netErr), "decode failure mislabelled as transport failure: %v", err)
}

func TestGetDailyAnalyticsUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dailyAnalytics":{"RELIANCE":{"totalQuantity":15,"totalPnl":-321.5}}}`))
	}))

	analytics, err := client.GetDailyAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, analytics, 1)
	require.Equal(t, 15, analytics[domain.SymbolReliance].TotalQuantity)
}

func TestGetDailyAnalyticsMissingFieldMeansEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))

	analytics, err := client.GetDailyAnalytics(context.Background())
	require.NoError(t, err)
	require.NotNil(t, analytics)
	require.Empty(t, analytics)
}

func TestSubmitTradeSendsParsedNumerics(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/trade", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.SubmitTrade(context.Background(), domain.TradeRequest{
		Symbol:   domain.SymbolSBIN,
		Side:     domain.SideBuy,
		Quantity: 10,
		Price:    decimal.RequireFromString("650.50"),
	})
	require.NoError(t, err)

	// The backend must see real JSON numbers, not strings.
	require.Equal(t, "SBIN", received["symbol"])
	require.Equal(t, "BUY", received["side"])
	require.Equal(t, float64(10), received["quantity"])
	require.Equal(t, 650.50, received["price"])
}

func TestServerErrorCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"insufficient margin"}`))
	}))

	err := client.SubmitTrade(context.Background(), domain.TradeRequest{
		Symbol: domain.SymbolSBIN, Side: domain.SideBuy, Quantity: 1, Price: decimal.NewFromInt(1),
	})
	require.Error(t, err)

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	require.Equal(t, http.StatusBadRequest, serverErr.Status)
	require.Equal(t, "insufficient margin", serverErr.Message)
}

func TestServerErrorWithoutMessageBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))

	_, err := client.GetPositions(context.Background())
	require.Error(t, err)

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	require.Equal(t, http.StatusInternalServerError, serverErr.Status)
	require.Empty(t, serverErr.Message)
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, 500*time.Millisecond)
	_, err := client.GetPositions(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "want NetworkError, got %T: %v", err, err)
}
