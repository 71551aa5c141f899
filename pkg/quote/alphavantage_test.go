package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*AlphaVantageClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewAlphaVantageClient("test-key", server.URL, 2*time.Second)
	return client, server
}

func TestGetQuoteParsesGlobalQuote(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(`{"Global Quote": {
			"01. symbol": "AAPL",
			"05. price": "150.2500",
			"09. change": "1.2500",
			"10. change percent": "0.8389%"
		}}`))
	})
	defer server.Close()

	q, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 150.25, q.Price)
	assert.Equal(t, 1.25, q.Change)
	assert.Equal(t, "0.8389%", q.ChangePercent)
}

func TestGetQuoteEmptyQuoteIsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetQuoteErrorMessageIsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetQuoteNoteIsRateLimited(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGetQuoteNon200IsUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetQuoteUnparseablePriceIsMalformed(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {
			"01. symbol": "AAPL",
			"05. price": "not-a-number"
		}}`))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGetQuoteBadJSONIsMalformed(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGetQuoteHonorsContextTimeout(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"Global Quote": {"01. symbol": "AAPL", "05. price": "150.00"}}`))
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetQuote(ctx, "AAPL")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetHistoryDailySeries(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"Meta Data": {"2. Symbol": "AAPL"},
			"Time Series (Daily)": {
				"2026-08-28": {"1. open": "149.00", "2. high": "151.00", "3. low": "148.50", "4. close": "150.25", "5. volume": "1000"},
				"2026-08-27": {"1. open": "148.00", "2. high": "149.50", "3. low": "147.00", "4. close": "149.00", "5. volume": "900"}
			}
		}`))
	})
	defer server.Close()

	series, err := client.GetHistory(context.Background(), "AAPL", PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, PeriodWeek, series.Period)
	require.Len(t, series.Points, 2)
	// Newest first.
	assert.Equal(t, "2026-08-28", series.Points[0].Date)
	assert.Equal(t, 150.25, series.Points[0].Close)
}

func TestGetHistoryIntradayFunction(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_INTRADAY", r.URL.Query().Get("function"))
		assert.Equal(t, "60min", r.URL.Query().Get("interval"))
		w.Write([]byte(`{"Time Series (60min)": {
			"2026-08-28 16:00:00": {"1. open": "150.00", "4. close": "150.10"}
		}}`))
	})
	defer server.Close()

	series, err := client.GetHistory(context.Background(), "AAPL", PeriodDay)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
}

func TestGetHistoryInvalidPeriod(t *testing.T) {
	client := NewAlphaVantageClient("test-key", "http://unused", time.Second)

	_, err := client.GetHistory(context.Background(), "AAPL", "1-decade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid period")
}

func TestGetHistoryMissingSeriesIsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Meta Data": {}}`))
	})
	defer server.Close()

	_, err := client.GetHistory(context.Background(), "AAPL", PeriodMonth)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "not_found", FailureReason(ErrNotFound))
	assert.Equal(t, "rate_limited", FailureReason(ErrRateLimited))
	assert.Equal(t, "malformed", FailureReason(ErrMalformed))
	assert.Equal(t, "unavailable", FailureReason(ErrUnavailable))
	assert.Equal(t, "unavailable", FailureReason(assert.AnError))
}
