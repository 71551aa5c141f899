package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"TradeTrack/pkg/model"
)

// Display periods accepted by GetHistory.
const (
	PeriodDay   = "1-day"
	PeriodWeek  = "1-week"
	PeriodMonth = "1-month"
	PeriodYear  = "1-year"
)

// AlphaVantageClient talks to the Alpha Vantage query API.
type AlphaVantageClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// globalQuoteResponse wraps the GLOBAL_QUOTE payload. The provider names
// fields with numeric prefixes.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// NewAlphaVantageClient creates a client with the given credentials.
func NewAlphaVantageClient(apiKey, baseURL string, timeout time.Duration) *AlphaVantageClient {
	return &AlphaVantageClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetQuote fetches and normalizes the current quote for symbol.
func (c *AlphaVantageClient) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	body, err := c.execute(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	})
	if err != nil {
		return nil, err
	}

	var resp globalQuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode global quote: %v", ErrMalformed, err)
	}

	if err := classifyProviderError(resp.Note, resp.Information, resp.ErrorMessage); err != nil {
		return nil, err
	}

	q := resp.GlobalQuote
	if q.Symbol == "" || q.Price == "" {
		return nil, fmt.Errorf("%w: no quote data for %s", ErrNotFound, symbol)
	}

	price, err := strconv.ParseFloat(q.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: parse price %q: %v", ErrMalformed, q.Price, err)
	}

	change, err := strconv.ParseFloat(q.Change, 64)
	if err != nil {
		// Change is informational; a missing value does not invalidate the quote.
		change = 0
	}

	return &model.Quote{
		Symbol:        q.Symbol,
		Price:         price,
		Change:        change,
		ChangePercent: q.ChangePercent,
		Timestamp:     time.Now(),
	}, nil
}

// GetHistory fetches the time series backing a chart period.
func (c *AlphaVantageClient) GetHistory(ctx context.Context, symbol, period string) (*model.HistorySeries, error) {
	params := url.Values{"symbol": {symbol}}

	var limit int
	switch period {
	case PeriodDay:
		params.Set("function", "TIME_SERIES_INTRADAY")
		params.Set("interval", "60min")
		limit = 24
	case PeriodWeek:
		params.Set("function", "TIME_SERIES_DAILY")
		limit = 7
	case PeriodMonth:
		params.Set("function", "TIME_SERIES_DAILY")
		limit = 31
	case PeriodYear:
		params.Set("function", "TIME_SERIES_MONTHLY")
		limit = 12
	default:
		return nil, fmt.Errorf("invalid period %q", period)
	}

	body, err := c.execute(ctx, params)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode history: %v", ErrMalformed, err)
	}

	var note, info, errMsg string
	if v, ok := raw["Note"]; ok {
		_ = json.Unmarshal(v, &note)
	}
	if v, ok := raw["Information"]; ok {
		_ = json.Unmarshal(v, &info)
	}
	if v, ok := raw["Error Message"]; ok {
		_ = json.Unmarshal(v, &errMsg)
	}
	if err := classifyProviderError(note, info, errMsg); err != nil {
		return nil, err
	}

	series := findTimeSeries(raw)
	if series == nil {
		return nil, fmt.Errorf("%w: no history data for %s", ErrNotFound, symbol)
	}

	points := make([]model.HistoryPoint, 0, len(series))
	for date, bar := range series {
		points = append(points, model.HistoryPoint{
			Date:   date,
			Open:   parseBarField(bar, "1. open"),
			High:   parseBarField(bar, "2. high"),
			Low:    parseBarField(bar, "3. low"),
			Close:  parseBarField(bar, "4. close"),
			Volume: parseBarField(bar, "5. volume"),
		})
	}

	// Newest first, then trim to the period's window.
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date > points[j].Date
	})
	if len(points) > limit {
		points = points[:limit]
	}

	return &model.HistorySeries{
		Symbol: symbol,
		Period: period,
		Points: points,
	}, nil
}

// execute performs one provider request and returns the raw body.
func (c *AlphaVantageClient) execute(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.APIKey)
	reqURL := c.BaseURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	return body, nil
}

// classifyProviderError maps the provider's in-band error fields to the
// failure taxonomy. Alpha Vantage reports quota exhaustion through "Note"
// or "Information" and unknown symbols through "Error Message", all with
// HTTP 200.
func classifyProviderError(note, info, errMsg string) error {
	if note != "" {
		return fmt.Errorf("%w: %s", ErrRateLimited, note)
	}
	if info != "" {
		return fmt.Errorf("%w: %s", ErrRateLimited, info)
	}
	if errMsg != "" {
		return fmt.Errorf("%w: %s", ErrNotFound, errMsg)
	}
	return nil
}

// findTimeSeries picks the time-series object out of the response; its key
// depends on the function ("Time Series (Daily)", "Monthly Time Series", ...).
func findTimeSeries(raw map[string]json.RawMessage) map[string]map[string]string {
	for key, value := range raw {
		if !strings.Contains(key, "Time Series") {
			continue
		}
		var series map[string]map[string]string
		if err := json.Unmarshal(value, &series); err != nil {
			continue
		}
		return series
	}
	return nil
}

func parseBarField(bar map[string]string, field string) float64 {
	v, err := strconv.ParseFloat(bar[field], 64)
	if err != nil {
		return 0
	}
	return v
}
