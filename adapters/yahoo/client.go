// Package yahoo downloads daily adjusted history from the Yahoo Finance
// chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal/errors"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// chartResponse is the subset of the chart API payload we consume
type chartResponse struct {
	Chart chartData `json:"chart"`
}

type chartData struct {
	Result []chartResult `json:"result"`
	Error  *chartError   `json:"error"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []int64    `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Adjclose []adjcloseBlock `json:"adjclose"`
	Quote    []quoteBlock    `json:"quote"`
}

type adjcloseBlock struct {
	Adjclose []float64 `json:"adjclose"`
}

type quoteBlock struct {
	Close []float64 `json:"close"`
}

// Client fetches daily bars from the Yahoo chart API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Yahoo Finance client
func NewClient(timeout time.Duration) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint
// (used by tests)
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchDaily downloads one ticker's daily adjusted closes over the
// lookback window ending now. Adjusted closes are preferred, raw closes
// are the fallback.
func (c *Client) FetchDaily(ctx context.Context, ticker market.Ticker, lookback time.Duration) ([]market.Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.ExternalServiceError("yahoo", err)
	}
	q := req.URL.Query()
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", time.Now().Add(-lookback).Unix()))
	q.Set("period2", fmt.Sprintf("%d", time.Now().Unix()))
	q.Set("events", "div,splits")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "StockWebApp/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("yahoo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.ExternalServiceError("yahoo", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, ticker))
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.ExternalServiceError("yahoo", err)
	}
	if payload.Chart.Error != nil {
		return nil, errors.ExternalServiceError("yahoo", fmt.Errorf("%s: %s", payload.Chart.Error.Code, payload.Chart.Error.Description))
	}
	if len(payload.Chart.Result) == 0 {
		return nil, nil
	}

	result := payload.Chart.Result[0]
	closes := closesFrom(result.Indicators)
	if len(closes) != len(result.Timestamp) {
		return nil, errors.ExternalServiceError("yahoo", fmt.Errorf("misaligned response for %s", ticker))
	}

	quotes := make([]market.Quote, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		day := time.Unix(ts, 0).UTC()
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		quotes = append(quotes, market.Quote{Date: day, Close: closes[i]})
	}
	return quotes, nil
}

func closesFrom(ind indicators) []float64 {
	if len(ind.Adjclose) > 0 && len(ind.Adjclose[0].Adjclose) > 0 {
		return ind.Adjclose[0].Adjclose
	}
	if len(ind.Quote) > 0 {
		return ind.Quote[0].Close
	}
	return nil
}
