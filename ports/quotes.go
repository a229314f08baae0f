package ports

import (
	"context"
	"time"

	"github.com/JoseExp44/StockWebApp/domain/market"
)

// QuoteRepository stores daily quote history per ticker. Implementations
// are the CSV cache and the PostgreSQL store.
type QuoteRepository interface {
	// LoadHistory returns a ticker's full cached history in date order.
	// A ticker with no cached data yields an empty slice, not an error.
	LoadHistory(ctx context.Context, ticker market.Ticker) ([]market.Quote, error)

	// SaveHistory replaces a ticker's cached history wholesale
	SaveHistory(ctx context.Context, ticker market.Ticker, quotes []market.Quote) error

	// AvailableTickers lists the tickers that currently have cached data
	AvailableTickers(ctx context.Context) ([]market.Ticker, error)

	// AllDates returns the union of quote dates across every cached
	// ticker, used to pick the default chart window.
	AllDates(ctx context.Context) ([]time.Time, error)
}

// QuoteFetcher downloads fresh daily history for one ticker from an
// external market-data source
type QuoteFetcher interface {
	FetchDaily(ctx context.Context, ticker market.Ticker, lookback time.Duration) ([]market.Quote, error)
}
