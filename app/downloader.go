package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal"
	"github.com/JoseExp44/StockWebApp/ports"
)

// Downloader refreshes the quote cache from the external market-data
// source. One bad ticker never stops the rest: fetch failures and empty
// answers are logged and skipped.
type Downloader struct {
	fetcher  ports.QuoteFetcher
	quotes   ports.QuoteRepository
	log      *internal.Logger
	lookback time.Duration
}

// NewDownloader creates a cache refresher
func NewDownloader(fetcher ports.QuoteFetcher, quotes ports.QuoteRepository, lookback time.Duration, log *internal.Logger) *Downloader {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Downloader{
		fetcher:  fetcher,
		quotes:   quotes,
		log:      log,
		lookback: lookback,
	}
}

// RefreshAll downloads and caches history for every ticker
// concurrently. It returns the number of tickers successfully cached;
// the only error case is a cancelled context.
func (d *Downloader) RefreshAll(ctx context.Context, tickers []market.Ticker) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	results := make([]bool, len(tickers))
	for i, ticker := range tickers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			quotes, err := d.fetcher.FetchDaily(ctx, ticker, d.lookback)
			if err != nil {
				d.log.Warn("download failed for %s: %v", ticker, err)
				return nil
			}
			if len(quotes) == 0 {
				d.log.Warn("no data for %s, skipping", ticker)
				return nil
			}
			if err := d.quotes.SaveHistory(ctx, ticker, quotes); err != nil {
				d.log.Error("caching %s: %v", ticker, err)
				return nil
			}
			d.log.Info("cached %d quotes for %s", len(quotes), ticker)
			results[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	cached := 0
	for _, ok := range results {
		if ok {
			cached++
		}
	}
	return cached, nil
}
