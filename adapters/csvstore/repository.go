// Package csvstore caches daily quote history as one CSV file per
// ticker under a data directory.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal/errors"
)

// dateLayout is the on-disk date column format
const dateLayout = "2006-01-02"

// Repository implements ports.QuoteRepository over per-ticker CSV files
type Repository struct {
	dataDir string
	tickers []market.Ticker
}

// NewRepository creates a CSV quote repository rooted at dataDir,
// restricted to the configured ticker universe. The directory is
// created if missing.
func NewRepository(dataDir string, tickers []market.Ticker) (*Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.StorageError("failed to create data directory", err)
	}
	return &Repository{
		dataDir: dataDir,
		tickers: append([]market.Ticker(nil), tickers...),
	}, nil
}

func (r *Repository) path(ticker market.Ticker) string {
	return filepath.Join(r.dataDir, ticker.String()+".csv")
}

// LoadHistory reads a ticker's cached CSV in date order. A missing file
// yields an empty history, not an error. Column positions are resolved
// from the header row, so files carrying full OHLCV columns load fine.
func (r *Repository) LoadHistory(ctx context.Context, ticker market.Ticker) ([]market.Quote, error) {
	f, err := os.Open(r.path(ticker))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to open cache for %s", ticker), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to read cache for %s", ticker), err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	dateCol, closeCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "Date":
			dateCol = i
		case "Close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, errors.StorageError(fmt.Sprintf("cache for %s lacks Date/Close columns", ticker), nil)
	}

	quotes := make([]market.Quote, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= dateCol || len(row) <= closeCol {
			continue
		}
		date, err := time.Parse(dateLayout, row[dateCol])
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(row[closeCol], 64)
		if err != nil {
			continue
		}
		quotes = append(quotes, market.Quote{Date: date, Close: closePrice})
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Date.Before(quotes[j].Date) })
	return quotes, nil
}

// SaveHistory replaces a ticker's cached CSV wholesale
func (r *Repository) SaveHistory(ctx context.Context, ticker market.Ticker, quotes []market.Quote) error {
	f, err := os.Create(r.path(ticker))
	if err != nil {
		return errors.StorageError(fmt.Sprintf("failed to create cache for %s", ticker), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Close"}); err != nil {
		return errors.StorageError(fmt.Sprintf("failed to write cache for %s", ticker), err)
	}
	for _, q := range quotes {
		row := []string{
			q.Date.Format(dateLayout),
			strconv.FormatFloat(q.Close, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return errors.StorageError(fmt.Sprintf("failed to write cache for %s", ticker), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.StorageError(fmt.Sprintf("failed to flush cache for %s", ticker), err)
	}
	return nil
}

// AvailableTickers lists the configured tickers that have a cache file
func (r *Repository) AvailableTickers(ctx context.Context) ([]market.Ticker, error) {
	available := make([]market.Ticker, 0, len(r.tickers))
	for _, t := range r.tickers {
		if _, err := os.Stat(r.path(t)); err == nil {
			available = append(available, t)
		}
	}
	return available, nil
}

// AllDates returns the union of quote dates across every cached ticker
func (r *Repository) AllDates(ctx context.Context) ([]time.Time, error) {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, t := range r.tickers {
		quotes, err := r.LoadHistory(ctx, t)
		if err != nil {
			return nil, err
		}
		for _, q := range quotes {
			if !seen[q.Date] {
				seen[q.Date] = true
				dates = append(dates, q.Date)
			}
		}
	}
	return dates, nil
}
