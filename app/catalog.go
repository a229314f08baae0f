package app

import (
	"context"

	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/ports"
)

// Bootstrap seeds a fresh client: the selectable tickers and the
// default date window.
type Bootstrap struct {
	Tickers      []string `json:"tickers"`
	DefaultStart string   `json:"defaultStart"`
	DefaultEnd   string   `json:"defaultEnd"`
}

// Catalog answers bootstrap queries from the quote store
type Catalog struct {
	quotes ports.QuoteRepository
}

// NewCatalog creates a catalog over the given quote repository
func NewCatalog(quotes ports.QuoteRepository) *Catalog {
	return &Catalog{quotes: quotes}
}

// Startup returns the tickers that have cached data and the default
// window: the latest 30 days within the union of all cached dates. With
// nothing cached, the ticker list and the window are empty.
func (c *Catalog) Startup(ctx context.Context) (Bootstrap, error) {
	tickers, err := c.quotes.AvailableTickers(ctx)
	if err != nil {
		return Bootstrap{}, err
	}

	boot := Bootstrap{Tickers: make([]string, 0, len(tickers))}
	for _, t := range tickers {
		boot.Tickers = append(boot.Tickers, t.String())
	}

	dates, err := c.quotes.AllDates(ctx)
	if err != nil {
		return Bootstrap{}, err
	}
	if window, ok := market.DefaultWindow(dates); ok {
		boot.DefaultStart = window.Start.Format(market.DateFormat)
		boot.DefaultEnd = window.End.Format(market.DateFormat)
	}
	return boot, nil
}
