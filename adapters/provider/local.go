// Package provider answers chart data requests from the local quote
// store. It is the asynchronous half of the app: every request is
// served on its own goroutine and the result comes back through the
// caller's delivery callback.
package provider

import (
	"context"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/JoseExp44/StockWebApp/domain/chart"
	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal"
	"github.com/JoseExp44/StockWebApp/ports"
)

// User-visible provider messages
const (
	msgNoData		= "No data available"
	msgNoDataInRange	= "No data for selected range"
	msgOnePricePoint	= "Only one price point"
)

// Local serves series and statistic requests from a QuoteRepository
type Local struct {
	quotes ports.QuoteRepository
	log    *internal.Logger
}

// NewLocal creates a provider over the given quote repository
func NewLocal(quotes ports.QuoteRepository, log *internal.Logger) *Local {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Local{quotes: quotes, log: log}
}

// RequestSeries resolves the base series asynchronously. Failures are
// delivered as user-visible messages inside the result.
func (p *Local) RequestSeries(ctx context.Context, req ports.SeriesRequest, deliver func(ports.SeriesResult)) {
	go func() {
		result := ports.SeriesResult{Seq: req.Seq}

		filtered, errMsg := p.loadWindow(ctx, req.Ticker, req.Range)
		if errMsg != "" {
			result.ErrorMsg = errMsg
			deliver(result)
			return
		}

		result.Series = market.SeriesFromQuotes(filtered)
		p.log.Debug("series for %s: %d points", req.Ticker, result.Series.Len())
		deliver(result)
	}()
}

// RequestStat computes one statistic over the window's closing prices
// asynchronously. mean/median fill Upper only; std fills both band
// edges using the sample standard deviation.
func (p *Local) RequestStat(ctx context.Context, req ports.StatRequest, deliver func(ports.StatResult)) {
	go func() {
		result := ports.StatResult{Seq: req.Seq, Kind: req.Kind}

		filtered, errMsg := p.loadWindow(ctx, req.Ticker, req.Range)
		if errMsg != "" {
			result.ErrorMsg = errMsg
			deliver(result)
			return
		}

		closes := market.CleanCloses(filtered)
		if len(closes) == 0 {
			result.ErrorMsg = msgNoDataInRange
			deliver(result)
			return
		}

		switch req.Kind {
		case chart.OverlayMean:
			result.Upper, _ = stats.Mean(closes)
		case chart.OverlayMedian:
			result.Upper, _ = stats.Median(closes)
		case chart.OverlayStd:
			if len(closes) == 1 {
				result.ErrorMsg = msgOnePricePoint
				break
			}
			mean, std := stat.MeanStdDev(closes, nil)
			result.Upper = mean + std
			result.Lower = mean - std
		default:
			result.ErrorMsg = "unknown statistic"
		}
		deliver(result)
	}()
}

// loadWindow loads a ticker's history and slices it to the request
// window, mapping the two empty cases to their provider messages.
func (p *Local) loadWindow(ctx context.Context, ticker string, r market.DateRange) ([]market.Quote, string) {
	history, err := p.quotes.LoadHistory(ctx, market.Ticker(ticker))
	if err != nil {
		p.log.Error("loading history for %s: %v", ticker, err)
		return nil, msgNoData
	}
	if len(history) == 0 {
		return nil, msgNoData
	}
	filtered := market.FilterQuotes(history, r)
	if len(filtered) == 0 {
		return nil, msgNoDataInRange
	}
	return filtered, ""
}
