package ports

import (
	"context"

	"github.com/JoseExp44/StockWebApp/domain/chart"
	"github.com/JoseExp44/StockWebApp/domain/market"
)

// SeriesRequest asks for the base series of one ticker over a date
// window. Seq is the controller's fence token and is echoed back
// unchanged in the result.
type SeriesRequest struct {
	Ticker string
	Range  market.DateRange
	Seq    uint64
}

// SeriesResult is the asynchronous answer to a SeriesRequest. ErrorMsg
// is a user-visible message; when set, Series is empty.
type SeriesResult struct {
	Seq      uint64
	Series   market.Series
	ErrorMsg string
}

// StatRequest asks for one statistic over the same window
type StatRequest struct {
	Ticker string
	Range  market.DateRange
	Kind   chart.OverlayKind
	Seq    uint64
}

// StatResult is the asynchronous answer to a StatRequest. Upper carries
// the mean/median value or the upper band edge; Lower is meaningful
// only for the std kind.
type StatResult struct {
	Seq      uint64
	Kind     chart.OverlayKind
	Upper    float64
	Lower    float64
	ErrorMsg string
}

// Provider is the asynchronous data provider behind the chart.
// Requests are fire-and-forget: each call returns immediately and the
// result is delivered later through the given callback, from a provider
// goroutine. Per-request failures are reported inside the result, never
// as a Go error.
type Provider interface {
	RequestSeries(ctx context.Context, req SeriesRequest, deliver func(SeriesResult))
	RequestStat(ctx context.Context, req StatRequest, deliver func(StatResult))
}
