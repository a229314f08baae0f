package market

import (
	"math"
	"time"
)

// Ticker represents a stock symbol (e.g. "AAPL")
type Ticker string

// String returns the string representation
func (t Ticker) String() string {
	return string(t)
}

// IsEmpty checks if the ticker is empty
func (t Ticker) IsEmpty() bool {
	return t == ""
}

// Quote represents one daily bar for a ticker, reduced to the fields the
// chart consumes
type Quote struct {
	Date  time.Time
	Close float64
}

// Series is the plotted base series: index-aligned category labels and
// closing prices
type Series struct {
	X []string  `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of plotted points
func (s Series) Len() int {
	return len(s.X)
}

// IsEmpty checks whether the series has no points
func (s Series) IsEmpty() bool {
	return len(s.X) == 0
}

// AxisDateFormat is the category-axis label layout for daily bars.
const AxisDateFormat = "01/02/2006"

// SeriesFromQuotes builds an index-aligned series from daily quotes,
// formatting each date as an axis label.
func SeriesFromQuotes(quotes []Quote) Series {
	s := Series{
		X: make([]string, 0, len(quotes)),
		Y: make([]float64, 0, len(quotes)),
	}
	for _, q := range quotes {
		s.X = append(s.X, q.Date.Format(AxisDateFormat))
		s.Y = append(s.Y, q.Close)
	}
	return s
}

// CleanCloses extracts the finite closing prices from a quote slice.
// NaN and infinite values are dropped before any statistic is computed.
func CleanCloses(quotes []Quote) []float64 {
	closes := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		if math.IsNaN(q.Close) || math.IsInf(q.Close, 0) {
			continue
		}
		closes = append(closes, q.Close)
	}
	return closes
}
