package chart

import "github.com/JoseExp44/StockWebApp/domain/market"

// Surface is the rendering contract the controller drives. One surface
// backs one chart; Create replaces any previous chart wholesale and
// Destroy releases it synchronously. Dataset identity is by label but
// the surface is not required to dedupe: the controller removes before
// inserting.
type Surface interface {
	// Create builds a fresh chart from the shared category axis and an
	// ordered dataset list, discarding any prior chart.
	Create(axisLabels []string, datasets []Dataset)

	// Destroy tears down the current chart, if any. Idempotent.
	Destroy()

	// Active reports whether a chart currently exists
	Active() bool

	// AxisLabels returns the shared category axis of the live chart
	AxisLabels() []string

	// Datasets returns the live chart's ordered dataset list
	Datasets() []Dataset

	// SetDatasets replaces the live chart's dataset list
	SetDatasets(datasets []Dataset)

	// Redraw asks the surface to repaint after dataset mutation
	Redraw()
}

// Requester issues the controller's asynchronous provider requests.
// Fire-and-forget: results come back through the controller's response
// methods, tagged with the sequence number carried here.
type Requester interface {
	RequestSeries(ticker string, r market.DateRange, seq uint64)
	RequestStat(ticker string, r market.DateRange, kind OverlayKind, seq uint64)
}
