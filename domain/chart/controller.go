package chart

import (
	"github.com/JoseExp44/StockWebApp/domain/market"
)

// Controller owns the chart's whole mutable state: the base series, the
// surface lifecycle, and one OverlayState per kind. Every user action
// and every provider response flows through its methods.
//
// Methods are synchronous and unlocked. The caller is responsible for
// serializing all calls onto a single event-processing context (the app
// layer runs an event loop per session).
//
// Outstanding requests are fenced with a monotonically increasing
// sequence number per slot (one slot for the base series, one per
// overlay kind). A response is applied only when its sequence number
// matches the latest issued for its slot; anything else is stale and
// discarded. Toggling an overlay off also advances its slot, so an
// in-flight result from the preceding toggle-on can never land on a
// disabled control.
type Controller struct {
	surface  Surface
	requests Requester

	inputs    Inputs
	lastRange market.DateRange
	haveRange bool

	series      market.Series
	seriesErr   string
	rangeErr    string
	seriesSeq   uint64
	overlays    map[OverlayKind]*OverlayState
	overlaySeqs map[OverlayKind]uint64
}

// NewController creates a controller with all overlays disabled and no
// chart drawn
func NewController(surface Surface, requests Requester) *Controller {
	overlays := make(map[OverlayKind]*OverlayState, len(Kinds()))
	seqs := make(map[OverlayKind]uint64, len(Kinds()))
	for _, kind := range Kinds() {
		overlays[kind] = &OverlayState{}
		seqs[kind] = 0
	}
	return &Controller{
		surface:     surface,
		requests:    requests,
		overlays:    overlays,
		overlaySeqs: seqs,
	}
}

// Refresh validates the date range and, when valid, rebuilds the chart
// from scratch: the old chart is destroyed, every overlay reverts to
// disabled, and one base-series request is issued. An invalid range
// surfaces a range error and mutates nothing else.
func (c *Controller) Refresh(inputs Inputs) error {
	r, err := market.ParseDateRange(inputs.Start, inputs.End)
	if err != nil {
		c.rangeErr = err.Error()
		return err
	}

	c.rangeErr = ""
	c.seriesErr = ""
	c.inputs = inputs
	c.lastRange = r
	c.haveRange = true

	c.surface.Destroy()
	for _, kind := range Kinds() {
		c.disableOverlay(kind)
	}

	c.seriesSeq++
	c.requests.RequestSeries(inputs.Ticker, r, c.seriesSeq)
	return nil
}

// OnSeriesData applies an asynchronous base-series response. A stale
// sequence number is discarded; an error clears the chart wholesale; a
// success stores the series and builds a fresh chart whose sole dataset
// is the base line.
func (c *Controller) OnSeriesData(seq uint64, series market.Series, errorMsg string) {
	if seq != c.seriesSeq {
		return
	}
	if errorMsg != "" {
		c.seriesErr = errorMsg
		c.surface.Destroy()
		c.series = market.Series{}
		return
	}
	c.seriesErr = ""
	c.series = series
	c.surface.Create(series.X, []Dataset{BaseDataset(series)})
}

// Toggle flips one overlay. Toggle-on clears the overlay's error slot
// and issues a stat request; the dataset appears only when the response
// arrives. Toggle-off removes the overlay's dataset(s) locally with no
// network round-trip.
func (c *Controller) Toggle(kind OverlayKind) {
	st, ok := c.overlays[kind]
	if !ok {
		return
	}

	if st.Enabled {
		c.disableOverlay(kind)
		c.surface.Redraw()
		return
	}

	st.Enabled = true
	st.ErrorMsg = ""
	if !c.haveRange {
		// No validated request context yet, so there is nothing to
		// request against. Revert the toggle with a localized error.
		st.Enabled = false
		st.ErrorMsg = "no chart data to overlay"
		return
	}
	c.overlaySeqs[kind]++
	c.requests.RequestStat(c.inputs.Ticker, c.lastRange, kind, c.overlaySeqs[kind])
}

// disableOverlay is the toggle-off path shared with Refresh: idempotent,
// side-effect-only on the surface, never networked. The slot sequence
// advances so an outstanding stat response for this kind lands stale.
func (c *Controller) disableOverlay(kind OverlayKind) {
	st := c.overlays[kind]
	st.Enabled = false
	st.ErrorMsg = ""
	c.overlaySeqs[kind]++

	if !c.surface.Active() {
		return
	}
	datasets := c.surface.Datasets()
	trimmed := removeByLabel(datasets, kind.Labels()...)
	if len(trimmed) != len(datasets) {
		c.surface.SetDatasets(trimmed)
	}
}

// OnStatResult applies an asynchronous statistic response. An error
// fills the overlay's error slot and forces its toggle back off without
// touching any dataset; a success replaces-by-label the overlay's
// constant line(s) over the current base series axis.
func (c *Controller) OnStatResult(seq uint64, kind OverlayKind, upper, lower float64, errorMsg string) {
	st, ok := c.overlays[kind]
	if !ok || seq != c.overlaySeqs[kind] {
		return
	}

	if errorMsg != "" {
		st.ErrorMsg = errorMsg
		st.Enabled = false
		return
	}

	// Prior base-series failure destroyed the chart: nothing to draw on.
	if !c.surface.Active() {
		return
	}

	axisLen := c.series.Len()
	datasets := c.surface.Datasets()
	switch kind {
	case OverlayMean:
		datasets = replaceByLabel(datasets, ConstantDataset(MeanLabel, upper, axisLen))
	case OverlayMedian:
		datasets = replaceByLabel(datasets, ConstantDataset(MedianLabel, upper, axisLen))
	case OverlayStd:
		datasets = replaceByLabel(datasets, ConstantDataset(StdUpperLabel, upper, axisLen))
		datasets = replaceByLabel(datasets, ConstantDataset(StdLowerLabel, lower, axisLen))
	}
	c.surface.SetDatasets(datasets)
	c.surface.Redraw()
}

// Series returns the stored base series
func (c *Controller) Series() market.Series {
	return c.series
}

// Overlay returns the read-only state of one overlay kind
func (c *Controller) Overlay(kind OverlayKind) OverlayView {
	if st, ok := c.overlays[kind]; ok {
		return OverlayView{Enabled: st.Enabled, ErrorMsg: st.ErrorMsg}
	}
	return OverlayView{}
}

// Snapshot assembles the full render state for the UI mirror
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		ChartLive:   c.surface.Active(),
		SeriesError: c.seriesErr,
		RangeError:  c.rangeErr,
		Overlays:    make(map[OverlayKind]OverlayView, len(c.overlays)),
		Inputs:      c.inputs,
	}
	if snap.ChartLive {
		snap.AxisLabels = c.surface.AxisLabels()
		snap.Datasets = c.surface.Datasets()
	}
	for kind, st := range c.overlays {
		snap.Overlays[kind] = OverlayView{Enabled: st.Enabled, ErrorMsg: st.ErrorMsg}
	}
	return snap
}
