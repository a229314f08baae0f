package chart

import (
	"testing"

	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal/errors"
)

// fakeSurface records the rendering calls the controller makes
type fakeSurface struct {
	active     bool
	axisLabels []string
	datasets   []Dataset
	creates    int
	destroys   int
	redraws    int
}

func (f *fakeSurface) Create(axisLabels []string, datasets []Dataset) {
	f.active = true
	f.axisLabels = axisLabels
	f.datasets = datasets
	f.creates++
}

func (f *fakeSurface) Destroy() {
	if f.active {
		f.destroys++
	}
	f.active = false
	f.axisLabels = nil
	f.datasets = nil
}

func (f *fakeSurface) Active() bool { return f.active }

func (f *fakeSurface) AxisLabels() []string { return f.axisLabels }

func (f *fakeSurface) Datasets() []Dataset { return f.datasets }

func (f *fakeSurface) SetDatasets(datasets []Dataset) { f.datasets = datasets }

func (f *fakeSurface) Redraw() { f.redraws++ }

func (f *fakeSurface) labels() []string {
	labels := make([]string, 0, len(f.datasets))
	for _, d := range f.datasets {
		labels = append(labels, d.Label)
	}
	return labels
}

// fakeRequester records issued provider requests without answering them
type fakeRequester struct {
	seriesSeqs []uint64
	statReqs   []struct {
		Kind OverlayKind
		Seq  uint64
	}
}

func (f *fakeRequester) RequestSeries(ticker string, r market.DateRange, seq uint64) {
	f.seriesSeqs = append(f.seriesSeqs, seq)
}

func (f *fakeRequester) RequestStat(ticker string, r market.DateRange, kind OverlayKind, seq uint64) {
	f.statReqs = append(f.statReqs, struct {
		Kind OverlayKind
		Seq  uint64
	}{kind, seq})
}

func (f *fakeRequester) lastSeriesSeq() uint64 {
	return f.seriesSeqs[len(f.seriesSeqs)-1]
}

func (f *fakeRequester) lastStatSeq() uint64 {
	return f.statReqs[len(f.statReqs)-1].Seq
}

func validInputs() Inputs {
	return Inputs{Ticker: "AAPL", Start: "2024-06-01", End: "2024-06-10"}
}

func testSeries() market.Series {
	return market.Series{
		X: []string{"06/03/2024", "06/04/2024", "06/05/2024"},
		Y: []float64{101.5, 99.0, 103.25},
	}
}

// newDrawnController builds a controller with a live chart showing the
// base series
func newDrawnController(t *testing.T) (*Controller, *fakeSurface, *fakeRequester) {
	t.Helper()
	surface := &fakeSurface{}
	requests := &fakeRequester{}
	c := NewController(surface, requests)
	if err := c.Refresh(validInputs()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	c.OnSeriesData(requests.lastSeriesSeq(), testSeries(), "")
	if !surface.active {
		t.Fatal("expected a live chart after series response")
	}
	return c, surface, requests
}

func enableOverlay(t *testing.T, c *Controller, requests *fakeRequester, kind OverlayKind, upper, lower float64) {
	t.Helper()
	c.Toggle(kind)
	c.OnStatResult(requests.lastStatSeq(), kind, upper, lower, "")
}

func TestRefresh_InvalidRange(t *testing.T) {
	c, surface, requests := newDrawnController(t)
	createsBefore := surface.creates
	seriesReqsBefore := len(requests.seriesSeqs)

	err := c.Refresh(Inputs{Ticker: "AAPL", Start: "2024-06-10", End: "2024-06-01"})
	if err == nil {
		t.Fatal("expected an error for start after end")
	}
	if errors.GetCode(err) != errors.CodeInvalidRange {
		t.Errorf("expected INVALID_RANGE code, got %s", errors.GetCode(err))
	}

	// No request, no mutation: the previously drawn chart is untouched.
	if len(requests.seriesSeqs) != seriesReqsBefore {
		t.Error("invalid range must not issue a provider request")
	}
	if !surface.active || surface.creates != createsBefore {
		t.Error("invalid range must leave the existing chart untouched")
	}
	if snap := c.Snapshot(); snap.RangeError == "" {
		t.Error("expected a user-visible range error in the snapshot")
	}
}

func TestRefresh_UnparseableDate(t *testing.T) {
	surface := &fakeSurface{}
	requests := &fakeRequester{}
	c := NewController(surface, requests)

	err := c.Refresh(Inputs{Ticker: "AAPL", Start: "June 1st", End: "2024-06-10"})
	if err == nil {
		t.Fatal("expected an error for an unparseable date")
	}
	if len(requests.seriesSeqs) != 0 {
		t.Error("unparseable date must not issue a provider request")
	}
}

func TestRefresh_DestroysChartAndResetsOverlays(t *testing.T) {
	c, surface, requests := newDrawnController(t)
	enableOverlay(t, c, requests, OverlayMedian, 100.0, 0)
	if !c.Overlay(OverlayMedian).Enabled {
		t.Fatal("median should be enabled before the refresh")
	}

	// Ticker change triggers a full refresh.
	if err := c.Refresh(Inputs{Ticker: "MSFT", Start: "2024-06-01", End: "2024-06-10"}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	c.OnSeriesData(requests.lastSeriesSeq(), testSeries(), "")

	if got := surface.labels(); len(got) != 1 || got[0] != BaseSeriesLabel {
		t.Errorf("rebuilt chart must contain only the base series, got %v", got)
	}
	if c.Overlay(OverlayMedian).Enabled {
		t.Error("median must be disabled after an input change until re-toggled")
	}
}

func TestSeriesError_ClearsChart(t *testing.T) {
	c, surface, requests := newDrawnController(t)

	if err := c.Refresh(validInputs()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	c.OnSeriesData(requests.lastSeriesSeq(), market.Series{}, "No data for selected range")

	if surface.active {
		t.Error("series error must destroy the chart")
	}
	if !c.Series().IsEmpty() {
		t.Error("series error must clear the stored series")
	}
	if snap := c.Snapshot(); snap.SeriesError != "No data for selected range" {
		t.Errorf("expected the provider message in the snapshot, got %q", snap.SeriesError)
	}
}

func TestToggle_OnHasLatencyWindow(t *testing.T) {
	c, surface, requests := newDrawnController(t)

	c.Toggle(OverlayMean)

	if !c.Overlay(OverlayMean).Enabled {
		t.Error("toggle-on must flip the flag immediately")
	}
	if len(requests.statReqs) != 1 || requests.statReqs[0].Kind != OverlayMean {
		t.Fatalf("expected one mean request, got %v", requests.statReqs)
	}
	// No dataset until the response arrives.
	if hasLabel(surface.datasets, MeanLabel) {
		t.Error("no overlay dataset may appear before the response")
	}
}

func TestToggle_OffIsLocalAndExact(t *testing.T) {
	c, surface, requests := newDrawnController(t)
	enableOverlay(t, c, requests, OverlayMean, 101.25, 0)
	enableOverlay(t, c, requests, OverlayStd, 105.0, 95.0)
	statReqsBefore := len(requests.statReqs)

	c.Toggle(OverlayStd)

	// Only std's two datasets are removed; mean survives.
	if hasLabel(surface.datasets, StdUpperLabel) || hasLabel(surface.datasets, StdLowerLabel) {
		t.Errorf("std datasets must be removed, got %v", surface.labels())
	}
	if !hasLabel(surface.datasets, MeanLabel) {
		t.Error("mean dataset must survive a std toggle-off")
	}
	if len(requests.statReqs) != statReqsBefore {
		t.Error("toggle-off must not issue a provider request")
	}
	if c.Overlay(OverlayStd).Enabled {
		t.Error("std must be disabled after toggle-off")
	}
}

func TestStatResult_ReplaceNotAppend(t *testing.T) {
	c, surface, requests := newDrawnController(t)
	c.Toggle(OverlayMean)
	seq := requests.lastStatSeq()

	c.OnStatResult(seq, OverlayMean, 101.0, 0, "")
	c.OnStatResult(seq, OverlayMean, 102.0, 0, "")

	count := 0
	for _, d := range surface.datasets {
		if d.Label == MeanLabel {
			count++
			if d.Data[0] != 102.0 {
				t.Errorf("expected the newer value 102.0, got %v", d.Data[0])
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one Mean dataset, got %d", count)
	}
}

func TestStatResult_ErrorIsolatesOtherOverlays(t *testing.T) {
	c, surface, requests := newDrawnController(t)
	enableOverlay(t, c, requests, OverlayMean, 101.25, 0)

	c.Toggle(OverlayStd)
	c.OnStatResult(requests.lastStatSeq(), OverlayStd, 0, 0, "Only one price point")

	std := c.Overlay(OverlayStd)
	if std.Enabled {
		t.Error("a failed stat request must force the toggle back off")
	}
	if std.ErrorMsg != "Only one price point" {
		t.Errorf("expected the error in std's slot, got %q", std.ErrorMsg)
	}

	mean := c.Overlay(OverlayMean)
	if !mean.Enabled || mean.ErrorMsg != "" {
		t.Error("mean's state must be unaffected by std's failure")
	}
	if !hasLabel(surface.datasets, MeanLabel) {
		t.Error("mean's dataset must be unaffected by std's failure")
	}
}

func TestStatResult_StdDoubleDataset(t *testing.T) {
	c, surface, requests := newDrawnController(t)

	c.Toggle(OverlayStd)
	c.OnStatResult(requests.lastStatSeq(), OverlayStd, 105.2, 95.8, "")

	series := testSeries()
	for _, want := range []struct {
		label string
		value float64
	}{
		{StdUpperLabel, 105.2},
		{StdLowerLabel, 95.8},
	} {
		var found *Dataset
		for i := range surface.datasets {
			if surface.datasets[i].Label == want.label {
				found = &surface.datasets[i]
				break
			}
		}
		if found == nil {
			t.Fatalf("missing dataset %q", want.label)
		}
		if len(found.Data) != series.Len() {
			t.Errorf("%s: expected %d points, got %d", want.label, series.Len(), len(found.Data))
		}
		for _, v := range found.Data {
			if v != want.value {
				t.Errorf("%s: expected all points %v, got %v", want.label, want.value, v)
			}
		}
	}
}

func TestStatResult_NoChartIsNoOp(t *testing.T) {
	c, surface, requests := newDrawnController(t)
	c.Toggle(OverlayMean)
	seq := requests.lastStatSeq()

	// Base-series failure destroys the chart before the stat answer
	// arrives.
	if err := c.Refresh(validInputs()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	c.OnSeriesData(requests.lastSeriesSeq(), market.Series{}, "No data available")

	c.OnStatResult(seq, OverlayMean, 101.0, 0, "")
	if surface.active || len(surface.datasets) != 0 {
		t.Error("a stat response with no chart must draw nothing")
	}
}

func TestFencing_StaleSeriesResponseDiscarded(t *testing.T) {
	c, surface, requests := newDrawnController(t)

	if err := c.Refresh(validInputs()); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	staleSeq := requests.lastSeriesSeq()
	if err := c.Refresh(validInputs()); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	freshSeq := requests.lastSeriesSeq()

	stale := market.Series{X: []string{"06/01/2024"}, Y: []float64{1.0}}
	c.OnSeriesData(staleSeq, stale, "")
	if surface.active {
		t.Error("a stale series response must be discarded")
	}

	c.OnSeriesData(freshSeq, testSeries(), "")
	if !surface.active || len(surface.axisLabels) != testSeries().Len() {
		t.Error("the latest series response must be applied")
	}
}

func TestFencing_ToggleOffInvalidatesInFlightStat(t *testing.T) {
	c, surface, requests := newDrawnController(t)

	c.Toggle(OverlayMean)
	inFlight := requests.lastStatSeq()
	c.Toggle(OverlayMean) // off again before the answer arrives

	c.OnStatResult(inFlight, OverlayMean, 101.0, 0, "")

	if hasLabel(surface.datasets, MeanLabel) {
		t.Error("a response from before the toggle-off must never draw")
	}
	if c.Overlay(OverlayMean).Enabled {
		t.Error("mean must stay disabled")
	}
}

func TestFencing_RetoggleSupersedesOldRequest(t *testing.T) {
	c, surface, requests := newDrawnController(t)

	c.Toggle(OverlayMean)
	oldSeq := requests.lastStatSeq()
	c.Toggle(OverlayMean)
	c.Toggle(OverlayMean)
	newSeq := requests.lastStatSeq()
	if newSeq == oldSeq {
		t.Fatal("re-toggle must issue a new sequence number")
	}

	// Responses arrive out of issuance order.
	c.OnStatResult(newSeq, OverlayMean, 102.0, 0, "")
	c.OnStatResult(oldSeq, OverlayMean, 101.0, 0, "")

	for _, d := range surface.datasets {
		if d.Label == MeanLabel && d.Data[0] != 102.0 {
			t.Errorf("the newest request must win, got %v", d.Data[0])
		}
	}
}

func TestToggle_WithoutChartContext(t *testing.T) {
	surface := &fakeSurface{}
	requests := &fakeRequester{}
	c := NewController(surface, requests)

	c.Toggle(OverlayMean)

	state := c.Overlay(OverlayMean)
	if state.Enabled {
		t.Error("toggle with no request context must revert to off")
	}
	if state.ErrorMsg == "" {
		t.Error("expected a localized error message")
	}
	if len(requests.statReqs) != 0 {
		t.Error("no provider request may be issued without a context")
	}
}

func TestSnapshot_ReflectsSurfaceAndOverlays(t *testing.T) {
	c, _, requests := newDrawnController(t)
	enableOverlay(t, c, requests, OverlayMean, 101.25, 0)

	snap := c.Snapshot()
	if !snap.ChartLive {
		t.Fatal("snapshot must report a live chart")
	}
	if len(snap.Datasets) != 2 {
		t.Errorf("expected base + mean datasets, got %d", len(snap.Datasets))
	}
	if !snap.Overlays[OverlayMean].Enabled {
		t.Error("snapshot must report mean enabled")
	}
	if snap.Inputs.Ticker != "AAPL" {
		t.Errorf("snapshot must carry the captured inputs, got %q", snap.Inputs.Ticker)
	}
}
