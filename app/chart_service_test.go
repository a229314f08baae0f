package app

import (
	"context"
	"testing"
	"time"

	"github.com/JoseExp44/StockWebApp/domain/chart"
	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/ports"
)

// syncProvider answers requests immediately on a goroutine with canned
// values
type syncProvider struct {
	seriesX []string
	seriesY []float64
	statVal float64
	statErr string
}

func (p *syncProvider) RequestSeries(ctx context.Context, req ports.SeriesRequest, deliver func(ports.SeriesResult)) {
	go deliver(ports.SeriesResult{
		Seq:    req.Seq,
		Series: market.Series{X: p.seriesX, Y: p.seriesY},
	})
}

func (p *syncProvider) RequestStat(ctx context.Context, req ports.StatRequest, deliver func(ports.StatResult)) {
	go deliver(ports.StatResult{
		Seq:      req.Seq,
		Kind:     req.Kind,
		Upper:    p.statVal,
		ErrorMsg: p.statErr,
	})
}

// awaitSnapshot drains the listener channel until the condition holds
func awaitSnapshot(t *testing.T, snaps <-chan chart.Snapshot, cond func(chart.Snapshot) bool) chart.Snapshot {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap := <-snaps:
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot condition")
			return chart.Snapshot{}
		}
	}
}

func newTestService(t *testing.T, p ports.Provider) (*ChartService, chan chart.Snapshot) {
	t.Helper()
	service := NewChartService(p, nil)
	t.Cleanup(service.Close)
	snaps := make(chan chart.Snapshot, 64)
	service.SetListener(func(snap chart.Snapshot) {
		select {
		case snaps <- snap:
		default:
		}
	})
	return service, snaps
}

func TestChartService_RefreshDrawsBaseSeries(t *testing.T) {
	p := &syncProvider{seriesX: []string{"06/03/2024", "06/04/2024"}, seriesY: []float64{100, 102}}
	service, snaps := newTestService(t, p)

	if err := service.Refresh(chart.Inputs{Ticker: "AAPL", Start: "2024-06-01", End: "2024-06-10"}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	snap := awaitSnapshot(t, snaps, func(s chart.Snapshot) bool { return s.ChartLive })
	if len(snap.Datasets) != 1 || snap.Datasets[0].Label != chart.BaseSeriesLabel {
		t.Errorf("expected only the base dataset, got %+v", snap.Datasets)
	}
	if len(snap.AxisLabels) != 2 {
		t.Errorf("expected the shared axis, got %v", snap.AxisLabels)
	}
}

func TestChartService_RefreshRejectsBadRange(t *testing.T) {
	service, _ := newTestService(t, &syncProvider{})

	err := service.Refresh(chart.Inputs{Ticker: "AAPL", Start: "2024-06-10", End: "2024-06-01"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestChartService_ToggleDrawsOverlay(t *testing.T) {
	p := &syncProvider{seriesX: []string{"a", "b"}, seriesY: []float64{100, 102}, statVal: 101}
	service, snaps := newTestService(t, p)

	if err := service.Refresh(chart.Inputs{Ticker: "AAPL", Start: "2024-06-01", End: "2024-06-10"}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	awaitSnapshot(t, snaps, func(s chart.Snapshot) bool { return s.ChartLive })

	service.Toggle(chart.OverlayMean)
	snap := awaitSnapshot(t, snaps, func(s chart.Snapshot) bool {
		for _, d := range s.Datasets {
			if d.Label == chart.MeanLabel {
				return true
			}
		}
		return false
	})
	if !snap.Overlays[chart.OverlayMean].Enabled {
		t.Error("mean must be enabled once drawn")
	}
}

func TestChartService_StatErrorRevertsToggle(t *testing.T) {
	p := &syncProvider{seriesX: []string{"a"}, seriesY: []float64{100}, statErr: "Only one price point"}
	service, snaps := newTestService(t, p)

	if err := service.Refresh(chart.Inputs{Ticker: "AAPL", Start: "2024-06-01", End: "2024-06-10"}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	awaitSnapshot(t, snaps, func(s chart.Snapshot) bool { return s.ChartLive })

	service.Toggle(chart.OverlayStd)
	snap := awaitSnapshot(t, snaps, func(s chart.Snapshot) bool {
		return s.Overlays[chart.OverlayStd].ErrorMsg != ""
	})
	if snap.Overlays[chart.OverlayStd].Enabled {
		t.Error("a failed stat must revert the toggle")
	}
	for _, d := range snap.Datasets {
		if d.Label == chart.StdUpperLabel || d.Label == chart.StdLowerLabel {
			t.Error("a failed stat must not draw")
		}
	}
}
