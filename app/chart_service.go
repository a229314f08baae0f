package app

import (
	"context"
	"sync"

	"github.com/JoseExp44/StockWebApp/adapters/surface"
	"github.com/JoseExp44/StockWebApp/domain/chart"
	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal"
	"github.com/JoseExp44/StockWebApp/ports"
)

// SnapshotListener receives the full render state after every applied
// event
type SnapshotListener func(chart.Snapshot)

// ChartService hosts one chart controller behind a single event loop.
// User actions and provider responses are posted as thunks onto one
// channel and applied in arrival order, which gives the controller the
// single-threaded context its contract requires. After every applied
// event the current snapshot is pushed to the registered listener (the
// SSE mirror).
type ChartService struct {
	provider   ports.Provider
	surface    *surface.Memory
	controller *chart.Controller
	log        *internal.Logger

	events chan func()
	done   chan struct{}

	listenerMu sync.Mutex
	listener   SnapshotListener
}

// NewChartService creates a chart service and starts its event loop
func NewChartService(provider ports.Provider, log *internal.Logger) *ChartService {
	if log == nil {
		log = internal.DefaultLogger
	}
	s := &ChartService{
		provider: provider,
		surface:  surface.NewMemory(),
		log:      log,
		events:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
	s.controller = chart.NewController(s.surface, s)
	go s.run()
	return s
}

// run applies queued events one at a time until Close
func (s *ChartService) run() {
	for {
		select {
		case fn := <-s.events:
			fn()
			s.publish()
		case <-s.done:
			return
		}
	}
}

// post queues a thunk for the event loop. Called from HTTP handler and
// provider goroutines, never from inside the loop itself.
func (s *ChartService) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

func (s *ChartService) publish() {
	s.listenerMu.Lock()
	listener := s.listener
	s.listenerMu.Unlock()
	if listener != nil {
		listener(s.controller.Snapshot())
	}
}

// SetListener registers the snapshot consumer
func (s *ChartService) SetListener(fn SnapshotListener) {
	s.listenerMu.Lock()
	s.listener = fn
	s.listenerMu.Unlock()
}

// Close stops the event loop. Outstanding provider responses are
// dropped.
func (s *ChartService) Close() {
	close(s.done)
}

// Refresh validates the inputs and rebuilds the chart. The validation
// verdict is returned synchronously so the HTTP layer can answer 400 on
// a bad range; the series itself arrives later through the snapshot
// stream.
func (s *ChartService) Refresh(inputs chart.Inputs) error {
	errc := make(chan error, 1)
	s.post(func() {
		errc <- s.controller.Refresh(inputs)
	})
	select {
	case err := <-errc:
		return err
	case <-s.done:
		return nil
	}
}

// Toggle flips one overlay
func (s *ChartService) Toggle(kind chart.OverlayKind) {
	s.post(func() {
		s.controller.Toggle(kind)
	})
}

// Snapshot returns the current render state, serialized through the
// event loop
func (s *ChartService) Snapshot() chart.Snapshot {
	snapc := make(chan chart.Snapshot, 1)
	s.post(func() {
		snapc <- s.controller.Snapshot()
	})
	select {
	case snap := <-snapc:
		return snap
	case <-s.done:
		return chart.Snapshot{}
	}
}

// RequestSeries implements chart.Requester: it forwards the request to
// the provider and routes the asynchronous result back onto the event
// loop.
func (s *ChartService) RequestSeries(ticker string, r market.DateRange, seq uint64) {
	req := ports.SeriesRequest{Ticker: ticker, Range: r, Seq: seq}
	s.provider.RequestSeries(context.Background(), req, func(res ports.SeriesResult) {
		s.post(func() {
			s.controller.OnSeriesData(res.Seq, res.Series, res.ErrorMsg)
		})
	})
}

// RequestStat implements chart.Requester for statistic requests
func (s *ChartService) RequestStat(ticker string, r market.DateRange, kind chart.OverlayKind, seq uint64) {
	req := ports.StatRequest{Ticker: ticker, Range: r, Kind: kind, Seq: seq}
	s.provider.RequestStat(context.Background(), req, func(res ports.StatResult) {
		s.post(func() {
			s.controller.OnStatResult(res.Seq, res.Kind, res.Upper, res.Lower, res.ErrorMsg)
		})
	})
}
