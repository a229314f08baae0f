// Package surface provides the in-memory rendering surface. The server
// owns chart state; the browser mirrors whatever this surface holds, so
// "rendering" here is bookkeeping plus a repaint notification.
package surface

import (
	"github.com/JoseExp44/StockWebApp/domain/chart"
)

// Memory implements chart.Surface as plain in-process state. It is not
// safe for concurrent use; the owning event loop serializes access,
// matching the controller's single-threaded contract.
type Memory struct {
	active     bool
	axisLabels []string
	datasets   []chart.Dataset
	repaints   int
}

// NewMemory creates an empty surface with no chart
func NewMemory() *Memory {
	return &Memory{}
}

// Create builds a fresh chart, discarding any prior one
func (m *Memory) Create(axisLabels []string, datasets []chart.Dataset) {
	m.active = true
	m.axisLabels = append([]string(nil), axisLabels...)
	m.datasets = append([]chart.Dataset(nil), datasets...)
	m.repaint()
}

// Destroy tears down the current chart. Destroying an absent chart is a
// no-op.
func (m *Memory) Destroy() {
	if !m.active {
		return
	}
	m.active = false
	m.axisLabels = nil
	m.datasets = nil
	m.repaint()
}

// Active reports whether a chart currently exists
func (m *Memory) Active() bool {
	return m.active
}

// AxisLabels returns the shared category axis
func (m *Memory) AxisLabels() []string {
	return m.axisLabels
}

// Datasets returns the ordered dataset list
func (m *Memory) Datasets() []chart.Dataset {
	return m.datasets
}

// SetDatasets replaces the dataset list
func (m *Memory) SetDatasets(datasets []chart.Dataset) {
	m.datasets = datasets
}

// Redraw signals that mutated datasets should be repainted
func (m *Memory) Redraw() {
	if m.active {
		m.repaint()
	}
}

// Repaints returns how many repaint notifications have fired. The
// count exists for tests; the browser mirror is driven by the snapshot
// published after each applied event, not by the surface itself.
func (m *Memory) Repaints() int {
	return m.repaints
}

func (m *Memory) repaint() {
	m.repaints++
}
