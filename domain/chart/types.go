package chart

import (
	"fmt"

	"github.com/JoseExp44/StockWebApp/domain/market"
)

// OverlayKind identifies one toggle-able statistical overlay. The set is
// closed; there is no dynamic registration.
type OverlayKind string

const (
	OverlayMean   OverlayKind = "mean"
	OverlayMedian OverlayKind = "median"
	OverlayStd    OverlayKind = "std"
)

// Kinds returns all overlay kinds in display order
func Kinds() []OverlayKind {
	return []OverlayKind{OverlayMean, OverlayMedian, OverlayStd}
}

// ParseOverlayKind validates a wire value against the closed kind set
func ParseOverlayKind(s string) (OverlayKind, error) {
	switch OverlayKind(s) {
	case OverlayMean, OverlayMedian, OverlayStd:
		return OverlayKind(s), nil
	}
	return "", fmt.Errorf("unknown overlay kind %q", s)
}

// String returns the string representation
func (k OverlayKind) String() string {
	return string(k)
}

// Dataset labels. Labels are unique keys on the rendering surface: at
// most one dataset per label exists at any time.
const (
	BaseSeriesLabel	= "Close"
	MeanLabel	= "Mean"
	MedianLabel	= "Median"
	StdUpperLabel	= "Mean + Std Dev"
	StdLowerLabel	= "Mean - Std Dev"
)

// Labels returns the dataset label(s) owned by the kind: one line for
// mean/median, the two band edges for std.
func (k OverlayKind) Labels() []string {
	switch k {
	case OverlayMean:
		return []string{MeanLabel}
	case OverlayMedian:
		return []string{MedianLabel}
	case OverlayStd:
		return []string{StdUpperLabel, StdLowerLabel}
	}
	return nil
}

// DatasetStyle carries the rendering hints for one line. Purely a
// presentation concern; correctness never depends on it.
type DatasetStyle struct {
	Color       string `json:"color"`
	Dashed      bool   `json:"dashed"`
	PointRadius int    `json:"pointRadius"`
}

// Dataset is one named line over the shared category axis
type Dataset struct {
	Label string       `json:"label"`
	Data  []float64    `json:"data"`
	Style DatasetStyle `json:"style"`
}

var overlayColors = map[string]string{
	MeanLabel:     "#e6a817",
	MedianLabel:   "#9467bd",
	StdUpperLabel: "#2ca02c",
	StdLowerLabel: "#d62728",
}

// BaseDataset builds the base series line
func BaseDataset(series market.Series) Dataset {
	return Dataset{
		Label: BaseSeriesLabel,
		Data:  series.Y,
		Style: DatasetStyle{Color: "#1f77b4", PointRadius: 2},
	}
}

// ConstantDataset builds a horizontal overlay line: the value repeated
// once per category of the current base series. A zero-length axis
// yields a zero-length (invisible) line, which is accepted behavior.
func ConstantDataset(label string, value float64, axisLen int) Dataset {
	data := make([]float64, axisLen)
	for i := range data {
		data[i] = value
	}
	color := overlayColors[label]
	return Dataset{
		Label: label,
		Data:  data,
		Style: DatasetStyle{Color: color, Dashed: true, PointRadius: 0},
	}
}

// OverlayState tracks one overlay's toggle flag and error slot
type OverlayState struct {
	Enabled  bool
	ErrorMsg string
}

// Inputs is the captured request context: the ticker and date window in
// effect at the moment of the triggering user action.
type Inputs struct {
	Ticker string `json:"ticker"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// OverlayView is the read-only overlay state exposed to the UI mirror
type OverlayView struct {
	Enabled  bool   `json:"enabled"`
	ErrorMsg string `json:"errorMsg,omitempty"`
}

// Snapshot is the full render state pushed to the UI mirror after every
// mutation: chart liveness, axis, ordered datasets, and error slots.
type Snapshot struct {
	ChartLive   bool                        `json:"chartLive"`
	AxisLabels  []string                    `json:"axisLabels"`
	Datasets    []Dataset                   `json:"datasets"`
	SeriesError string                      `json:"seriesError,omitempty"`
	RangeError  string                      `json:"rangeError,omitempty"`
	Overlays    map[OverlayKind]OverlayView `json:"overlays"`
	Inputs      Inputs                      `json:"inputs"`
}
