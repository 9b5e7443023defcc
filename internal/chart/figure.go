// Package chart shapes cached adoption series into figures and renders them
// as standalone SVG for the dashboard.
package chart

import (
	"fmt"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// Palette shared by the SVG renderer and the dashboard stylesheet.
const (
	Background = "#0f172a"
	GridColor  = "#1e293b"
	AxisColor  = "#94a3b8"
	LegendBG   = "#1e293b"
	LegendEdge = "#334155"
	TitleColor = "#ffffff"
)

// FillAlpha is the opacity of the area under a single-framework curve.
const FillAlpha = 0.1

// DefaultMaxPoints bounds the points per trace sent to the browser.
const DefaultMaxPoints = 600

// Trace is one line on a figure.
type Trace struct {
	Name   string            `json:"name"`
	Color  string            `json:"color"`
	Fill   string            `json:"fill,omitempty"` // rgba(); empty means no area fill
	Points []adoption.Sample `json:"points"`
}

// Figure is a titled set of traces sharing one time axis.
type Figure struct {
	Title      string  `json:"title"`
	XLabel     string  `json:"x_label"`
	YLabel     string  `json:"y_label"`
	ShowLegend bool    `json:"show_legend"`
	Traces     []Trace `json:"traces"`
}

// SingleFigure builds the main chart for one framework: its series from the
// launch date on, drawn in the framework color with a translucent fill.
func SingleFigure(fw adoption.Framework, s adoption.Series, maxPoints int) Figure {
	fill, err := RGBA(fw.Color(), FillAlpha)
	if err != nil {
		fill = ""
	}
	return Figure{
		Title:  "Adoption curve - " + fw.Name(),
		XLabel: "Year",
		YLabel: "Adoption (%)",
		Traces: []Trace{{
			Name:   fw.Name(),
			Color:  fw.Color(),
			Fill:   fill,
			Points: Downsample(s.Since(fw.LaunchDate()), maxPoints),
		}},
	}
}

// ComparisonFigure overlays every framework in catalog order.
func ComparisonFigure(entries []adoption.Entry, maxPoints int) Figure {
	fig := Figure{
		Title:      "All frameworks compared",
		XLabel:     "Year",
		YLabel:     "Adoption (%)",
		ShowLegend: true,
		Traces:     make([]Trace, 0, len(entries)),
	}
	for _, e := range entries {
		fig.Traces = append(fig.Traces, Trace{
			Name:   e.Framework.Name(),
			Color:  e.Framework.Color(),
			Points: Downsample(e.Series.Since(e.Framework.LaunchDate()), maxPoints),
		})
	}
	return fig
}

// Downsample strides s so that at most about maxPoints samples remain. The
// last sample is always kept. maxPoints <= 0 keeps everything.
func Downsample(s adoption.Series, maxPoints int) []adoption.Sample {
	if maxPoints <= 0 || s.Len() <= maxPoints {
		return s.Samples()
	}
	stride := (s.Len() + maxPoints - 1) / maxPoints
	return s.Stride(stride)
}

// RGBA converts #RRGGBB and an alpha into a CSS rgba() color.
func RGBA(color string, alpha float64) (string, error) {
	r, g, b, err := adoption.RGB(color)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, alpha), nil
}
