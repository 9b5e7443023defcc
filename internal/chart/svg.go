package chart

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"
)

// Size is the SVG viewBox in user units.
type Size struct {
	Width, Height int
}

// DefaultSize matches the 500px-high dashboard panels.
var DefaultSize = Size{Width: 1000, Height: 500}

const (
	marginLeft   = 60
	marginRight  = 40
	marginTop    = 60
	marginBottom = 60
	lineWidth    = 3
	yTicks       = 5
	maxYearTicks = 12
)

// plot maps data coordinates onto the drawing area.
type plot struct {
	x0, x1    float64 // unix seconds
	yMax      float64
	left, top float64
	w, h      float64
}

func (p plot) x(t time.Time) float64 {
	if p.x1 == p.x0 {
		return p.left
	}
	return p.left + (float64(t.Unix())-p.x0)/(p.x1-p.x0)*p.w
}

func (p plot) y(v float64) float64 {
	return p.top + p.h - v/p.yMax*p.h
}

// SVG renders f as a self-contained <svg> element.
func (f Figure) SVG(size Size) string {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-label="%s">`,
		size.Width, size.Height, html.EscapeString(f.Title))
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, size.Width, size.Height, Background)
	fmt.Fprintf(&b, `<text x="%d" y="32" fill="%s" font-size="20">%s</text>`, marginLeft, TitleColor, html.EscapeString(f.Title))

	p, ok := f.bounds(size)
	if !ok {
		fmt.Fprintf(&b, `<text x="%d" y="%d" fill="%s" text-anchor="middle">no data</text>`,
			size.Width/2, size.Height/2, AxisColor)
		b.WriteString(`</svg>`)
		return b.String()
	}

	writeGrid(&b, p)
	writeAxisLabels(&b, f, p, size)
	for _, tr := range f.Traces {
		writeTrace(&b, tr, p)
	}
	if f.ShowLegend {
		writeLegend(&b, f.Traces, size)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// bounds computes the shared axis domain. The y axis always starts at zero.
func (f Figure) bounds(size Size) (plot, bool) {
	var lo, hi time.Time
	yMax := 0.0
	n := 0
	for _, tr := range f.Traces {
		for _, pt := range tr.Points {
			if n == 0 || pt.Date.Before(lo) {
				lo = pt.Date
			}
			if n == 0 || pt.Date.After(hi) {
				hi = pt.Date
			}
			yMax = math.Max(yMax, pt.Adoption)
			n++
		}
	}
	if n == 0 {
		return plot{}, false
	}
	return plot{
		x0:   float64(lo.Unix()),
		x1:   float64(hi.Unix()),
		yMax: niceCeil(yMax),
		left: marginLeft,
		top:  marginTop,
		w:    float64(size.Width - marginLeft - marginRight),
		h:    float64(size.Height - marginTop - marginBottom),
	}, true
}

// niceCeil rounds v up to the next multiple of 10, with a floor of 1 so an
// all-zero series still has a visible axis.
func niceCeil(v float64) float64 {
	if v <= 1 {
		return 1
	}
	return math.Ceil(v/10) * 10
}

func writeGrid(b *strings.Builder, p plot) {
	for i := 0; i <= yTicks; i++ {
		v := p.yMax * float64(i) / yTicks
		y := p.y(v)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`,
			p.left, y, p.left+p.w, y, GridColor)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="end">%s</text>`,
			p.left-8, y+4, AxisColor, formatTick(v))
	}
	for _, t := range yearTicks(p) {
		x := p.x(t)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`,
			x, p.top, x, p.top+p.h, GridColor)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="middle">%d</text>`,
			x, p.top+p.h+18, AxisColor, t.Year())
	}
}

// yearTicks returns January 1st of each year inside the x domain, thinned
// to at most maxYearTicks labels.
func yearTicks(p plot) []time.Time {
	lo := time.Unix(int64(p.x0), 0).UTC()
	hi := time.Unix(int64(p.x1), 0).UTC()
	first := lo.Year()
	if !lo.Equal(time.Date(first, 1, 1, 0, 0, 0, 0, time.UTC)) {
		first++
	}
	years := hi.Year() - first + 1
	if years <= 0 {
		return nil
	}
	every := (years + maxYearTicks - 1) / maxYearTicks
	var out []time.Time
	for y := first; y <= hi.Year(); y += every {
		out = append(out, time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC))
	}
	return out
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func writeAxisLabels(b *strings.Builder, f Figure, p plot, size Size) {
	if f.XLabel != "" {
		fmt.Fprintf(b, `<text x="%.1f" y="%d" fill="%s" font-size="14" text-anchor="middle">%s</text>`,
			p.left+p.w/2, size.Height-12, AxisColor, html.EscapeString(f.XLabel))
	}
	if f.YLabel != "" {
		cy := p.top + p.h/2
		fmt.Fprintf(b, `<text x="16" y="%.1f" fill="%s" font-size="14" text-anchor="middle" transform="rotate(-90 16 %.1f)">%s</text>`,
			cy, AxisColor, cy, html.EscapeString(f.YLabel))
	}
}

func writeTrace(b *strings.Builder, tr Trace, p plot) {
	if len(tr.Points) == 0 {
		return
	}
	var d strings.Builder
	for i, pt := range tr.Points {
		cmd := 'L'
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(&d, "%c%.1f,%.1f ", cmd, p.x(pt.Date), p.y(pt.Adoption))
	}
	line := strings.TrimSpace(d.String())

	if tr.Fill != "" {
		first, last := tr.Points[0], tr.Points[len(tr.Points)-1]
		base := p.top + p.h
		fmt.Fprintf(b, `<path d="%s L%.1f,%.1f L%.1f,%.1f Z" fill="%s" stroke="none"/>`,
			line, p.x(last.Date), base, p.x(first.Date), base, tr.Fill)
	}
	fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-linejoin="round"><title>%s</title></path>`,
		line, tr.Color, lineWidth, html.EscapeString(tr.Name))
}

func writeLegend(b *strings.Builder, traces []Trace, size Size) {
	if len(traces) == 0 {
		return
	}
	const rowH, boxW = 20, 150
	x := float64(size.Width - marginRight - boxW)
	y := float64(marginTop + 8)
	fmt.Fprintf(b, `<g class="legend"><rect x="%.1f" y="%.1f" width="%d" height="%d" fill="%s" stroke="%s"/>`,
		x, y, boxW, rowH*len(traces)+8, LegendBG, LegendEdge)
	for i, tr := range traces {
		ry := y + 4 + float64(i*rowH) + rowH/2
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%d"/>`,
			x+8, ry, x+28, ry, tr.Color, lineWidth)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" fill="%s" font-size="12">%s</text>`,
			x+36, ry+4, TitleColor, html.EscapeString(tr.Name))
	}
	b.WriteString(`</g>`)
}
