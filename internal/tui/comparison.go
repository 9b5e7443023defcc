package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/ui"
)

// renderComparison draws one horizontal bar per framework, scaled so 100%
// spans the available width.
func renderComparison(entries []adoption.Entry, now time.Time, width int) string {
	nameW := 0
	for _, e := range entries {
		nameW = max(nameW, len([]rune(e.Framework.Name())))
	}
	const valueW = 8 // " 100.00%"
	barW := max(width-nameW-valueW-2, 1)

	var b strings.Builder
	for i, e := range entries {
		v := 0.0
		if sm, ok := e.Series.ValueAt(now); ok {
			v = sm.Adoption
		}
		n := int(v / 100 * float64(barW))
		n = max(0, min(barW, n))
		bar := frameworkStyle(e.Framework.Color()).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%-*s %s%s %s",
			nameW, e.Framework.Name(),
			bar, strings.Repeat(" ", barW-n),
			styleAxis.Render(fmt.Sprintf("%7s", ui.FormatPercent(v))))
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
