package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/uptake/internal/ui"
)

// renderCards lays the cards out in one row, or two per row when narrow.
func renderCards(cards []ui.Card, width int) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := len(cards)
	if width < CompactWidth {
		perRow = 2
	}
	// border (2) and padding (2) per card
	cardW := max(width/perRow-4, 8)

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		tiles := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			body := styleCardValue.Render(truncate(c.Value, cardW)) + "\n" +
				styleCardLabel.Render(truncate(c.Label, cardW))
			tiles = append(tiles, styleCard.Width(cardW+2).Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
