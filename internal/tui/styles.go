package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // selection accent
	colorMuted       = lipgloss.Color("#64748B") // card labels
	colorMutedLight  = lipgloss.Color("#94A3B8") // axis and secondary text
	colorBrightWhite = lipgloss.Color("#FFFFFF")
	colorSurface     = lipgloss.Color("#0F172A") // page background
	colorSurfaceDim  = lipgloss.Color("#1E293B")
	colorBorder      = lipgloss.Color("#334155")
	colorDanger      = lipgloss.Color("#FF5252")
)

// Layout thresholds.
const (
	// CompactWidth drops footer descriptions and stacks cards two per row.
	CompactWidth = 60
	// minSparkWidth is the narrowest sparkline worth drawing.
	minSparkWidth = 10
)

const selectionIndicator = "▎"

var (
	styleHeader = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorBrightWhite).
			Bold(true).
			Padding(0, 1)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleIndicator = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// Stat card styles.
var (
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleCardValue = lipgloss.NewStyle().
			Foreground(colorBrightWhite).
			Bold(true)

	styleCardLabel = lipgloss.NewStyle().
			Foreground(colorMuted)
)

var (
	styleSection = lipgloss.NewStyle().
			Foreground(colorBrightWhite).
			Bold(true).
			MarginTop(1)

	styleAxis = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)

// frameworkStyle colors text in a framework's own color.
func frameworkStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
