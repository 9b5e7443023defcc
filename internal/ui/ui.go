// Package ui provides lipgloss-styled CLI output for uptake. Status lines go
// to stderr so command output on stdout stays pipeable.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// Printer writes styled status lines.
type Printer struct {
	out io.Writer

	bold    lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	danger  lipgloss.Style
	r       *lipgloss.Renderer
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter returns a Printer writing to w. Colors are only emitted when
// w is a terminal.
func NewWithWriter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:     w,
		r:       r,
		bold:    r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		accent:  r.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#00E676")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		danger:  r.NewStyle().Foreground(lipgloss.Color("#FF5252")).Bold(true),
	}
}

func (p *Printer) Banner(version string) {
	fmt.Fprintln(p.out, p.accent.Render("uptake")+" "+p.dim.Render("framework adoption model "+version))
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.dim.Render(msg))
}

func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.success.Render("✓ ")+msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.out, p.warn.Render("⚠ ")+msg)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.danger.Render("error: ")+msg)
}

// Listening announces the dashboard URL.
func (p *Printer) Listening(url string, mcp bool) {
	fmt.Fprintln(p.out, p.accent.Render("◆ dashboard ")+p.bold.Render(url))
	if mcp {
		fmt.Fprintln(p.out, p.accent.Render("◆ mcp       ")+p.bold.Render(strings.TrimSuffix(url, "/")+"/mcp"))
	}
}

// ValidateResult reports the outcome of validating a catalog file.
func (p *Printer) ValidateResult(path string, cat *adoption.Catalog, err error) {
	if err == nil {
		p.Success(fmt.Sprintf("%s: %d framework(s), no errors", path, cat.Len()))
		return
	}
	fmt.Fprintln(p.out, p.danger.Render("✗ ")+path)
	var verr *adoption.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(p.out, "  %s %s\n", p.danger.Render("•"), verr.Error())
		fmt.Fprintf(p.out, "    %s\n", p.dim.Render("category: "+string(verr.Category)))
		return
	}
	fmt.Fprintf(p.out, "  %s %s\n", p.danger.Render("•"), err.Error())
}

// Frameworks renders the catalog as a table with the modeled adoption at the
// cache's reference date.
func (p *Printer) Frameworks(cache *adoption.Cache) {
	head := p.r.NewStyle().Bold(true).Padding(0, 1)
	cell := p.r.NewStyle().Padding(0, 1)
	num := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.dim).
		Headers("NAME", "LAUNCH", "COLOR", "NPM/WEEK", "STARS", "R", "K", "D", "U0", "TODAY %").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return head
			case col >= 3:
				return num
			default:
				return cell
			}
		})
	for _, e := range cache.Entries() {
		fw := e.Framework
		pr := fw.Params()
		today := "-"
		if sm, ok := e.Series.ValueAt(cache.Now()); ok {
			today = FormatPercent(sm.Adoption)
		}
		t.Row(
			fw.Name(),
			fw.LaunchDateString(),
			fw.Color(),
			Thousands(fw.NPMWeekly()),
			Thousands(fw.GitHubStars()),
			strconv.FormatFloat(pr.R, 'f', 2, 64),
			strconv.FormatFloat(pr.K, 'f', 2, 64),
			strconv.FormatFloat(pr.D, 'f', 2, 64),
			strconv.FormatFloat(pr.U0, 'g', -1, 64),
			today,
		)
	}
	fmt.Fprintln(p.out, t.Render())
}

// Thousands formats n with comma separators: 25000000 -> "25,000,000".
func Thousands(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent renders an adoption percentage with two decimals.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
