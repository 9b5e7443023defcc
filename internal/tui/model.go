package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/ui"
)

// MsgReloaded is sent when the catalog reloader finishes. Err is set when
// the new file was rejected and the previous cache is still served.
type MsgReloaded struct {
	Generation uint64
	Err        error
}

// Model is the root BubbleTea model. It reads everything from the cache
// source on each render; moving the selection never simulates.
type Model struct {
	Source   adoption.Source
	Keys     KeyMap
	Selected string // framework name
	Width    int
	Height   int
	Notice   string // last reload rejection, cleared on success
	Quitting bool
}

// NewModel creates a model selecting the first framework of the current
// cache.
func NewModel(src adoption.Source) Model {
	m := Model{Source: src, Keys: DefaultKeyMap()}
	if c := src.Current(); c != nil && c.Catalog().Len() > 0 {
		m.Selected = c.Catalog().First().Name()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key presses, resizes and reload notifications.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Up):
			m.move(-1)
		case key.Matches(msg, m.Keys.Down):
			m.move(1)
		case key.Matches(msg, m.Keys.Top):
			m.jump(0)
		case key.Matches(msg, m.Keys.Bottom):
			m.jump(-1)
		}

	case MsgReloaded:
		if msg.Err != nil {
			m.Notice = "catalog rejected: " + msg.Err.Error()
			break
		}
		m.Notice = ""
		m.keepSelection()
	}
	return m, nil
}

// selectedIndex returns the catalog position of the selection, or 0 when
// the selected name is no longer in the catalog.
func (m Model) selectedIndex(cat *adoption.Catalog) int {
	for i, name := range cat.Names() {
		if name == m.Selected {
			return i
		}
	}
	return 0
}

func (m *Model) move(delta int) {
	c := m.Source.Current()
	if c == nil {
		return
	}
	names := c.Catalog().Names()
	i := m.selectedIndex(c.Catalog()) + delta
	i = max(0, min(len(names)-1, i))
	m.Selected = names[i]
}

// jump selects position i; negative i counts from the end.
func (m *Model) jump(i int) {
	c := m.Source.Current()
	if c == nil {
		return
	}
	names := c.Catalog().Names()
	if i < 0 {
		i = len(names) + i
	}
	m.Selected = names[max(0, min(len(names)-1, i))]
}

// keepSelection falls back to the first framework when a reload removed
// the selected one.
func (m *Model) keepSelection() {
	c := m.Source.Current()
	if c == nil {
		return
	}
	if _, ok := c.Catalog().Lookup(m.Selected); !ok {
		m.Selected = c.Catalog().First().Name()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.Width == 0 {
		return "initializing..."
	}
	c := m.Source.Current()
	if c == nil {
		return styleError.Render("no series cache loaded")
	}

	cat := c.Catalog()
	fw, ok := cat.Lookup(m.Selected)
	if !ok {
		fw = cat.First()
	}
	s, err := c.Series(fw.Name())
	if err != nil {
		return styleError.Render(err.Error())
	}

	sections := []string{
		styleHeader.Width(m.Width).Render("Framework adoption model"),
		styleSubtitle.Render(fmt.Sprintf(" generation %d · %s", c.Generation(), c.Now().Format(adoption.DateLayout))),
	}
	if m.Notice != "" {
		sections = append(sections, styleError.Render(m.Notice))
	}

	list := m.renderList(cat, fw.Name())
	cards := renderCards(ui.StatCards(fw, s, c.Now()), max(m.Width-lipgloss.Width(list)-2, CompactWidth/2))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", cards))

	sections = append(sections,
		styleSection.Render("Adoption curve - "+fw.Name()),
		m.renderSpark(fw, s),
		styleSection.Render("Adoption today"),
		renderComparison(c.Entries(), c.Now(), m.Width),
		"",
		Footer{Width: m.Width, Bindings: FooterBindings(m.Keys)}.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderList(cat *adoption.Catalog, selected string) string {
	var b strings.Builder
	for i, fw := range cat.Frameworks() {
		if i > 0 {
			b.WriteByte('\n')
		}
		dot := frameworkStyle(fw.Color()).Render("●")
		if fw.Name() == selected {
			b.WriteString(styleIndicator.Render(selectionIndicator) + dot + " " + styleRowSelected.Render(fw.Name()))
		} else {
			b.WriteString(" " + dot + " " + styleRowNormal.Render(fw.Name()))
		}
	}
	return b.String()
}

// renderSpark draws the selected series from launch on, with the first and
// last year underneath.
func (m Model) renderSpark(fw adoption.Framework, s adoption.Series) string {
	visible := s.Since(fw.LaunchDate())
	if visible.Len() == 0 {
		return styleAxis.Render("(no samples yet)")
	}
	width := max(m.Width-2, minSparkWidth)
	values := make([]float64, visible.Len())
	for i := range values {
		values[i] = visible.At(i).Adoption
	}
	ceil := fw.Params().K * 100
	if peak, ok := visible.Peak(); ok && peak.Adoption > ceil {
		ceil = peak.Adoption
	}
	line := frameworkStyle(fw.Color()).Render(Sparkline(values, width, ceil))

	first, _ := visible.First()
	last, _ := visible.Last()
	from, to := first.Date.Format("2006"), last.Date.Format("2006")
	gap := max(lipgloss.Width(line)-len(from)-len(to), 1)
	axis := styleAxis.Render(from + strings.Repeat(" ", gap) + to)
	return line + "\n" + axis
}
