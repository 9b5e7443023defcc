package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

func TestSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		width  int
		ceil   float64
		want   string
	}{
		{"empty", nil, 10, 1, ""},
		{"zero width", []float64{1}, 0, 1, ""},
		{"full scale", []float64{0, 0.5, 1}, 3, 1, " ▄█"},
		{"narrower than data keeps peaks", []float64{0, 1, 0, 0}, 2, 1, "█ "},
		{"wider than data", []float64{1, 1}, 10, 1, "██"},
		{"values above ceil clamp", []float64{5}, 1, 1, "█"},
		{"non-positive ceil", []float64{0, 1}, 2, 0, " █"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sparkline(tt.values, tt.width, tt.ceil); got != tt.want {
				t.Errorf("Sparkline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSparkline_WidthBound(t *testing.T) {
	t.Parallel()
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i)
	}
	got := Sparkline(values, 80, 999)
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Errorf("rune count = %d, want 80", n)
	}
	if !strings.HasSuffix(got, "█") {
		t.Errorf("last cell should be full: %q", got)
	}
}

func TestFooter_CompactDropsDescriptions(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	wide := Footer{Width: 120, Bindings: FooterBindings(km)}.View()
	if !strings.Contains(wide, "quit") {
		t.Errorf("wide footer should include descriptions: %q", wide)
	}
	narrow := Footer{Width: 40, Bindings: FooterBindings(km)}.View()
	if strings.Contains(narrow, "quit") {
		t.Errorf("compact footer should omit descriptions: %q", narrow)
	}

	km.Top.SetEnabled(false)
	if got := (Footer{Width: 120, Bindings: []key.Binding{km.Top}}).View(); strings.Contains(got, "first") {
		t.Errorf("disabled binding rendered: %q", got)
	}
}
