package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/chart"
	"github.com/papapumpkin/uptake/internal/telemetry"
	"github.com/papapumpkin/uptake/internal/ui"
)

// pageData holds data passed to the HTML template.
type pageData struct {
	Names       []string
	Selected    string
	Color       string
	Cards       []ui.Card
	MainChart   template.HTML
	Comparison  template.HTML
	Generation  uint64
	GeneratedAt string
	Now         string
}

// handleIndex serves the dashboard for ?framework=<name>, defaulting to the
// first catalog entry.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cache := s.cfg.Source.Current()
	name := r.URL.Query().Get("framework")
	if name == "" {
		name = cache.Catalog().First().Name()
	}
	if _, ok := cache.Catalog().Lookup(name); !ok {
		http.Error(w, "unknown framework: "+name, http.StatusNotFound)
		return
	}

	key := pageKey{generation: cache.Generation(), framework: name}
	body, ok := s.pages.Get(key)
	if !ok {
		var err error
		body, err = s.renderPage(cache, name)
		if err != nil {
			s.cfg.Logger.Error("render page", "framework", name, "err", err)
			http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		s.pages.Add(key, body)
	}

	s.emit(telemetry.Event{
		Kind:       telemetry.KindSelection,
		Generation: cache.Generation(),
		Framework:  name,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (s *Server) renderPage(cache *adoption.Cache, name string) ([]byte, error) {
	fw, _ := cache.Catalog().Lookup(name)
	series, err := cache.Series(name)
	if err != nil {
		return nil, err
	}
	maxPoints := s.cfg.MaxPoints
	if maxPoints <= 0 {
		maxPoints = chart.DefaultMaxPoints
	}

	data := pageData{
		Names:       cache.Catalog().Names(),
		Selected:    name,
		Color:       fw.Color(),
		Cards:       ui.StatCards(fw, series, cache.Now()),
		Generation:  cache.Generation(),
		GeneratedAt: cache.GeneratedAt().UTC().Format("2006-01-02 15:04:05 MST"),
		Now:         cache.Now().Format(adoption.DateLayout),
		// SVG is built from validated colors and escaped names.
		MainChart:  template.HTML(chart.SingleFigure(fw, series, maxPoints).SVG(chart.DefaultSize)),       // #nosec G203
		Comparison: template.HTML(chart.ComparisonFigure(cache.Entries(), maxPoints).SVG(chart.DefaultSize)), // #nosec G203
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}
