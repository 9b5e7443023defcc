package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// FrameworkInfo is one catalog entry in API responses.
type FrameworkInfo struct {
	Name          string          `json:"name"`
	LaunchDate    string          `json:"launch_date"`
	Color         string          `json:"color"`
	NPMWeekly     int64           `json:"npm_weekly"`
	GitHubStars   int64           `json:"github_stars"`
	Params        adoption.Params `json:"params"`
	AdoptionToday *float64        `json:"adoption_today"`
}

// SeriesPayload is one framework's samples.
type SeriesPayload struct {
	Name    string            `json:"name"`
	Color   string            `json:"color"`
	Samples []adoption.Sample `json:"samples"`
}

// FrameworksResponse is returned by GET /api/frameworks.
type FrameworksResponse struct {
	Generation uint64          `json:"generation"`
	Now        string          `json:"now"`
	Frameworks []FrameworkInfo `json:"frameworks"`
}

// ComparisonResponse is returned by GET /api/comparison.
type ComparisonResponse struct {
	Generation uint64          `json:"generation"`
	Series     []SeriesPayload `json:"series"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status      string         `json:"status"`
	Generation  uint64         `json:"generation"`
	GeneratedAt time.Time      `json:"generated_at"`
	Samples     map[string]int `json:"samples"`
	Total       int            `json:"total"`
}

// NewFrameworkInfo describes fw with its modeled adoption at now, if any.
func NewFrameworkInfo(fw adoption.Framework, s adoption.Series, now time.Time) FrameworkInfo {
	info := FrameworkInfo{
		Name:        fw.Name(),
		LaunchDate:  fw.LaunchDateString(),
		Color:       fw.Color(),
		NPMWeekly:   fw.NPMWeekly(),
		GitHubStars: fw.GitHubStars(),
		Params:      fw.Params(),
	}
	if sm, ok := s.ValueAt(now); ok {
		v := sm.Adoption
		info.AdoptionToday = &v
	}
	return info
}

func (s *Server) handleFrameworks(w http.ResponseWriter, r *http.Request) {
	cache := s.cfg.Source.Current()
	resp := FrameworksResponse{
		Generation: cache.Generation(),
		Now:        cache.Now().Format(adoption.DateLayout),
	}
	for _, e := range cache.Entries() {
		resp.Frameworks = append(resp.Frameworks, NewFrameworkInfo(e.Framework, e.Series, cache.Now()))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	q, err := parseSeriesQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cache := s.cfg.Source.Current()
	name := r.PathValue("name")
	fw, ok := cache.Catalog().Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown framework: "+name)
		return
	}
	series, err := cache.Series(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, q.payload(fw, series))
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	q, err := parseSeriesQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cache := s.cfg.Source.Current()
	resp := ComparisonResponse{Generation: cache.Generation()}
	for _, e := range cache.Entries() {
		resp.Series = append(resp.Series, q.payload(e.Framework, e.Series))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cache := s.cfg.Source.Current()
	resp := HealthResponse{
		Status:      "ok",
		Generation:  cache.Generation(),
		GeneratedAt: cache.GeneratedAt(),
		Samples:     make(map[string]int, cache.Catalog().Len()),
		Total:       cache.TotalSamples(),
	}
	for _, e := range cache.Entries() {
		resp.Samples[e.Framework.Name()] = e.Series.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}

// seriesQuery holds the optional stride and since parameters.
type seriesQuery struct {
	stride int
	since  time.Time
}

var errBadStride = errors.New("stride must be an integer >= 1")

func parseSeriesQuery(r *http.Request) (seriesQuery, error) {
	q := seriesQuery{stride: 1}
	if v := r.URL.Query().Get("stride"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, errBadStride
		}
		q.stride = n
	}
	if v := r.URL.Query().Get("since"); v != "" {
		t, err := adoption.ParseDate(v)
		if err != nil {
			return q, err
		}
		q.since = t
	}
	return q, nil
}

func (q seriesQuery) payload(fw adoption.Framework, s adoption.Series) SeriesPayload {
	if !q.since.IsZero() {
		s = s.Since(q.since)
	}
	samples := s.Stride(q.stride)
	if samples == nil {
		samples = []adoption.Sample{}
	}
	return SeriesPayload{Name: fw.Name(), Color: fw.Color(), Samples: samples}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
