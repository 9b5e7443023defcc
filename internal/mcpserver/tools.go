package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// listFrameworksInput is the input schema for the list_frameworks tool.
type listFrameworksInput struct{}

// frameworkEntry is a single catalog entry in tool responses.
type frameworkEntry struct {
	Name        string  `json:"name"`
	LaunchDate  string  `json:"launch_date"`
	Color       string  `json:"color"`
	NPMWeekly   int64   `json:"npm_weekly"`
	GitHubStars int64   `json:"github_stars"`
	R           float64 `json:"r"`
	K           float64 `json:"k"`
	D           float64 `json:"d"`
	U0          float64 `json:"u0"`
	Samples     int     `json:"samples"`
}

// listFrameworksOutput is the output schema for the list_frameworks tool.
type listFrameworksOutput struct {
	Generation uint64           `json:"generation"`
	Now        string           `json:"now"`
	Frameworks []frameworkEntry `json:"frameworks"`
}

// getSeriesInput is the input schema for the get_series tool.
type getSeriesInput struct {
	Name   string `json:"name" jsonschema:"Framework name as listed by list_frameworks"`
	Stride int    `json:"stride,omitempty" jsonschema:"Keep every Nth sample (default 1)"`
	Since  string `json:"since,omitempty" jsonschema:"Only samples on or after this YYYY-MM-DD date"`
}

// samplePoint is one sample in tool responses.
type samplePoint struct {
	Date     string  `json:"date"`
	Adoption float64 `json:"adoption"`
}

// getSeriesOutput is the output schema for the get_series tool.
type getSeriesOutput struct {
	Name       string        `json:"name"`
	Generation uint64        `json:"generation"`
	StepDays   float64       `json:"step_days"`
	Samples    []samplePoint `json:"samples"`
}

// adoptionOnInput is the input schema for the adoption_on tool.
type adoptionOnInput struct {
	Date string `json:"date" jsonschema:"Calendar date YYYY-MM-DD"`
}

// adoptionValue is one framework's modeled adoption at a date.
type adoptionValue struct {
	Name       string  `json:"name"`
	Available  bool    `json:"available"`
	Adoption   float64 `json:"adoption"`
	SampleDate string  `json:"sample_date,omitempty"`
}

// adoptionOnOutput is the output schema for the adoption_on tool.
type adoptionOnOutput struct {
	Date   string          `json:"date"`
	Values []adoptionValue `json:"values"`
}

// registerTools registers list_frameworks, get_series and adoption_on.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_frameworks",
		Description: "List the frameworks in the catalog with their model parameters",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ listFrameworksInput) (*mcp.CallToolResult, listFrameworksOutput, error) {
		cache := s.source.Current()
		out := listFrameworksOutput{
			Generation: cache.Generation(),
			Now:        cache.Now().Format(adoption.DateLayout),
		}
		for _, e := range cache.Entries() {
			fw, p := e.Framework, e.Framework.Params()
			out.Frameworks = append(out.Frameworks, frameworkEntry{
				Name:        fw.Name(),
				LaunchDate:  fw.LaunchDateString(),
				Color:       fw.Color(),
				NPMWeekly:   fw.NPMWeekly(),
				GitHubStars: fw.GitHubStars(),
				R:           p.R,
				K:           p.K,
				D:           p.D,
				U0:          p.U0,
				Samples:     e.Series.Len(),
			})
		}
		return nil, out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_series",
		Description: "Get the simulated adoption series (percent) for one framework",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input getSeriesInput) (*mcp.CallToolResult, getSeriesOutput, error) {
		if input.Name == "" {
			return nil, getSeriesOutput{}, fmt.Errorf("name is required")
		}
		if input.Stride < 0 {
			return nil, getSeriesOutput{}, fmt.Errorf("stride must be >= 1")
		}
		cache := s.source.Current()
		series, err := cache.Series(input.Name)
		if err != nil {
			return nil, getSeriesOutput{}, err
		}
		if input.Since != "" {
			since, err := adoption.ParseDate(input.Since)
			if err != nil {
				return nil, getSeriesOutput{}, fmt.Errorf("parsing since: %w", err)
			}
			series = series.Since(since)
		}

		samples := series.Stride(input.Stride)
		points := make([]samplePoint, len(samples))
		for i, sm := range samples {
			points[i] = samplePoint{Date: sm.Date.Format(adoption.DateLayout), Adoption: sm.Adoption}
		}
		return nil, getSeriesOutput{
			Name:       series.Name(),
			Generation: cache.Generation(),
			StepDays:   series.Step().Hours() / 24,
			Samples:    points,
		}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "adoption_on",
		Description: "Get every framework's modeled adoption (percent) on a date",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input adoptionOnInput) (*mcp.CallToolResult, adoptionOnOutput, error) {
		date, err := adoption.ParseDate(input.Date)
		if err != nil {
			return nil, adoptionOnOutput{}, err
		}
		// Samples carry a time of day; include everything up to the end of the date.
		end := date.Add(24*time.Hour - time.Nanosecond)

		cache := s.source.Current()
		out := adoptionOnOutput{Date: date.Format(adoption.DateLayout)}
		for _, e := range cache.Entries() {
			v := adoptionValue{Name: e.Framework.Name()}
			if sm, ok := e.Series.ValueAt(end); ok {
				v.Available = true
				v.Adoption = sm.Adoption
				v.SampleDate = sm.Date.Format(adoption.DateLayout)
			}
			out.Values = append(out.Values, v)
		}
		return nil, out, nil
	})
}
