// Package export writes cached adoption series in the formats offered by
// the simulate command.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format in help-text order.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON, FormatYAML}

// ErrUnknownFormat is returned by ParseFormat and Write.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Row is one output line.
type Row struct {
	Framework string  `json:"framework" yaml:"framework"`
	Date      string  `json:"date" yaml:"date"`
	Adoption  float64 `json:"adoption" yaml:"adoption"`
}

// Rows flattens entries into rows, keeping every stride-th sample of each
// series plus its last sample.
func Rows(entries []adoption.Entry, stride int) []Row {
	var rows []Row
	for _, e := range entries {
		for _, sm := range e.Series.Stride(stride) {
			rows = append(rows, Row{
				Framework: e.Framework.Name(),
				Date:      sm.Date.Format(adoption.DateLayout),
				Adoption:  sm.Adoption,
			})
		}
	}
	return rows
}

// Write encodes rows to w in the given format.
func Write(w io.Writer, format Format, rows []Row) error {
	switch format {
	case FormatTable:
		return writeTable(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if rows == nil {
			rows = []Row{}
		}
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func formatAdoption(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"framework", "date", "adoption"}); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Framework, r.Date, strconv.FormatFloat(r.Adoption, 'g', -1, 64)}); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

func writeTable(w io.Writer, rows []Row) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("FRAMEWORK", "DATE", "ADOPTION %").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return numberStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		t.Row(r.Framework, r.Date, formatAdoption(r.Adoption))
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
