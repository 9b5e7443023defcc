package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/uptake/internal/adoption"
)

func testRows(t *testing.T, stride int) []Row {
	t.Helper()
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	c, err := adoption.NewCache(adoption.DefaultCatalog(), now, adoption.DefaultOptions())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return Rows(c.Entries()[:2], stride)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"table", "CSV", " json ", "yaml"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
		}
	}
	_, err := ParseFormat("xml")
	if !errors.Is(err, ErrUnknownFormat) || !strings.Contains(err.Error(), "table, csv, json, yaml") {
		t.Errorf("ParseFormat(xml) err = %v", err)
	}
}

func TestRows_StrideKeepsLast(t *testing.T) {
	t.Parallel()
	rows := testRows(t, 100)
	if len(rows) == 0 {
		t.Fatal("no rows")
	}
	if rows[0].Framework != "React" {
		t.Errorf("first row framework = %q, want React", rows[0].Framework)
	}
	if rows[0].Date != "2013-06-01" {
		t.Errorf("first row date = %q, want 2013-06-01", rows[0].Date)
	}
	var vue int
	for _, r := range rows {
		if r.Framework == "Vue" {
			vue++
		}
	}
	if vue == 0 || vue == len(rows) {
		t.Errorf("expected both frameworks in rows, Vue has %d of %d", vue, len(rows))
	}
}

func TestWrite_CSV(t *testing.T) {
	t.Parallel()
	rows := testRows(t, 50)
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got := strings.Join(records[0], ","); got != "framework,date,adoption" {
		t.Errorf("header = %q", got)
	}
	if len(records) != len(rows)+1 {
		t.Errorf("records = %d, want %d", len(records), len(rows)+1)
	}
}

func TestWrite_JSONAndYAMLDecodeBack(t *testing.T) {
	t.Parallel()
	rows := testRows(t, 200)

	var jbuf bytes.Buffer
	if err := Write(&jbuf, FormatJSON, rows); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	var fromJSON []Row
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("Unmarshal json: %v", err)
	}

	var ybuf bytes.Buffer
	if err := Write(&ybuf, FormatYAML, rows); err != nil {
		t.Fatalf("Write yaml: %v", err)
	}
	var fromYAML []Row
	if err := yaml.Unmarshal(ybuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("Unmarshal yaml: %v", err)
	}

	if len(fromJSON) != len(rows) || len(fromYAML) != len(rows) {
		t.Fatalf("decoded %d json / %d yaml rows, want %d", len(fromJSON), len(fromYAML), len(rows))
	}
	if fromJSON[3] != rows[3] || fromYAML[3] != rows[3] {
		t.Errorf("row 3 = %+v / %+v, want %+v", fromJSON[3], fromYAML[3], rows[3])
	}
}

func TestWrite_EmptyJSONIsArray(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty json = %q, want []", got)
	}
}

func TestWrite_Table(t *testing.T) {
	t.Parallel()
	rows := []Row{
		{Framework: "Svelte", Date: "2016-11-30", Adoption: 0.10072},
		{Framework: "Svelte", Date: "2026-10-19", Adoption: 38.5},
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatTable, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"FRAMEWORK", "ADOPTION %", "Svelte", "2016-11-30", "0.1007", "38.5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()
	if err := Write(&bytes.Buffer{}, Format("xml"), nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
