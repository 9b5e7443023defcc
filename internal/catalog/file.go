// Package catalog loads framework catalogs from TOML files and keeps a live
// series cache in sync with the file while the process runs.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// ErrNoCatalog indicates the catalog file does not exist.
var ErrNoCatalog = errors.New("catalog file not found")

// document is the on-disk layout: one [[framework]] table per entry.
type document struct {
	Frameworks []adoption.FrameworkSpec `toml:"framework"`
}

// Load reads and validates the catalog file at path.
func Load(path string) (*adoption.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoCatalog, path)
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes TOML catalog data. Unknown keys are rejected so a typo in a
// coefficient name cannot silently fall back to zero.
func Parse(data []byte) (*adoption.Catalog, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parsing catalog: %s", strict.String())
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	cat, err := adoption.NewCatalog(doc.Frameworks)
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return cat, nil
}

// Resolve returns the catalog at path, or the compiled-in catalog when path
// is empty.
func Resolve(path string) (*adoption.Catalog, error) {
	if path == "" {
		return adoption.DefaultCatalog(), nil
	}
	return Load(path)
}

// Encode writes cat as a TOML catalog file.
func Encode(w io.Writer, cat *adoption.Catalog) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(document{Frameworks: cat.Specs()}); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}
