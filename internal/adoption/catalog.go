package adoption

import "fmt"

// Catalog is an ordered, immutable set of frameworks with unique names.
type Catalog struct {
	frameworks []Framework
	byName     map[string]int
}

// NewCatalog validates every spec and returns a catalog preserving their
// order. The first invalid entry aborts construction.
func NewCatalog(specs []FrameworkSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		frameworks: make([]Framework, 0, len(specs)),
		byName:     make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		fw, err := NewFramework(spec)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if _, dup := c.byName[fw.Name()]; dup {
			return nil, fmt.Errorf("entry %d: %w", i+1, &ValidationError{
				Category:  ValCatDuplicate,
				Framework: fw.Name(),
				Field:     "name",
				Err:       ErrDuplicateName,
			})
		}
		c.byName[fw.Name()] = len(c.frameworks)
		c.frameworks = append(c.frameworks, fw)
	}
	return c, nil
}

// Len returns the number of frameworks.
func (c *Catalog) Len() int { return len(c.frameworks) }

// Frameworks returns a copy of the frameworks in catalog order.
func (c *Catalog) Frameworks() []Framework {
	out := make([]Framework, len(c.frameworks))
	copy(out, c.frameworks)
	return out
}

// Names returns framework names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.frameworks))
	for i, fw := range c.frameworks {
		names[i] = fw.Name()
	}
	return names
}

// Lookup returns the framework with the given name.
func (c *Catalog) Lookup(name string) (Framework, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Framework{}, false
	}
	return c.frameworks[i], true
}

// First returns the first framework, which presentation surfaces use as
// the default selection.
func (c *Catalog) First() Framework { return c.frameworks[0] }

// Specs returns the raw form of every entry, in order.
func (c *Catalog) Specs() []FrameworkSpec {
	specs := make([]FrameworkSpec, len(c.frameworks))
	for i, fw := range c.frameworks {
		specs[i] = fw.Spec()
	}
	return specs
}

// DefaultSpecs returns the compiled-in framework table. Download and star
// counts are hardcoded snapshots.
func DefaultSpecs() []FrameworkSpec {
	return []FrameworkSpec{
		{Name: "React", LaunchDate: "2013-05-29", Color: "#61DAFB", NPMWeekly: 25_000_000, GitHubStars: 228_000, R: 0.65, K: 1.0, D: 0.08, U0: 0.001},
		{Name: "Vue", LaunchDate: "2014-02-14", Color: "#42B883", NPMWeekly: 5_200_000, GitHubStars: 207_000, R: 0.58, K: 0.75, D: 0.12, U0: 0.001},
		{Name: "Angular", LaunchDate: "2016-09-14", Color: "#DD0031", NPMWeekly: 3_800_000, GitHubStars: 95_000, R: 0.52, K: 0.70, D: 0.15, U0: 0.05},
		{Name: "Svelte", LaunchDate: "2016-11-26", Color: "#FF3E00", NPMWeekly: 800_000, GitHubStars: 78_000, R: 0.72, K: 0.45, D: 0.07, U0: 0.001},
		{Name: "Next.js", LaunchDate: "2016-10-25", Color: "#FFFFFF", NPMWeekly: 7_500_000, GitHubStars: 124_000, R: 0.68, K: 0.65, D: 0.09, U0: 0.001},
		{Name: "Nuxt", LaunchDate: "2016-10-16", Color: "#00DC82", NPMWeekly: 950_000, GitHubStars: 53_000, R: 0.55, K: 0.40, D: 0.11, U0: 0.001},
	}
}

// DefaultCatalog returns the compiled-in catalog. It panics if the table
// itself is invalid, which is a programming error caught by tests.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSpecs())
	if err != nil {
		panic(fmt.Sprintf("adoption: compiled-in catalog is invalid: %v", err))
	}
	return c
}
