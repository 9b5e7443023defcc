package adoption

import (
	"fmt"
	"sync/atomic"
	"time"
)

// generations numbers caches process-wide so a reload is always visible
// as a larger generation.
var generations atomic.Uint64

// Cache holds the precomputed series of every framework in a catalog. It
// is built once and never mutated afterwards.
type Cache struct {
	catalog     *Catalog
	series      map[string]Series
	now         time.Time
	opts        Options
	generation  uint64
	generatedAt time.Time
}

// NewCache simulates every framework of cat sequentially, in catalog order.
func NewCache(cat *Catalog, now time.Time, opts Options) (*Cache, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	series := make(map[string]Series, cat.Len())
	for _, fw := range cat.frameworks {
		s, err := SimulateWith(fw, now, opts)
		if err != nil {
			return nil, fmt.Errorf("building cache: %w", err)
		}
		series[fw.Name()] = s
	}
	return &Cache{
		catalog:     cat,
		series:      series,
		now:         now,
		opts:        opts,
		generation:  generations.Add(1),
		generatedAt: time.Now(),
	}, nil
}

// Catalog returns the catalog the cache was built from.
func (c *Cache) Catalog() *Catalog { return c.catalog }

// Now returns the reference "current date" the series were simulated against.
func (c *Cache) Now() time.Time { return c.now }

// Options returns the integration options used for every series.
func (c *Cache) Options() Options { return c.opts }

// Generation returns the build counter of this cache.
func (c *Cache) Generation() uint64 { return c.generation }

// GeneratedAt returns the wall-clock time the cache was built.
func (c *Cache) GeneratedAt() time.Time { return c.generatedAt }

// Series returns the precomputed series for name.
func (c *Cache) Series(name string) (Series, error) {
	s, ok := c.series[name]
	if !ok {
		return Series{}, fmt.Errorf("%w: %q", ErrUnknownFramework, name)
	}
	return s, nil
}

// TotalSamples returns the sample count summed over every series.
func (c *Cache) TotalSamples() int {
	n := 0
	for _, s := range c.series {
		n += s.Len()
	}
	return n
}

// Entry pairs a framework with its series.
type Entry struct {
	Framework Framework
	Series    Series
}

// Entries returns every framework with its series, in catalog order.
func (c *Cache) Entries() []Entry {
	out := make([]Entry, 0, c.catalog.Len())
	for _, fw := range c.catalog.frameworks {
		out = append(out, Entry{Framework: fw, Series: c.series[fw.Name()]})
	}
	return out
}

// Source provides the cache currently being served.
type Source interface {
	Current() *Cache
}

// Live holds the cache being served and allows a rebuilt cache to replace
// it atomically. Readers see either the old or the new cache, never a mix.
type Live struct {
	cur atomic.Pointer[Cache]
}

// NewLive returns a Live serving c.
func NewLive(c *Cache) *Live {
	l := &Live{}
	l.cur.Store(c)
	return l
}

// Current returns the cache being served.
func (l *Live) Current() *Cache { return l.cur.Load() }

// Swap replaces the served cache and returns the previous one.
func (l *Live) Swap(c *Cache) *Cache { return l.cur.Swap(c) }
