package adoption

import (
	"sort"
	"time"
)

// Sample is one point of an adoption curve. Adoption is a percentage.
type Sample struct {
	Date     time.Time `json:"date" yaml:"date"`
	Adoption float64   `json:"adoption" yaml:"adoption"`
}

// Series is the read-only adoption curve of one framework. Dates are
// strictly increasing with fixed spacing and adoption is never negative.
type Series struct {
	name    string
	step    time.Duration
	samples []Sample
}

// Name returns the framework the series belongs to.
func (s Series) Name() string { return s.name }

// Step returns the spacing between consecutive samples.
func (s Series) Step() time.Duration { return s.step }

// Len returns the number of samples.
func (s Series) Len() int { return len(s.samples) }

// At returns the i-th sample. It panics if i is out of range.
func (s Series) At(i int) Sample { return s.samples[i] }

// Samples returns a copy of all samples.
func (s Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// First returns the earliest sample, or false for an empty series.
func (s Series) First() (Sample, bool) {
	if len(s.samples) == 0 {
		return Sample{}, false
	}
	return s.samples[0], true
}

// Last returns the latest sample, or false for an empty series.
func (s Series) Last() (Sample, bool) {
	if len(s.samples) == 0 {
		return Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

// Since returns the tail of the series with dates at or after t. The
// result shares storage with s.
func (s Series) Since(t time.Time) Series {
	i := sort.Search(len(s.samples), func(i int) bool {
		return !s.samples[i].Date.Before(t)
	})
	return Series{name: s.name, step: s.step, samples: s.samples[i:len(s.samples):len(s.samples)]}
}

// Until returns the head of the series with dates at or before t. The
// result shares storage with s.
func (s Series) Until(t time.Time) Series {
	i := sort.Search(len(s.samples), func(i int) bool {
		return s.samples[i].Date.After(t)
	})
	return Series{name: s.name, step: s.step, samples: s.samples[:i:i]}
}

// ValueAt returns the last sample dated at or before t. It reports false
// when t precedes the first sample.
func (s Series) ValueAt(t time.Time) (Sample, bool) {
	return s.Until(t).Last()
}

// Peak returns the sample with the highest adoption. Ties resolve to the
// earliest date.
func (s Series) Peak() (Sample, bool) {
	if len(s.samples) == 0 {
		return Sample{}, false
	}
	best := s.samples[0]
	for _, sm := range s.samples[1:] {
		if sm.Adoption > best.Adoption {
			best = sm
		}
	}
	return best, true
}

// Stride returns every n-th sample starting with the first; the last
// sample is always kept. n < 1 is treated as 1.
func (s Series) Stride(n int) []Sample {
	if n <= 1 {
		return s.Samples()
	}
	out := make([]Sample, 0, len(s.samples)/n+2)
	for i := 0; i < len(s.samples); i += n {
		out = append(out, s.samples[i])
	}
	if last := len(s.samples) - 1; last >= 0 && last%n != 0 {
		out = append(out, s.samples[last])
	}
	return out
}
