package sink

import (
	"github.com/gobwas/glob"

	"github.com/ironlog/ironlog/internal/record"
)

// CategoryFilter wraps a Sink so it only receives records whose category
// matches one of a set of glob patterns. Grounded on the teacher's
// internal/rules.RuleProcessor glob-based condition matching (there
// applied to User-Agent strings; here to record categories).
type CategoryFilter struct {
	inner    Sink
	patterns []glob.Glob
}

// NewCategoryFilter compiles patterns and wraps inner. An invalid pattern
// is skipped rather than failing construction, since a single bad
// pattern in a sinks list should not take down the whole config.
func NewCategoryFilter(inner Sink, patterns []string) *CategoryFilter {
	cf := &CategoryFilter{inner: inner}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			continue
		}
		cf.patterns = append(cf.patterns, g)
	}
	return cf
}

func (cf *CategoryFilter) Write(r record.Record) error {
	if len(cf.patterns) == 0 {
		return cf.inner.Write(r)
	}
	for _, g := range cf.patterns {
		if g.Match(r.Category()) {
			return cf.inner.Write(r)
		}
	}
	return nil
}
