// Package classes parses whitewater difficulty class tokens and filters the
// river catalog by class range.
package classes

import (
	"strings"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// Range is an inclusive difficulty interval. Letter grades A/B/C collapse to
// 0, Roman numerals I-VI map to 1-6.
type Range struct {
	Min int
	Max int
}

var tokenValues = map[string]int{
	"A": 0, "B": 0, "C": 0,
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6,
}

// ParseRange parses a class token or hyphenated pair into an inclusive
// interval. A bare token yields a single-point interval. Returns ok=false for
// empty or unrecognized input; such rows never match any filter.
func ParseRange(s string) (Range, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, false
	}

	if lo, hi, found := strings.Cut(s, "-"); found {
		minVal, okMin := tokenValues[strings.TrimSpace(lo)]
		maxVal, okMax := tokenValues[strings.TrimSpace(hi)]
		if !okMin || !okMax {
			return Range{}, false
		}
		return Range{Min: minVal, Max: maxVal}, true
	}

	v, ok := tokenValues[s]
	if !ok {
		return Range{}, false
	}
	return Range{Min: v, Max: v}, true
}

// Overlaps reports whether the range intersects [lo, hi].
func (r Range) Overlaps(lo, hi int) bool {
	return r.Max >= lo && r.Min <= hi
}

// Filter retains catalog rows whose parsed class range overlaps [lo, hi].
// Rows with missing or unparseable class tokens are excluded.
func Filter(specs []entities.RiverSpec, lo, hi int) []entities.RiverSpec {
	var out []entities.RiverSpec
	for _, spec := range specs {
		r, ok := ParseRange(spec.Class)
		if !ok {
			continue
		}
		if r.Overlaps(lo, hi) {
			out = append(out, spec)
		}
	}
	return out
}
