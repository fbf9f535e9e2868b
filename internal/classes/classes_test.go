package classes

import (
	"testing"

	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input string
		want  Range
		ok    bool
	}{
		{"A", Range{0, 0}, true},
		{"B", Range{0, 0}, true},
		{"C", Range{0, 0}, true},
		{"I", Range{1, 1}, true},
		{"VI", Range{6, 6}, true},
		{"I-II", Range{1, 2}, true},
		{"III-IV", Range{3, 4}, true},
		{"V-VI", Range{5, 6}, true},
		{"C-I", Range{0, 1}, true},
		{" II - III ", Range{2, 3}, true},
		{"", Range{}, false},
		{"VII", Range{}, false},
		{"fast", Range{}, false},
		{"I-VII", Range{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseRange(tt.input)
		assert.Equal(t, tt.ok, ok, "ParseRange(%q) ok", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseRange(%q)", tt.input)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	r := Range{Min: 2, Max: 4}

	assert.True(t, r.Overlaps(1, 2))
	assert.True(t, r.Overlaps(4, 6))
	assert.True(t, r.Overlaps(0, 6))
	assert.True(t, r.Overlaps(3, 3))
	assert.False(t, r.Overlaps(5, 6))
	assert.False(t, r.Overlaps(0, 1))
}

func TestFilter(t *testing.T) {
	specs := []entities.RiverSpec{
		{Name: "Flat Creek", Class: "A"},
		{Name: "Easy River", Class: "I-II"},
		{Name: "Big Rapids", Class: "III-IV"},
		{Name: "Mystery Run", Class: ""},
		{Name: "Typo Gorge", Class: "X-Y"},
	}

	got := Filter(specs, 1, 3)

	// Unparseable class tokens never match any filter.
	if assert.Len(t, got, 2) {
		assert.Equal(t, "Easy River", got[0].Name)
		assert.Equal(t, "Big Rapids", got[1].Name)
	}
}
