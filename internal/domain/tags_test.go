package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTagSet(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{name: "trim blank and duplicates", raw: []string{"a", " a ", "", "b"}, want: []string{"a", "b"}},
		{name: "keeps first-seen order", raw: []string{"z", "y", "z", "x"}, want: []string{"z", "y", "x"}},
		{name: "case sensitive", raw: []string{"Go", "go"}, want: []string{"Go", "go"}},
		{name: "only blanks", raw: []string{" ", "\t", ""}, want: []string{}},
		{name: "nil input", raw: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTagSet(tt.raw).Slice()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewTagSet(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestTagSetHas(t *testing.T) {
	s := NewTagSet([]string{"x", " y "})

	if !s.Has("x") || !s.Has("y") {
		t.Errorf("Has() missing normalized tags in %v", s.Slice())
	}
	if s.Has(" y ") {
		t.Error("Has() should match exactly, not trim the query")
	}
	if s.Has("X") {
		t.Error("Has() should be case sensitive")
	}
}

func TestTagSetSliceIsCopy(t *testing.T) {
	s := NewTagSet([]string{"a", "b"})
	out := s.Slice()
	out[0] = "mutated"

	if s.Slice()[0] != "a" {
		t.Error("Slice() exposed internal storage")
	}
}

func TestEmptyTagSet(t *testing.T) {
	s := EmptyTagSet()
	if s.Len() != 0 {
		t.Errorf("EmptyTagSet().Len() = %d, want 0", s.Len())
	}
	if s.Slice() == nil {
		t.Error("EmptyTagSet().Slice() should be non-nil")
	}
}
