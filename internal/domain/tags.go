package domain

import "strings"

// TagSet is an immutable, ordered set of tags.
// Entries are trimmed, never blank, never duplicated.
type TagSet struct {
	values []string
}

// NewTagSet normalizes raw: trim each entry, drop blanks, keep the first
// occurrence of each tag in input order.
func NewTagSet(raw []string) TagSet {
	if len(raw) == 0 {
		return TagSet{}
	}

	seen := make(map[string]struct{}, len(raw))
	values := make([]string, 0, len(raw))
	for _, r := range raw {
		t := strings.TrimSpace(r)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		values = append(values, t)
	}

	return TagSet{values: values}
}

// EmptyTagSet returns a set with no tags.
func EmptyTagSet() TagSet { return TagSet{} }

// Slice returns a copy of the tags in order. Never nil.
func (s TagSet) Slice() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Has is an exact, case-sensitive membership test.
func (s TagSet) Has(tag string) bool {
	for _, v := range s.values {
		if v == tag {
			return true
		}
	}
	return false
}

func (s TagSet) Len() int { return len(s.values) }
