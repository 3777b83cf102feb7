package domain

import "sort"

// StringSet backs the careerGoals / targetCompanies attributes.
// Membership is explicit: Toggle flips it, double Toggle is a no-op,
// duplicates cannot occur no matter how fast the caller flips.
type StringSet struct {
	m map[string]struct{}
}

func NewStringSet(members ...string) StringSet {
	s := StringSet{m: make(map[string]struct{}, len(members))}
	for _, v := range members {
		s.m[v] = struct{}{}
	}
	return s
}

func (s StringSet) Has(v string) bool {
	_, ok := s.m[v]
	return ok
}

func (s StringSet) Add(v string) {
	s.m[v] = struct{}{}
}

// Toggle flips membership and reports whether v is a member afterwards.
func (s StringSet) Toggle(v string) bool {
	if _, ok := s.m[v]; ok {
		delete(s.m, v)
		return false
	}
	s.m[v] = struct{}{}
	return true
}

func (s StringSet) Len() int { return len(s.m) }

// Slice returns members sorted, so document writes are deterministic.
func (s StringSet) Slice() []string {
	out := make([]string, 0, len(s.m))
	for v := range s.m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
