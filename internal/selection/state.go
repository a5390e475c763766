// Package selection implements the in-memory activation set and the session
// state machine that edits it. All mutating operations are pure functions
// over the set; only Commit touches disk, through a single atomic document
// rewrite.
package selection

import "sort"

// State is the set of capability ids currently active.
type State map[string]bool

// NewState builds a state from a list of ids.
func NewState(ids ...string) State {
	s := make(State, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Clone returns an independent copy.
func (s State) Clone() State {
	out := make(State, len(s))
	for id := range s {
		out[id] = true
	}
	return out
}

// Contains reports membership.
func (s State) Contains(id string) bool {
	return s[id]
}

// IDs returns the members sorted lexically.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether two states hold the same ids.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other[id] {
			return false
		}
	}
	return true
}

// Toggle returns a copy with id's membership flipped.
func (s State) Toggle(id string) State {
	out := s.Clone()
	if out[id] {
		delete(out, id)
	} else {
		out[id] = true
	}
	return out
}

// Union returns a copy containing every id of both sets.
func (s State) Union(ids map[string]bool) State {
	out := s.Clone()
	for id := range ids {
		out[id] = true
	}
	return out
}

// Difference returns a copy with every id in ids removed.
func (s State) Difference(ids map[string]bool) State {
	out := s.Clone()
	for id := range ids {
		delete(out, id)
	}
	return out
}
