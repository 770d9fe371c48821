package services

import "sort"

// SelectionSet tracks which assets are checked for batch operations. It is
// always a subset of the ids in the last-fetched asset listing: the session
// clears it whenever that listing is replaced.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet creates an empty selection
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[string]struct{})}
}

// Toggle flips the checked state of one asset id
func (s *SelectionSet) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SetAll checks or unchecks every given id
func (s *SelectionSet) SetAll(ids []string, checked bool) {
	if !checked {
		for _, id := range ids {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Has reports whether the id is checked
func (s *SelectionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Selected returns the checked ids in stable order
func (s *SelectionSet) Selected() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of checked ids
func (s *SelectionSet) Count() int {
	return len(s.ids)
}

// Clear unchecks everything
func (s *SelectionSet) Clear() {
	s.ids = make(map[string]struct{})
}
