package mapping

import "github.com/MKhiriev/go-mapping-keeper/models"

// EntrySet is an insertion-ordered set of entries.
type EntrySet struct {
	order []models.Entry
	index map[models.Entry]struct{}
}

// NewEntrySet returns a set holding entries.
func NewEntrySet(entries ...models.Entry) *EntrySet {
	s := &EntrySet{index: make(map[models.Entry]struct{}, len(entries))}
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts e and reports whether it was new.
func (s *EntrySet) Add(e models.Entry) bool {
	if s.index == nil {
		s.index = make(map[models.Entry]struct{})
	}
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = struct{}{}
	s.order = append(s.order, e)
	return true
}

func (s *EntrySet) Contains(e models.Entry) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[e]
	return ok
}

func (s *EntrySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Entries returns the members in insertion order.
func (s *EntrySet) Entries() []models.Entry {
	if s == nil {
		return nil
	}
	out := make([]models.Entry, len(s.order))
	copy(out, s.order)
	return out
}

// Translate returns a new set with every member rewritten by renamer.
func (s *EntrySet) Translate(renamer Renamer) *EntrySet {
	out := NewEntrySet()
	for _, e := range s.Entries() {
		out.Add(renamer(e))
	}
	return out
}
