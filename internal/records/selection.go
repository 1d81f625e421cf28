package records

// Selection is an insertion-ordered set of records keyed by ID.
//
// Every method returns a new Selection and leaves the receiver untouched, so a
// Selection can be shared between successive states without copying.
type Selection []Record

// Len returns the number of selected records.
func (s Selection) Len() int {
	return len(s)
}

// Contains reports whether a record with id is selected.
func (s Selection) Contains(id ID) bool {
	return s.index(id) >= 0
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []ID {
	ids := make([]ID, len(s))
	for i, r := range s {
		ids[i] = r.ID
	}
	return ids
}

// Toggle adds r when absent and removes it when present.
func (s Selection) Toggle(r Record) Selection {
	if i := s.index(r.ID); i >= 0 {
		return s.removeAt(i)
	}
	return s.Add(r)
}

// Add selects every record not already selected.
func (s Selection) Add(rs ...Record) Selection {
	out := make(Selection, len(s), len(s)+len(rs))
	copy(out, s)
	for _, r := range rs {
		if out.index(r.ID) < 0 {
			out = append(out, r)
		}
	}
	return out
}

// Remove deselects every record whose id is listed.
func (s Selection) Remove(ids ...ID) Selection {
	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make(Selection, 0, len(s))
	for _, r := range s {
		if _, ok := drop[r.ID]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// ContainsAll reports whether every record in rs is selected.
// It is false for an empty rs.
func (s Selection) ContainsAll(rs []Record) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if !s.Contains(r.ID) {
			return false
		}
	}
	return true
}

// Replace returns a selection holding exactly rs, deduplicated by id.
func Replace(rs []Record) Selection {
	return Selection(nil).Add(rs...)
}

func (s Selection) index(id ID) int {
	for i, r := range s {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s Selection) removeAt(i int) Selection {
	out := make(Selection, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
