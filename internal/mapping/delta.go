package mapping

import "github.com/MKhiriev/go-mapping-keeper/models"

// Delta describes what changed between two checkpoints of a
// [DeltaTrackingTree].
//
// Reference is the tree as it was at the previous checkpoint. Changed holds
// every entry inserted or removed since then, whether or not the net effect
// was a change.
type Delta struct {
	Reference Tree
	Changed   *EntrySet
}

// IsEmpty reports whether no entry was touched.
func (d Delta) IsEmpty() bool {
	return d.Changed.Len() == 0
}

// Replay rebuilds the current state from the reference: every changed entry
// takes its value from current (or is removed when current has none). The
// reference itself is not modified.
func (d Delta) Replay(current Tree) *HashTree {
	out := NewHashTree()
	if d.Reference != nil {
		out = CopyOf(d.Reference)
	}

	for _, e := range d.Changed.Entries() {
		if value, ok := current.Get(e); ok {
			out.Insert(e, value)
		} else {
			out.Remove(e)
		}
	}

	return out
}

// Update is the state of one changed entry at checkpoint time.
type Update struct {
	Entry   models.Entry
	Mapping models.Mapping
	// Removed is set when the entry no longer holds a mapping.
	Removed bool
}

// Updates resolves every changed entry against current, in the order the
// entries were first touched.
func (d Delta) Updates(current Tree) []Update {
	out := make([]Update, 0, d.Changed.Len())
	for _, e := range d.Changed.Entries() {
		value, ok := current.Get(e)
		out = append(out, Update{Entry: e, Mapping: value, Removed: !ok})
	}
	return out
}
