package mapping

import (
	"sync"

	"github.com/MKhiriev/go-mapping-keeper/models"
)

// DeltaTrackingTree decorates a [Tree] and remembers every entry passed to
// Insert or Remove since the last call to TakeDelta.
type DeltaTrackingTree struct {
	mu        sync.RWMutex
	delegate  Tree
	reference *HashTree
	changes   *EntrySet
}

var _ Tree = (*DeltaTrackingTree)(nil)

// NewDeltaTrackingTree wraps delegate. The current content of delegate is
// the reference of the first delta.
func NewDeltaTrackingTree(delegate Tree) *DeltaTrackingTree {
	if delegate == nil {
		delegate = NewHashTree()
	}
	return &DeltaTrackingTree{
		delegate:  delegate,
		reference: CopyOf(delegate),
		changes:   NewEntrySet(),
	}
}

func (d *DeltaTrackingTree) Insert(entry models.Entry, m models.Mapping) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changes.Add(entry)
	d.delegate.Insert(entry, m)
}

func (d *DeltaTrackingTree) Remove(entry models.Entry) (models.Mapping, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changes.Add(entry)
	return d.delegate.Remove(entry)
}

// TrackChange marks entry as changed without touching its mapping.
func (d *DeltaTrackingTree) TrackChange(entry models.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changes.Add(entry)
}

// TakeDelta returns the changes since the previous checkpoint and starts a
// new one at the current state.
func (d *DeltaTrackingTree) TakeDelta() Delta {
	d.mu.Lock()
	defer d.mu.Unlock()

	delta := Delta{Reference: d.reference, Changed: d.changes}
	d.reference = CopyOf(d.delegate)
	d.changes = NewEntrySet()

	return delta
}

// IsDirty reports whether a change is pending, without consuming it.
func (d *DeltaTrackingTree) IsDirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.changes.Len() > 0
}

// Snapshot returns an independent copy of the current content.
func (d *DeltaTrackingTree) Snapshot() *HashTree {
	d.mu.Lock()
	defer d.mu.Unlock()

	return CopyOf(d.delegate)
}

func (d *DeltaTrackingTree) Get(entry models.Entry) (models.Mapping, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.Get(entry)
}

func (d *DeltaTrackingTree) Contains(entry models.Entry) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.Contains(entry)
}

func (d *DeltaTrackingTree) FindNode(entry models.Entry) *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.FindNode(entry)
}

func (d *DeltaTrackingTree) Children(entry models.Entry) []models.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.Children(entry)
}

func (d *DeltaTrackingTree) Siblings(entry models.Entry) []models.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.Siblings(entry)
}

func (d *DeltaTrackingTree) RootNodes() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.RootNodes()
}

func (d *DeltaTrackingTree) Nodes() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.Nodes()
}

func (d *DeltaTrackingTree) AllEntries() []models.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.AllEntries()
}

func (d *DeltaTrackingTree) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.Len()
}

func (d *DeltaTrackingTree) IsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delegate.IsEmpty()
}

// Translate returns a new tracking tree over the translated content. Pending
// changes are translated as well so they survive the rename.
func (d *DeltaTrackingTree) Translate(renamer Renamer) Tree {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := NewDeltaTrackingTree(d.delegate.Translate(renamer))
	out.changes = d.changes.Translate(renamer)
	return out
}
