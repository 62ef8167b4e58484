package mapping

import (
	"sync/atomic"

	"github.com/MKhiriev/go-mapping-keeper/models"
)

var generations atomic.Uint64

func nextGeneration() uint64 {
	return generations.Add(1)
}

// HashTree is the default [Tree]. Children are kept in hash maps with an
// insertion-ordered key list, so iteration is deterministic for a given
// mutation history.
//
// Snapshot is O(1): the snapshot and the original share every node, and
// whichever tree writes first copies the nodes along the written path.
type HashTree struct {
	roots    children
	rootsGen uint64
	gen      uint64
	size     int
}

var _ Tree = (*HashTree)(nil)

// NewHashTree returns an empty tree.
func NewHashTree() *HashTree {
	gen := nextGeneration()
	return &HashTree{gen: gen, rootsGen: gen}
}

// CopyOf returns an independent copy of t. Copies of a *HashTree (or a
// decorator around one) share structure with the source until either side
// is written.
func CopyOf(t Tree) *HashTree {
	switch src := t.(type) {
	case *HashTree:
		return src.Snapshot()
	case *DeltaTrackingTree:
		return src.Snapshot()
	}

	out := NewHashTree()
	for _, node := range t.Nodes() {
		if value, ok := node.Value(); ok {
			out.Insert(node.Entry(), value)
		}
	}
	return out
}

// Snapshot returns a copy of the tree that shares all nodes with t.
func (t *HashTree) Snapshot() *HashTree {
	snap := &HashTree{
		roots:    t.roots,
		rootsGen: t.rootsGen,
		gen:      nextGeneration(),
		size:     t.size,
	}
	// t must stop writing shared nodes in place as well
	t.gen = nextGeneration()
	return snap
}

func (t *HashTree) Insert(entry models.Entry, m models.Mapping) {
	if m.IsEmpty() {
		t.Remove(entry)
		return
	}

	path := t.writablePath(entry)
	leaf := path[len(path)-1]
	if !leaf.hasValue {
		t.size++
	}
	leaf.value = m
	leaf.hasValue = true
}

func (t *HashTree) Remove(entry models.Entry) (models.Mapping, bool) {
	if node := t.FindNode(entry); node == nil || !node.hasValue {
		return models.Mapping{}, false
	}

	path := t.writablePath(entry)
	leaf := path[len(path)-1]
	old := leaf.value
	leaf.value = models.Mapping{}
	leaf.hasValue = false
	t.size--

	t.pruneAlong(path)

	return old, true
}

func (t *HashTree) Get(entry models.Entry) (models.Mapping, bool) {
	node := t.FindNode(entry)
	if node == nil {
		return models.Mapping{}, false
	}
	return node.Value()
}

func (t *HashTree) Contains(entry models.Entry) bool {
	_, ok := t.Get(entry)
	return ok
}

func (t *HashTree) FindNode(entry models.Entry) *Node {
	set := &t.roots
	var node *Node
	for _, ancestor := range models.Ancestry(entry) {
		node = set.get(ancestor)
		if node == nil {
			return nil
		}
		set = &node.children
	}
	return node
}

func (t *HashTree) Children(entry models.Entry) []models.Entry {
	node := t.FindNode(entry)
	if node == nil {
		return nil
	}
	return node.ChildEntries()
}

func (t *HashTree) Siblings(entry models.Entry) []models.Entry {
	var generation []models.Entry
	if parent := entry.Parent(); parent == nil {
		generation = t.roots.entries()
	} else {
		generation = t.Children(parent)
	}

	siblings := make([]models.Entry, 0, len(generation))
	for _, e := range generation {
		if e != entry {
			siblings = append(siblings, e)
		}
	}
	return siblings
}

func (t *HashTree) RootNodes() []*Node {
	return t.roots.list()
}

func (t *HashTree) Nodes() []*Node {
	var out []*Node
	for _, root := range t.roots.list() {
		out = append(out, root.NodesRecursively()...)
	}
	return out
}

func (t *HashTree) AllEntries() []models.Entry {
	out := make([]models.Entry, 0, t.size)
	for _, node := range t.Nodes() {
		if node.hasValue {
			out = append(out, node.entry)
		}
	}
	return out
}

func (t *HashTree) Len() int {
	return t.size
}

func (t *HashTree) IsEmpty() bool {
	return t.roots.len() == 0
}

func (t *HashTree) Translate(renamer Renamer) Tree {
	out := NewHashTree()
	for _, node := range t.Nodes() {
		if node.hasValue {
			out.Insert(renamer(node.entry), node.value)
		}
	}
	return out
}

// writablePath returns the nodes from the root down to entry, creating
// missing ones and copying nodes shared with a snapshot.
func (t *HashTree) writablePath(entry models.Entry) []*Node {
	ancestry := models.Ancestry(entry)

	if t.rootsGen != t.gen {
		t.roots = t.roots.clone()
		t.rootsGen = t.gen
	}

	path := make([]*Node, 0, len(ancestry))
	set := &t.roots
	for _, ancestor := range ancestry {
		node := set.get(ancestor)
		switch {
		case node == nil:
			node = &Node{entry: ancestor, gen: t.gen}
			set.put(node)
		case node.gen != t.gen:
			node = node.copyFor(t.gen)
			set.put(node)
		}
		path = append(path, node)
		set = &node.children
	}

	return path
}

// pruneAlong drops empty nodes from the leaf upwards, stopping at the first
// ancestor that is still in use.
func (t *HashTree) pruneAlong(path []*Node) {
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		if !node.IsEmpty() {
			return
		}
		if i > 0 {
			path[i-1].children.delete(node.entry)
		} else {
			t.roots.delete(node.entry)
		}
	}
}
