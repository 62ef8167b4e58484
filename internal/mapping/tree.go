// Package mapping stores the deobfuscation mappings of a program as a forest
// of entries mirroring each entry's parent chain.
//
// [HashTree] is the plain store. [DeltaTrackingTree] decorates any [Tree] and
// records which entries were touched since the last checkpoint so that only
// those need to be persisted.
//
// Trees are not safe for concurrent mutation; the server confines its tree
// to a single goroutine.
package mapping

import "github.com/MKhiriev/go-mapping-keeper/models"

// Renamer rewrites an entry key, e.g. when a containing class gets a new
// identity. It must be a pure function.
type Renamer func(models.Entry) models.Entry

// Tree maps entries to mappings. Nodes exist only while they hold a value
// or have a non-empty descendant.
type Tree interface {
	// Insert stores m for entry, creating intermediate nodes as needed.
	// Inserting an empty mapping is the same as Remove.
	Insert(entry models.Entry, m models.Mapping)
	// Remove clears the value of entry and prunes nodes left empty.
	Remove(entry models.Entry) (models.Mapping, bool)
	// Get returns the mapping of entry, if any.
	Get(entry models.Entry) (models.Mapping, bool)
	// Contains reports whether entry holds a mapping.
	Contains(entry models.Entry) bool

	// FindNode returns the node of entry or nil.
	FindNode(entry models.Entry) *Node
	// Children lists the child entries of entry's node.
	Children(entry models.Entry) []models.Entry
	// Siblings lists the entries sharing entry's parent, excluding entry.
	Siblings(entry models.Entry) []models.Entry
	// RootNodes lists the top-level nodes.
	RootNodes() []*Node
	// Nodes lists every node depth-first, parents before children.
	Nodes() []*Node
	// AllEntries lists every entry that holds a mapping.
	AllEntries() []models.Entry

	// Len counts the entries holding a mapping.
	Len() int
	IsEmpty() bool

	// Translate returns a new tree with every key rewritten by renamer. The
	// receiver is left untouched.
	Translate(renamer Renamer) Tree
}

// Node is one entry of a tree. Nodes are owned by their tree; callers get
// read-only access.
type Node struct {
	entry    models.Entry
	value    models.Mapping
	hasValue bool
	children children

	// gen is the generation of the tree allowed to mutate this node in
	// place. Nodes of another generation are shared with a snapshot and are
	// copied before any write.
	gen uint64
}

func (n *Node) Entry() models.Entry { return n.entry }

// Value returns the node's mapping and whether it has one.
func (n *Node) Value() (models.Mapping, bool) { return n.value, n.hasValue }

func (n *Node) HasValue() bool { return n.hasValue }

// IsEmpty reports whether the node holds neither a value nor children.
func (n *Node) IsEmpty() bool {
	return !n.hasValue && n.children.len() == 0
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	return n.children.list()
}

// ChildEntries returns the entries of the child nodes in insertion order.
func (n *Node) ChildEntries() []models.Entry {
	return n.children.entries()
}

// NodesRecursively returns n followed by all of its descendants.
func (n *Node) NodesRecursively() []*Node {
	out := []*Node{n}
	for _, child := range n.children.list() {
		out = append(out, child.NodesRecursively()...)
	}
	return out
}

func (n *Node) copyFor(gen uint64) *Node {
	return &Node{
		entry:    n.entry,
		value:    n.value,
		hasValue: n.hasValue,
		children: n.children.clone(),
		gen:      gen,
	}
}

// children is an insertion-ordered set of nodes keyed by entry.
type children struct {
	keys  []models.Entry
	nodes map[models.Entry]*Node
}

func (c *children) len() int {
	return len(c.keys)
}

func (c *children) get(e models.Entry) *Node {
	return c.nodes[e]
}

func (c *children) put(n *Node) {
	if c.nodes == nil {
		c.nodes = make(map[models.Entry]*Node)
	}
	if _, ok := c.nodes[n.entry]; !ok {
		c.keys = append(c.keys, n.entry)
	}
	c.nodes[n.entry] = n
}

func (c *children) delete(e models.Entry) {
	if _, ok := c.nodes[e]; !ok {
		return
	}
	delete(c.nodes, e)
	for i, k := range c.keys {
		if k == e {
			c.keys = append(c.keys[:i:i], c.keys[i+1:]...)
			break
		}
	}
}

func (c *children) entries() []models.Entry {
	out := make([]models.Entry, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *children) list() []*Node {
	out := make([]*Node, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.nodes[k])
	}
	return out
}

func (c *children) clone() children {
	if len(c.keys) == 0 {
		return children{}
	}
	out := children{
		keys:  make([]models.Entry, len(c.keys)),
		nodes: make(map[models.Entry]*Node, len(c.nodes)),
	}
	copy(out.keys, c.keys)
	for k, v := range c.nodes {
		out.nodes[k] = v
	}
	return out
}
