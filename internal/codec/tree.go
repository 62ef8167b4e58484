package codec

import (
	"fmt"
	"math"

	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// WriteTree encodes every node of t: an i32 root count, then each root
// depth-first as entry (without parent), mapping and u16 child count
// followed by the children.
func WriteTree(w *Writer, t mapping.Tree) {
	roots := t.RootNodes()
	w.Int32(int32(len(roots)))
	for _, node := range roots {
		writeNode(w, node)
	}
}

func writeNode(w *Writer, node *mapping.Node) {
	WriteEntry(w, node.Entry(), false)
	value, _ := node.Value()
	WriteMapping(w, value)

	children := node.Children()
	if len(children) > math.MaxUint16 {
		w.Fail(fmt.Errorf("%w: %d under %v", ErrTooManyChildren, len(children), node.Entry()))
		return
	}
	w.Uint16(uint16(len(children)))
	for _, child := range children {
		writeNode(w, child)
	}
}

// ReadTree decodes a tree written by WriteTree. Nodes carrying an empty
// mapping only contribute structure.
func ReadTree(r *Reader) *mapping.HashTree {
	tree := mapping.NewHashTree()

	count := r.Int32()
	if count < 0 {
		r.Fail(fmt.Errorf("%w: negative root count %d", ErrValueOutOfRange, count))
	}
	for i := int32(0); i < count && r.Err() == nil; i++ {
		readNode(r, tree, nil, 0)
	}

	if r.Err() != nil {
		return nil
	}
	return tree
}

func readNode(r *Reader, tree *mapping.HashTree, parent models.Entry, depth int) {
	if depth > maxEntryDepth {
		r.Fail(ErrEntryTooDeep)
		return
	}

	entry := ReadEntry(r, parent, false)
	value := ReadMapping(r)
	children := r.Uint16()
	if r.Err() != nil {
		return
	}

	if !value.IsEmpty() {
		tree.Insert(entry, value)
	}
	for i := uint16(0); i < children && r.Err() == nil; i++ {
		readNode(r, tree, entry, depth+1)
	}
}
