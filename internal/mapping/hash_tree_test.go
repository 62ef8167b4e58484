package mapping

import (
	"math/rand"
	"testing"

	"github.com/MKhiriev/go-mapping-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

var (
	classA  = models.NewClassEntry("a")
	classB  = models.NewClassEntry("b")
	innerA  = classA.NestedClass("c")
	fieldA  = classA.Field("f", "I")
	methodA = classA.Method("m", "(I)V")
	localA  = methodA.Param(1)
	methodI = innerA.Method("n", "()V")
)

// assertNoDeadNodes fails when any node is both valueless and childless.
func assertNoDeadNodes(t *testing.T, tree Tree) {
	t.Helper()
	for _, node := range tree.Nodes() {
		assert.False(t, node.IsEmpty(), "dead node left for %v", node.Entry())
	}
}

// ── Insert / Get ──────────────────────────────────────────────────────────────

func TestHashTree_InsertCreatesAncestry(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(localA, models.NewMapping("count"))

	got, ok := tree.Get(localA)
	require.True(t, ok)
	assert.Equal(t, "count", got.TargetName)

	// intermediate nodes exist but hold no value
	for _, e := range []models.Entry{classA, methodA} {
		node := tree.FindNode(e)
		require.NotNil(t, node, "missing node for %v", e)
		assert.False(t, node.HasValue())
	}
	assert.Equal(t, 1, tree.Len())
}

func TestHashTree_InsertOverwrites(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(fieldA, models.NewMapping("first"))
	tree.Insert(fieldA, models.NewMapping("second"))

	got, ok := tree.Get(fieldA)
	require.True(t, ok)
	assert.Equal(t, "second", got.TargetName)
	assert.Equal(t, 1, tree.Len())
}

func TestHashTree_InsertEmptyMappingRemoves(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(fieldA, models.NewMapping("x"))
	tree.Insert(fieldA, models.Mapping{})

	assert.False(t, tree.Contains(fieldA))
	assert.True(t, tree.IsEmpty())
}

func TestHashTree_InsertTrimsNothingButKeepsDocOnly(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(methodA, models.Mapping{Doc: "does things"})

	got, ok := tree.Get(methodA)
	require.True(t, ok)
	assert.False(t, got.HasName())
	assert.Equal(t, "does things", got.Doc)
}

func TestHashTree_GetMissing(t *testing.T) {
	tree := NewHashTree()
	_, ok := tree.Get(fieldA)
	assert.False(t, ok)
	assert.Nil(t, tree.FindNode(fieldA))
	assert.Empty(t, tree.Children(classA))
}

func TestHashTree_NilEntryPanics(t *testing.T) {
	tree := NewHashTree()
	assert.Panics(t, func() { tree.Insert(nil, models.NewMapping("x")) })
}

// ── Remove / pruning ──────────────────────────────────────────────────────────

func TestHashTree_RemovePrunesUpwards(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(localA, models.NewMapping("count"))

	old, ok := tree.Remove(localA)
	require.True(t, ok)
	assert.Equal(t, "count", old.TargetName)

	assert.True(t, tree.IsEmpty())
	assert.Nil(t, tree.FindNode(classA))
	assert.Equal(t, 0, tree.Len())
}

func TestHashTree_RemoveStopsAtNonEmptyAncestor(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(classA, models.NewMapping("Alpha"))
	tree.Insert(localA, models.NewMapping("count"))

	tree.Remove(localA)

	assert.Nil(t, tree.FindNode(methodA), "valueless method node should be pruned")
	require.NotNil(t, tree.FindNode(classA))
	assert.True(t, tree.Contains(classA))
}

func TestHashTree_RemoveKeepsSiblingBranch(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(fieldA, models.NewMapping("size"))
	tree.Insert(localA, models.NewMapping("count"))

	tree.Remove(localA)

	assert.True(t, tree.Contains(fieldA))
	assert.Equal(t, []models.Entry{fieldA}, tree.Children(classA))
	assertNoDeadNodes(t, tree)
}

func TestHashTree_RemoveValuelessIntermediate(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(localA, models.NewMapping("count"))

	_, ok := tree.Remove(methodA)
	assert.False(t, ok)
	assert.True(t, tree.Contains(localA))
}

func TestHashTree_RemoveMissing(t *testing.T) {
	tree := NewHashTree()
	_, ok := tree.Remove(fieldA)
	assert.False(t, ok)
	assert.True(t, tree.IsEmpty())
}

func TestHashTree_PruningInvariantRandomised(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	universe := []models.Entry{classA, classB, innerA, fieldA, methodA, localA, methodI, methodI.Local(0)}

	tree := NewHashTree()
	for i := 0; i < 2000; i++ {
		e := universe[rng.Intn(len(universe))]
		if rng.Intn(3) == 0 {
			tree.Remove(e)
		} else {
			tree.Insert(e, models.NewMapping("n"+e.SimpleName()))
		}
		assertNoDeadNodes(t, tree)
		assert.Equal(t, len(tree.AllEntries()), tree.Len())
	}
}

// ── navigation ────────────────────────────────────────────────────────────────

func TestHashTree_ChildrenAndSiblings(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(classA, models.NewMapping("Alpha"))
	tree.Insert(classB, models.NewMapping("Beta"))
	tree.Insert(fieldA, models.NewMapping("size"))
	tree.Insert(methodA, models.NewMapping("run"))

	assert.Equal(t, []models.Entry{fieldA, methodA}, tree.Children(classA))
	assert.Equal(t, []models.Entry{methodA}, tree.Siblings(fieldA))
	assert.Equal(t, []models.Entry{classB}, tree.Siblings(classA))
	assert.Empty(t, tree.Siblings(classB.Field("x", "I")))
}

func TestHashTree_IterationIsDeterministic(t *testing.T) {
	build := func() *HashTree {
		tree := NewHashTree()
		for _, e := range []models.Entry{classB, fieldA, methodI, classA, localA} {
			tree.Insert(e, models.NewMapping("x"))
		}
		return tree
	}

	first, second := build(), build()
	assert.Equal(t, first.AllEntries(), second.AllEntries())
	assert.Equal(t, first.AllEntries(), first.AllEntries())
}

func TestHashTree_StructuralEntryIdentity(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(models.NewClassEntry("a").Field("f", "I"), models.NewMapping("size"))

	// a separately constructed but equal entry finds the same node
	got, ok := tree.Get(models.FieldEntry{Owner: models.ClassEntry{Name: "a"}, Name: "f", Desc: "I"})
	require.True(t, ok)
	assert.Equal(t, "size", got.TargetName)
}

// ── Translate ─────────────────────────────────────────────────────────────────

func TestHashTree_TranslateIsPure(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(fieldA, models.NewMapping("size"))
	tree.Insert(classB, models.NewMapping("Beta"))

	renamed := models.NewClassEntry("z")
	translated := tree.Translate(func(e models.Entry) models.Entry {
		if f, ok := e.(models.FieldEntry); ok && f.Owner == classA {
			return renamed.Field(f.Name, f.Desc)
		}
		return e
	})

	assert.True(t, translated.Contains(renamed.Field("f", "I")))
	assert.False(t, translated.Contains(fieldA))
	assert.True(t, translated.Contains(classB))

	assert.True(t, tree.Contains(fieldA), "receiver must not change")
	assert.False(t, tree.Contains(renamed.Field("f", "I")))
}

// ── Snapshot ──────────────────────────────────────────────────────────────────

func TestHashTree_SnapshotIsIsolated(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(fieldA, models.NewMapping("size"))
	tree.Insert(methodA, models.NewMapping("run"))

	snap := tree.Snapshot()

	tree.Insert(fieldA, models.NewMapping("length"))
	tree.Remove(methodA)
	tree.Insert(classB, models.NewMapping("Beta"))

	got, ok := snap.Get(fieldA)
	require.True(t, ok)
	assert.Equal(t, "size", got.TargetName)
	assert.True(t, snap.Contains(methodA))
	assert.False(t, snap.Contains(classB))
	assert.Equal(t, 2, snap.Len())

	snap.Insert(localA, models.NewMapping("count"))
	assert.False(t, tree.Contains(localA))
}

func TestHashTree_SnapshotSharesUntouchedNodes(t *testing.T) {
	tree := NewHashTree()
	tree.Insert(fieldA, models.NewMapping("size"))
	tree.Insert(classB, models.NewMapping("Beta"))

	snap := tree.Snapshot()
	tree.Insert(fieldA, models.NewMapping("length"))

	assert.Same(t, snap.FindNode(classB), tree.FindNode(classB))
	assert.NotSame(t, snap.FindNode(fieldA), tree.FindNode(fieldA))
}

func TestCopyOf_GenericTree(t *testing.T) {
	tracked := NewDeltaTrackingTree(NewHashTree())
	tracked.Insert(fieldA, models.NewMapping("size"))

	cp := CopyOf(tracked)
	tracked.Remove(fieldA)

	assert.True(t, cp.Contains(fieldA))
}
