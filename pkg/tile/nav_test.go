package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavEnterAndUp(t *testing.T) {
	tree := sampleTree()
	nav := &Nav{}

	assert.Nil(t, nav.Current(tree))
	assert.Len(t, nav.Level(tree), 3)

	require.NoError(t, nav.Enter(Find(tree, "dev")))
	require.NoError(t, nav.Enter(Find(tree, "deep")))
	assert.Equal(t, 2, nav.Depth())
	assert.Equal(t, "deep", nav.Current(tree).ID)
	assert.Equal(t, []string{"Dev", "Deep"}, nav.Breadcrumbs(tree))
	require.Len(t, nav.Level(tree), 1)
	assert.Equal(t, "leaf", nav.Level(tree)[0].ID)

	assert.True(t, nav.Up())
	assert.Equal(t, "dev", nav.Current(tree).ID)
	assert.True(t, nav.Up())
	assert.False(t, nav.Up())
}

func TestNavRejectsLeaf(t *testing.T) {
	nav := &Nav{}
	assert.ErrorIs(t, nav.Enter(Find(sampleTree(), "mail")), ErrNotFolder)
	assert.ErrorIs(t, nav.Enter(nil), ErrNotFolder)
	assert.Zero(t, nav.Depth())
}

func TestNavResolvesAgainstReplacedTree(t *testing.T) {
	tree := sampleTree()
	nav := &Nav{}
	require.NoError(t, nav.Enter(Find(tree, "dev")))

	// An unrelated edit swaps the whole tree; the stack follows the new one.
	next := Clone(tree)
	next, err := Insert(next, &Tile{ID: "added"}, "dev")
	require.NoError(t, err)

	level := nav.Level(next)
	assert.Equal(t, "added", level[len(level)-1].ID)
}

func TestNavFallsBackWhenFolderDeleted(t *testing.T) {
	tree := sampleTree()
	nav := &Nav{}
	require.NoError(t, nav.Enter(Find(tree, "dev")))
	require.NoError(t, nav.Enter(Find(tree, "deep")))

	next, ok := Delete(Clone(tree), "deep")
	require.True(t, ok)

	assert.Equal(t, "dev", nav.Current(next).ID)
	assert.Equal(t, 1, nav.Depth())

	next, ok = Delete(next, "dev")
	require.True(t, ok)
	assert.Nil(t, nav.Current(next))
	assert.Zero(t, nav.Depth())
}

func TestIndex(t *testing.T) {
	tree := append(sampleTree(), &Tile{ID: "leaf", Name: "dup"})
	ix := NewIndex(tree)

	assert.Equal(t, 6, ix.Len())
	leaf, ok := ix.Lookup("leaf")
	require.True(t, ok)
	assert.Equal(t, "dup", leaf.Name, "root level is searched before folders")
	assert.Equal(t, []string{"leaf"}, ix.Duplicates())

	parent, ok := ix.Parent("term")
	require.True(t, ok)
	assert.Equal(t, "dev", parent)

	assert.Equal(t, []string{"dev"}, ix.Path("deep"))
	assert.Empty(t, ix.Path("mail"))

	_, ok = ix.Parent("missing")
	assert.False(t, ok)
}
