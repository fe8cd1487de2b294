package tile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []*Tile {
	return []*Tile{
		{ID: "mail", Name: "Mail", Icon: "Mail", Actions: []Action{{Type: ActionURL, Value: "mail.example.com"}}},
		{
			ID:   "dev",
			Name: "Dev",
			Type: KindFolder,
			Children: []*Tile{
				{ID: "term", Name: "Terminal", Actions: []Action{{Type: ActionApp, Value: "terminal"}}, Hotkey: "CmdOrCtrl+T"},
				{
					ID:   "deep",
					Name: "Deep",
					Type: KindFolder,
					Children: []*Tile{
						{ID: "leaf", Name: "Leaf", Actions: []Action{{Type: ActionLog, Value: "leaf"}}},
					},
				},
			},
		},
		{ID: "break", Name: "Break", Actions: []Action{{Type: ActionUI, Action: "toggleHyperFocus"}}},
	}
}

func TestFindThenUpdateWithCopyIsIdentity(t *testing.T) {
	for _, id := range []string{"mail", "dev", "term", "deep", "leaf", "break"} {
		t.Run(id, func(t *testing.T) {
			tree := sampleTree()
			want := Clone(tree)

			found := Find(tree, id)
			require.NotNil(t, found)
			require.True(t, Update(tree, id, found.Clone()))

			if diff := cmp.Diff(want, tree); diff != "" {
				t.Fatalf("tree changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteThenFindAtAnyDepth(t *testing.T) {
	for _, id := range []string{"mail", "term", "leaf", "deep"} {
		t.Run(id, func(t *testing.T) {
			tree, ok := Delete(sampleTree(), id)
			require.True(t, ok)
			assert.Nil(t, Find(tree, id))
		})
	}

	tree, ok := Delete(sampleTree(), "deep")
	require.True(t, ok)
	assert.Nil(t, Find(tree, "leaf"), "children go with their folder")
}

func TestDeleteMissing(t *testing.T) {
	tree := sampleTree()
	out, ok := Delete(tree, "nope")
	assert.False(t, ok)
	assert.Len(t, out, len(tree))
}

func TestDeleteDoesNotAliasInputRoot(t *testing.T) {
	tree := sampleTree()
	out, ok := Delete(tree, "mail")
	require.True(t, ok)
	assert.Equal(t, "mail", tree[0].ID)
	assert.Equal(t, "dev", out[0].ID)
}

func TestFirstMatchWinsLevelBeforeDepth(t *testing.T) {
	tree := []*Tile{
		{ID: "f", Type: KindFolder, Children: []*Tile{{ID: "x", Name: "nested"}}},
		{ID: "x", Name: "root"},
	}
	assert.Equal(t, "root", Find(tree, "x").Name)

	require.True(t, Update(tree, "x", &Tile{ID: "x", Name: "updated"}))
	assert.Equal(t, "updated", tree[1].Name)
	assert.Equal(t, "nested", tree[0].Children[0].Name)
}

func TestReorderFolderChildrenPreservesSet(t *testing.T) {
	folder := &Tile{ID: "f", Type: KindFolder, Children: []*Tile{{ID: "t1"}, {ID: "t2"}}}

	swapped := Reorder(folder.Children, 0, 1)

	require.Len(t, swapped, 2)
	assert.Equal(t, "t2", swapped[0].ID)
	assert.Equal(t, "t1", swapped[1].ID)
	assert.Equal(t, "t1", folder.Children[0].ID, "input level untouched")
}

func TestReorderMove(t *testing.T) {
	level := []*Tile{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	ids := func(ts []*Tile) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(Reorder(level, 0, 2)))
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(Reorder(level, 3, 0)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Reorder(level, 0, 9)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Reorder(level, -1, 2)))
}

func TestInsert(t *testing.T) {
	tree := sampleTree()

	tree, err := Insert(tree, &Tile{ID: "new"}, "")
	require.NoError(t, err)
	assert.Equal(t, "new", tree[len(tree)-1].ID)

	tree, err = Insert(tree, &Tile{ID: "nested"}, "deep")
	require.NoError(t, err)
	assert.NotNil(t, Find(Find(tree, "deep").Children, "nested"))

	_, err = Insert(tree, &Tile{ID: "leaf"}, "")
	assert.True(t, errors.Is(err, ErrDuplicateID))

	_, err = Insert(tree, &Tile{ID: "x", Type: KindFolder, Children: []*Tile{{ID: "mail"}}}, "")
	assert.True(t, errors.Is(err, ErrDuplicateID), "ids inside an inserted subtree are checked")

	_, err = Insert(tree, &Tile{ID: "y"}, "mail")
	assert.True(t, errors.Is(err, ErrNotFolder))

	_, err = Insert(tree, &Tile{ID: "z"}, "missing")
	assert.True(t, errors.Is(err, ErrParentNotFound))

	_, err = Insert(tree, &Tile{}, "")
	assert.True(t, errors.Is(err, ErrMissingID))
}

func TestSaveUpdatesOrAppendsToCurrentFolder(t *testing.T) {
	tree := sampleTree()
	nav := &Nav{}
	require.NoError(t, nav.Enter(Find(tree, "dev")))

	tree, err := Save(tree, &Tile{ID: "leaf", Name: "Renamed"}, nav)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", Find(tree, "leaf").Name)

	tree, err = Save(tree, &Tile{ID: "fresh", Name: "Fresh"}, nav)
	require.NoError(t, err)
	dev := Find(tree, "dev")
	assert.Equal(t, "fresh", dev.Children[len(dev.Children)-1].ID)

	tree, err = Save(tree, &Tile{ID: "top"}, &Nav{})
	require.NoError(t, err)
	assert.Equal(t, "top", tree[len(tree)-1].ID)
}

func TestCloneIsDeep(t *testing.T) {
	vol := 0.5
	tree := []*Tile{{ID: "s", Actions: []Action{{Type: ActionSound, Value: "a.mp3", Volume: &vol}}}}
	cp := Clone(tree)

	*cp[0].Actions[0].Volume = 1
	cp[0].Name = "changed"

	assert.Equal(t, 0.5, *tree[0].Actions[0].Volume)
	assert.Empty(t, tree[0].Name)
	assert.Nil(t, Clone(nil))
}

func TestWalkOrderAndStop(t *testing.T) {
	var seen []string
	Walk(sampleTree(), func(t *Tile, _ *Tile) bool {
		seen = append(seen, t.ID)
		return true
	})
	assert.Equal(t, []string{"mail", "dev", "break", "term", "deep", "leaf"}, seen)

	count := 0
	Walk(sampleTree(), func(*Tile, *Tile) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}
