package tile

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when inserting a tile whose id is already
	// present anywhere in the tree.
	ErrDuplicateID = errors.New("tile: duplicate id")
	// ErrParentNotFound is returned when the insert target does not exist.
	ErrParentNotFound = errors.New("tile: parent not found")
	// ErrNotFolder is returned when the insert target is not a folder.
	ErrNotFolder = errors.New("tile: parent is not a folder")
	// ErrMissingID is returned for tiles without an id.
	ErrMissingID = errors.New("tile: id required")
)

// Clone deep copies a tree.
func Clone(tiles []*Tile) []*Tile {
	if tiles == nil {
		return nil
	}
	out := make([]*Tile, len(tiles))
	for i, t := range tiles {
		out[i] = t.Clone()
	}
	return out
}

// Walk visits every tile in lookup order. Returning false from fn stops the
// walk.
func Walk(tiles []*Tile, fn func(t *Tile, parent *Tile) bool) {
	walkLevel(tiles, nil, fn)
}

func walkLevel(tiles []*Tile, parent *Tile, fn func(t *Tile, parent *Tile) bool) bool {
	for _, t := range tiles {
		if t == nil {
			continue
		}
		if !fn(t, parent) {
			return false
		}
	}
	for _, t := range tiles {
		if t.IsFolder() && len(t.Children) > 0 {
			if !walkLevel(t.Children, t, fn) {
				return false
			}
		}
	}
	return true
}

// Flatten returns every tile of the tree in lookup order.
func Flatten(tiles []*Tile) []*Tile {
	var out []*Tile
	Walk(tiles, func(t *Tile, _ *Tile) bool {
		out = append(out, t)
		return true
	})
	return out
}

// Find returns the first tile with the given id, or nil.
func Find(tiles []*Tile, id string) *Tile {
	for _, t := range tiles {
		if t != nil && t.ID == id {
			return t
		}
	}
	for _, t := range tiles {
		if t.IsFolder() {
			if found := Find(t.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// Update replaces the first tile with the given id by replacement. It
// reports whether a tile was replaced.
func Update(tiles []*Tile, id string, replacement *Tile) bool {
	for i, t := range tiles {
		if t != nil && t.ID == id {
			tiles[i] = replacement
			return true
		}
	}
	for _, t := range tiles {
		if t.IsFolder() && Update(t.Children, id, replacement) {
			return true
		}
	}
	return false
}

// Insert adds t to the root level when parentID is empty, otherwise to the
// children of the folder parentID. The possibly grown root slice is
// returned.
func Insert(tiles []*Tile, t *Tile, parentID string) ([]*Tile, error) {
	if t == nil || t.ID == "" {
		return tiles, ErrMissingID
	}
	ix := NewIndex(tiles)
	for _, incoming := range append([]*Tile{t}, Flatten(t.Children)...) {
		if ix.Contains(incoming.ID) {
			return tiles, fmt.Errorf("%w: %s", ErrDuplicateID, incoming.ID)
		}
	}
	if parentID == "" {
		return append(tiles, t), nil
	}
	parent := Find(tiles, parentID)
	if parent == nil {
		return tiles, fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
	}
	if !parent.IsFolder() {
		return tiles, fmt.Errorf("%w: %s", ErrNotFolder, parentID)
	}
	parent.Children = append(parent.Children, t)
	return tiles, nil
}

// Delete removes the first tile with the given id along with its subtree.
func Delete(tiles []*Tile, id string) ([]*Tile, bool) {
	for i, t := range tiles {
		if t != nil && t.ID == id {
			return append(tiles[:i:i], tiles[i+1:]...), true
		}
	}
	for _, t := range tiles {
		if !t.IsFolder() {
			continue
		}
		if children, ok := Delete(t.Children, id); ok {
			t.Children = children
			return tiles, true
		}
	}
	return tiles, false
}

// Reorder moves the tile at from to index to within one level and returns
// the new slice. Indexes out of range leave the level unchanged.
func Reorder(tiles []*Tile, from, to int) []*Tile {
	out := make([]*Tile, len(tiles))
	copy(out, tiles)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]*Tile{moved}, out[to:]...)...)
	return out
}

// IndexOf returns the position of id within one level, or -1.
func IndexOf(tiles []*Tile, id string) int {
	for i, t := range tiles {
		if t != nil && t.ID == id {
			return i
		}
	}
	return -1
}

// Save applies an editor save: the tile is replaced wherever its id already
// lives, otherwise it is appended to the folder shown by nav (the root when
// nav is empty).
func Save(tiles []*Tile, t *Tile, nav *Nav) ([]*Tile, error) {
	if t == nil || t.ID == "" {
		return tiles, ErrMissingID
	}
	if Update(tiles, t.ID, t) {
		return tiles, nil
	}
	parentID := ""
	if nav != nil {
		if folder := nav.Current(tiles); folder != nil {
			parentID = folder.ID
		}
	}
	return Insert(tiles, t, parentID)
}
