package tile

import "fmt"

// Nav is the stack of entered folders. It stores folder ids, never tile
// pointers, and resolves them against whatever tree it is given so a tree
// replaced by an edit cannot leave the stack pointing at stale nodes.
type Nav struct {
	stack []string
}

// Enter pushes a folder onto the stack.
func (n *Nav) Enter(folder *Tile) error {
	if !folder.IsFolder() {
		return fmt.Errorf("%w: %s", ErrNotFolder, folderID(folder))
	}
	n.stack = append(n.stack, folder.ID)
	return nil
}

// Up pops one folder. It reports false at the root.
func (n *Nav) Up() bool {
	if len(n.stack) == 0 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Reset returns to the root.
func (n *Nav) Reset() {
	n.stack = nil
}

// Depth is the number of entered folders.
func (n *Nav) Depth() int {
	return len(n.stack)
}

// IDs returns a copy of the folder ids from outermost to innermost.
func (n *Nav) IDs() []string {
	out := make([]string, len(n.stack))
	copy(out, n.stack)
	return out
}

// Current resolves the innermost folder in tiles. Ids that no longer name a
// folder truncate the stack at that point, falling back to the deepest
// ancestor that still exists. A nil result means the root.
func (n *Nav) Current(tiles []*Tile) *Tile {
	var current *Tile
	for i, id := range n.stack {
		folder := Find(tiles, id)
		if !folder.IsFolder() {
			n.stack = n.stack[:i]
			break
		}
		current = folder
	}
	return current
}

// Level returns the tiles displayed at the current position.
func (n *Nav) Level(tiles []*Tile) []*Tile {
	folder := n.Current(tiles)
	if folder == nil {
		return tiles
	}
	return folder.Children
}

// Breadcrumbs returns the names of the entered folders.
func (n *Nav) Breadcrumbs(tiles []*Tile) []string {
	n.Current(tiles)
	names := make([]string, 0, len(n.stack))
	for _, id := range n.stack {
		if folder := Find(tiles, id); folder != nil {
			names = append(names, folder.Name)
		}
	}
	return names
}

func folderID(t *Tile) string {
	if t == nil {
		return "<nil>"
	}
	return t.ID
}
