package tile

// Index is a flat id lookup over a tree. It records the parent of every tile
// so callers can resolve a node and its ancestry without a walk. Ids seen
// more than once keep their first occurrence in lookup order, matching Find,
// and are reported by Duplicates.
type Index struct {
	nodes  map[string]*Tile
	parent map[string]string
	order  []string
	dups   []string
}

// NewIndex builds an Index over tiles.
func NewIndex(tiles []*Tile) *Index {
	ix := &Index{
		nodes:  make(map[string]*Tile),
		parent: make(map[string]string),
	}
	Walk(tiles, func(t *Tile, parent *Tile) bool {
		if _, seen := ix.nodes[t.ID]; seen {
			ix.dups = append(ix.dups, t.ID)
			return true
		}
		ix.nodes[t.ID] = t
		if parent != nil {
			ix.parent[t.ID] = parent.ID
		}
		ix.order = append(ix.order, t.ID)
		return true
	})
	return ix
}

// Len is the number of distinct ids.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Lookup returns the tile for id.
func (ix *Index) Lookup(id string) (*Tile, bool) {
	t, ok := ix.nodes[id]
	return t, ok
}

// Contains reports whether id is present.
func (ix *Index) Contains(id string) bool {
	_, ok := ix.nodes[id]
	return ok
}

// Parent returns the parent folder id of id. Root tiles have an empty
// parent; ok is false when id is unknown.
func (ix *Index) Parent(id string) (string, bool) {
	if !ix.Contains(id) {
		return "", false
	}
	return ix.parent[id], true
}

// Path returns the folder ids from the root down to the parent of id.
func (ix *Index) Path(id string) []string {
	var path []string
	for {
		p, ok := ix.Parent(id)
		if !ok || p == "" {
			break
		}
		path = append([]string{p}, path...)
		id = p
	}
	return path
}

// IDs returns every distinct id in lookup order.
func (ix *Index) IDs() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// Duplicates returns ids that occur more than once, once per extra
// occurrence.
func (ix *Index) Duplicates() []string {
	out := make([]string, len(ix.dups))
	copy(out, ix.dups)
	return out
}
