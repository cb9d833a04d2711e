// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy provides a rooted taxonomic tree:
// an in-memory engine for loading, querying, mutating
// and serializing taxonomies such as NCBI, GTDB,
// node-link JSON graphs and Newick trees.
//
// A Taxonomy is a directed graph in which every node has
// at most one parent, so the graph is always a rooted
// tree with a single root whose parent is absent.
package taxonomy

import "fmt"

// A Node is a value view of one taxon.
// It is a snapshot: mutating the Taxonomy that produced it
// does not change a Node already returned to a caller.
type Node struct {
	ID   string
	Name string
	Rank string

	// Parent is the id of the node's parent,
	// or nil at the root.
	Parent *string

	// ParentDistance is the stored distance
	// of the edge from this node to its parent,
	// or nil if no distance was stored.
	ParentDistance *float64
}

// String returns the node's debug representation.
func (n *Node) String() string {
	return fmt.Sprintf("<TaxonomyNode (id=%q rank=%q name=%q)>", n.ID, n.Rank, n.Name)
}

// A Taxonomy is the aggregate that owns every node and
// parent/child edge of a rooted taxonomic tree.
//
// The node arena is addressed by internal index:
// ids[i], names[i] and ranks[i] describe the node at index i,
// parent[i] is the index of its parent (or -1 at the root),
// and children[i] lists the indices of its children in
// insertion order. live[i] is false for an index freed by
// RemoveNode; such an index is never reused.
type Taxonomy struct {
	ids      []string
	names    []string
	ranks    []string
	parent   []int
	distance []float64
	hasDist  []bool
	children [][]int
	live     []bool

	idIndex   map[string]int
	nameIndex map[string][]int

	root int
	n    int

	// distanceDefault is the implicit parent distance used by
	// ParentWithDistance when an edge has no stored distance.
	// NCBI taxonomies set this to 1.0; every other format leaves
	// it nil, so an unweighted edge reports no distance at all.
	distanceDefault *float64

	// skipNameIndex disables the name->indices multimap.
	// Newick taxonomies set this: names mirror ids but are not
	// searchable, matching the format's observable contract.
	skipNameIndex bool
}

func newTaxonomy() *Taxonomy {
	return &Taxonomy{
		idIndex:   make(map[string]int),
		nameIndex: make(map[string][]int),
		root:      -1,
	}
}

// reserveSlot allocates a new arena slot as a child of parentIdx
// (or as the root, if parentIdx < 0), without yet assigning it an
// id. Use finalizeSlot to complete it once the id is known - this
// lets a parser create a node before it has parsed the node's own
// name, while its children still link to a stable index.
func (t *Taxonomy) reserveSlot(parentIdx int) int {
	idx := len(t.ids)
	t.ids = append(t.ids, "")
	t.names = append(t.names, "")
	t.ranks = append(t.ranks, "")
	t.parent = append(t.parent, parentIdx)
	t.distance = append(t.distance, 0)
	t.hasDist = append(t.hasDist, false)
	t.children = append(t.children, nil)
	t.live = append(t.live, true)
	if parentIdx >= 0 {
		t.children[parentIdx] = append(t.children[parentIdx], idx)
	} else {
		t.root = idx
	}
	t.n++
	return idx
}

// finalizeSlot completes a slot reserved by reserveSlot.
func (t *Taxonomy) finalizeSlot(idx int, id, name, rank string, distance float64, hasDist bool) error {
	if _, dup := t.idIndex[id]; dup {
		return errDuplicateID(id)
	}
	t.ids[idx] = id
	t.names[idx] = name
	t.ranks[idx] = rank
	t.distance[idx] = distance
	t.hasDist[idx] = hasDist
	t.idIndex[id] = idx
	if !t.skipNameIndex && name != "" {
		t.nameIndex[name] = append(t.nameIndex[name], idx)
	}
	return nil
}

// addLeaf reserves and finalizes a slot in one step, for parsers
// and mutations that always know the full node up front.
func (t *Taxonomy) addLeaf(parentIdx int, id, name, rank string, distance float64, hasDist bool) (int, error) {
	idx := t.reserveSlot(parentIdx)
	if err := t.finalizeSlot(idx, id, name, rank, distance, hasDist); err != nil {
		return -1, err
	}
	return idx, nil
}

func (t *Taxonomy) nodeAt(idx int) *Node {
	if idx < 0 || idx >= len(t.ids) || !t.live[idx] {
		return nil
	}
	n := &Node{ID: t.ids[idx], Name: t.names[idx], Rank: t.ranks[idx]}
	if pi := t.parent[idx]; pi >= 0 && t.live[pi] {
		p := t.ids[pi]
		n.Parent = &p
	}
	if t.hasDist[idx] {
		d := t.distance[idx]
		n.ParentDistance = &d
	}
	return n
}

// Root returns the root node, or nil if the taxonomy is empty.
func (t *Taxonomy) Root() *Node {
	if t.root < 0 {
		return nil
	}
	return t.nodeAt(t.root)
}

// Len returns the number of live nodes in the taxonomy.
func (t *Taxonomy) Len() int {
	return t.n
}

// Get returns the node with the given id, or nil if unknown.
func (t *Taxonomy) Get(id string) *Node {
	idx, ok := t.idIndex[id]
	if !ok {
		return nil
	}
	return t.nodeAt(idx)
}

// GetOrFail returns the node with the given id,
// or an unknown-id error.
func (t *Taxonomy) GetOrFail(id string) (*Node, error) {
	n := t.Get(id)
	if n == nil {
		return nil, errUnknownID(id)
	}
	return n, nil
}

// InternalIndex returns the internal index of id,
// or an unknown-id error.
func (t *Taxonomy) InternalIndex(id string) (int, error) {
	idx, ok := t.idIndex[id]
	if !ok {
		return -1, errUnknownID(id)
	}
	return idx, nil
}

// FindAllByName returns every live node with the given name,
// ordered by internal index.
func (t *Taxonomy) FindAllByName(name string) []*Node {
	idxs := t.nameIndex[name]
	if len(idxs) == 0 {
		return nil
	}
	sorted := append([]int(nil), idxs...)
	sortInts(sorted)

	out := make([]*Node, 0, len(sorted))
	for _, idx := range sorted {
		if n := t.nodeAt(idx); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Iterate returns every live node, in internal-index order.
func (t *Taxonomy) Iterate() []*Node {
	out := make([]*Node, 0, t.n)
	for i := range t.ids {
		if n := t.nodeAt(i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns an independent copy of the taxonomy.
// The clone shares no mutable state with its source.
func (t *Taxonomy) Clone() *Taxonomy {
	nt := &Taxonomy{
		ids:           append([]string(nil), t.ids...),
		names:         append([]string(nil), t.names...),
		ranks:         append([]string(nil), t.ranks...),
		parent:        append([]int(nil), t.parent...),
		distance:      append([]float64(nil), t.distance...),
		hasDist:       append([]bool(nil), t.hasDist...),
		live:          append([]bool(nil), t.live...),
		root:          t.root,
		n:             t.n,
		skipNameIndex: t.skipNameIndex,
	}
	if t.distanceDefault != nil {
		d := *t.distanceDefault
		nt.distanceDefault = &d
	}
	nt.children = make([][]int, len(t.children))
	for i, c := range t.children {
		nt.children[i] = append([]int(nil), c...)
	}
	nt.idIndex = make(map[string]int, len(t.idIndex))
	for k, v := range t.idIndex {
		nt.idIndex[k] = v
	}
	nt.nameIndex = make(map[string][]int, len(t.nameIndex))
	for k, v := range t.nameIndex {
		nt.nameIndex[k] = append([]int(nil), v...)
	}
	return nt
}

// sortInts sorts a small slice of internal indices in place.
// Its only input, a name's matches in FindAllByName, is always
// small, so an insertion sort avoids pulling in
// sort for a handful of comparisons.
func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
