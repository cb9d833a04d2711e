// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import "gonum.org/v1/gonum/floats"

// Lineage returns the node with the given id followed by every one
// of its ancestors, root-ward, ending at the root itself.
func (t *Taxonomy) Lineage(id string) ([]*Node, error) {
	idx, err := t.InternalIndex(id)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, 0, 8)
	for cur := idx; cur >= 0; cur = t.parent[cur] {
		out = append(out, t.nodeAt(cur))
	}
	return out, nil
}

// Parents returns the lineage of id, excluding id itself.
func (t *Taxonomy) Parents(id string) ([]*Node, error) {
	lineage, err := t.Lineage(id)
	if err != nil {
		return nil, err
	}
	if len(lineage) <= 1 {
		return []*Node{}, nil
	}
	return lineage[1:], nil
}

// Children returns the direct children of id, in insertion order.
func (t *Taxonomy) Children(id string) ([]*Node, error) {
	idx, err := t.InternalIndex(id)
	if err != nil {
		return nil, err
	}
	kids := t.children[idx]
	out := make([]*Node, 0, len(kids))
	for _, c := range kids {
		if n := t.nodeAt(c); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// Parent returns the parent of id, or nil if id is the root.
func (t *Taxonomy) Parent(id string) (*Node, error) {
	idx, err := t.InternalIndex(id)
	if err != nil {
		return nil, err
	}
	pi := t.parent[idx]
	if pi < 0 {
		return nil, nil
	}
	return t.nodeAt(pi), nil
}

// ParentWithDistance returns the parent of id together with the
// distance of the edge between them. At the root it returns
// (nil, nil, nil). If the edge has no stored distance, the
// taxonomy's implicit default is reported instead (1.0 for an
// NCBI-loaded taxonomy, none otherwise).
func (t *Taxonomy) ParentWithDistance(id string) (*Node, *float64, error) {
	idx, err := t.InternalIndex(id)
	if err != nil {
		return nil, nil, err
	}
	pi := t.parent[idx]
	if pi < 0 {
		return nil, nil, nil
	}
	p := t.nodeAt(pi)
	if t.hasDist[idx] {
		d := t.distance[idx]
		return p, &d, nil
	}
	if t.distanceDefault != nil {
		d := *t.distanceDefault
		return p, &d, nil
	}
	return p, nil, nil
}

// ParentAtRank returns the first ancestor of id (id included) whose
// rank equals rank, root-ward. It returns (nil, nil) if no ancestor
// has that rank.
func (t *Taxonomy) ParentAtRank(id, rank string) (*Node, error) {
	lineage, err := t.Lineage(id)
	if err != nil {
		return nil, err
	}
	for _, n := range lineage {
		if n.Rank == rank {
			return n, nil
		}
	}
	return nil, nil
}

// LCA returns the lowest common ancestor of the given ids: the
// deepest node present in every one of their lineages. A single id
// returns its own node; zero ids returns (nil, nil).
func (t *Taxonomy) LCA(ids ...string) (*Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) == 1 {
		return t.GetOrFail(ids[0])
	}

	idxs := make([]int, len(ids))
	for i, id := range ids {
		idx, err := t.InternalIndex(id)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}

	sets := make([]map[int]bool, len(idxs)-1)
	for i := 1; i < len(idxs); i++ {
		s := make(map[int]bool)
		for cur := idxs[i]; cur >= 0; cur = t.parent[cur] {
			s[cur] = true
		}
		sets[i-1] = s
	}

	for cur := idxs[0]; cur >= 0; cur = t.parent[cur] {
		inAll := true
		for _, s := range sets {
			if !s[cur] {
				inAll = false
				break
			}
		}
		if inAll {
			return t.nodeAt(cur), nil
		}
	}
	// Unreachable under the single-root invariant: every lineage
	// ends at the same root, so the loop above always finds it.
	return t.Root(), nil
}

// LineageDistance sums the parent-distance of every edge from id up
// to the root, applying the taxonomy's implicit distance default
// (see ParentWithDistance) and treating an edge with neither a
// stored nor a default distance as contributing zero.
func (t *Taxonomy) LineageDistance(id string) (float64, error) {
	idx, err := t.InternalIndex(id)
	if err != nil {
		return 0, err
	}
	ds := make([]float64, 0, 8)
	for cur := idx; t.parent[cur] >= 0; cur = t.parent[cur] {
		ds = append(ds, t.edgeDistance(cur))
	}
	return floats.Sum(ds), nil
}

// edgeDistance returns the distance to report for the edge from the
// node at idx to its parent: the stored value if present, else the
// taxonomy's default, else zero.
func (t *Taxonomy) edgeDistance(idx int) float64 {
	if t.hasDist[idx] {
		return t.distance[idx]
	}
	if t.distanceDefault != nil {
		return *t.distanceDefault
	}
	return 0
}
