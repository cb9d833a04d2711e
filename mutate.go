// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import "golang.org/x/exp/slices"

// AddNode appends a new leaf node as a child of parentID.
func (t *Taxonomy) AddNode(parentID, id, name, rank string) error {
	pIdx, ok := t.idIndex[parentID]
	if !ok {
		return errUnknownID(parentID)
	}
	if _, dup := t.idIndex[id]; dup {
		return errDuplicateID(id)
	}
	_, err := t.addLeaf(pIdx, id, name, rank, 0, false)
	return err
}

// An EditOption changes one field of a node edited with EditNode.
type EditOption func(*editParams)

type editParams struct {
	name     *string
	rank     *string
	parentID *string
	distance *float64
}

// WithName renames the edited node.
func WithName(name string) EditOption {
	return func(p *editParams) { p.name = &name }
}

// WithRank re-ranks the edited node.
func WithRank(rank string) EditOption {
	return func(p *editParams) { p.rank = &rank }
}

// WithParent reparents the edited node under parentID. The new
// parent must not be the node itself or one of its own descendants.
func WithParent(parentID string) EditOption {
	return func(p *editParams) { p.parentID = &parentID }
}

// WithDistance sets the edited node's distance to its parent.
func WithDistance(distance float64) EditOption {
	return func(p *editParams) { p.distance = &distance }
}

// EditNode changes any subset of a node's name, rank, parent and
// parent-distance, as selected by opts.
func (t *Taxonomy) EditNode(id string, opts ...EditOption) error {
	idx, ok := t.idIndex[id]
	if !ok {
		return errUnknownID(id)
	}

	var p editParams
	for _, opt := range opts {
		opt(&p)
	}

	if p.parentID != nil {
		newParentIdx, ok := t.idIndex[*p.parentID]
		if !ok {
			return errUnknownID(*p.parentID)
		}
		if idx == t.root {
			return &Error{Kind: ErrCycle, ID: id, Msg: "cannot reparent the root"}
		}
		if newParentIdx == idx || t.isDescendant(idx, newParentIdx) {
			return errCycle(id)
		}
		if oldParentIdx := t.parent[idx]; oldParentIdx >= 0 {
			t.removeChild(oldParentIdx, idx)
		}
		t.parent[idx] = newParentIdx
		t.children[newParentIdx] = append(t.children[newParentIdx], idx)
	}

	if p.name != nil {
		oldName := t.names[idx]
		newName := *p.name
		if newName != oldName {
			t.removeFromNameIndex(oldName, idx)
			t.names[idx] = newName
			if !t.skipNameIndex && newName != "" {
				t.nameIndex[newName] = append(t.nameIndex[newName], idx)
			}
		}
	}

	if p.rank != nil {
		t.ranks[idx] = *p.rank
	}

	if p.distance != nil {
		t.distance[idx] = *p.distance
		t.hasDist[idx] = true
	}

	return nil
}

// RemoveNode deletes id, reparenting its children to id's own
// parent. The children are appended after their new siblings,
// preserving their relative order. The root may not be removed.
func (t *Taxonomy) RemoveNode(id string) error {
	idx, ok := t.idIndex[id]
	if !ok {
		return errUnknownID(id)
	}
	if idx == t.root {
		return &Error{Kind: ErrInvalidFormat, ID: id, Msg: "cannot remove the root"}
	}

	pIdx := t.parent[idx]
	kids := t.children[idx]
	for _, c := range kids {
		t.parent[c] = pIdx
	}
	t.removeChild(pIdx, idx)
	t.children[pIdx] = append(t.children[pIdx], kids...)

	t.removeFromNameIndex(t.names[idx], idx)
	delete(t.idIndex, id)
	t.children[idx] = nil
	t.live[idx] = false
	t.n--
	return nil
}

// PruneKeep returns a new taxonomy containing only the given ids
// and their ancestors, with internal indices renumbered in
// depth-first, parent-before-child order. An empty id list produces
// an empty taxonomy.
func (t *Taxonomy) PruneKeep(ids []string) (*Taxonomy, error) {
	if len(ids) == 0 {
		return newTaxonomy(), nil
	}
	keep := make(map[int]bool)
	for _, id := range ids {
		idx, ok := t.idIndex[id]
		if !ok {
			return nil, errUnknownID(id)
		}
		for cur := idx; cur >= 0; cur = t.parent[cur] {
			keep[cur] = true
		}
	}
	return t.buildPruned(func(idx int) bool { return keep[idx] })
}

// PruneRemove returns a new taxonomy with the given ids and all of
// their descendants removed, with internal indices renumbered in
// depth-first, parent-before-child order.
func (t *Taxonomy) PruneRemove(ids []string) (*Taxonomy, error) {
	seed := make([]int, 0, len(ids))
	for _, id := range ids {
		idx, ok := t.idIndex[id]
		if !ok {
			return nil, errUnknownID(id)
		}
		seed = append(seed, idx)
	}
	slices.Sort(seed)

	removed := make([]bool, len(t.ids))
	var markDescendants func(idx int)
	markDescendants = func(idx int) {
		removed[idx] = true
		for _, c := range t.children[idx] {
			if t.live[c] && !removed[c] {
				markDescendants(c)
			}
		}
	}
	for _, idx := range seed {
		if t.live[idx] && !removed[idx] {
			markDescendants(idx)
		}
	}

	return t.buildPruned(func(idx int) bool { return t.live[idx] && !removed[idx] })
}

// buildPruned copies every index for which keep returns true into a
// fresh taxonomy, walking the live children lists depth-first from
// the root so that a node is always copied before its children,
// whatever their relative internal-index order. EditNode's
// WithParent can reparent a node under a later-indexed one, so a
// plain index-order walk cannot be relied on to see a parent before
// its child.
func (t *Taxonomy) buildPruned(keep func(int) bool) (*Taxonomy, error) {
	nt := newTaxonomy()
	nt.distanceDefault = t.distanceDefault
	nt.skipNameIndex = t.skipNameIndex

	if t.root < 0 {
		return nt, nil
	}
	remap := make(map[int]int, t.n)
	if err := t.copyPruned(t.root, keep, nt, remap); err != nil {
		return nil, err
	}
	return nt, nil
}

// copyPruned visits idx and then its live children, in that order,
// copying idx into nt when keep(idx) holds. Visiting idx before its
// children guarantees remap already holds idx's own new index by the
// time any child looks up its parent.
func (t *Taxonomy) copyPruned(idx int, keep func(int) bool, nt *Taxonomy, remap map[int]int) error {
	if !t.live[idx] {
		return nil
	}
	if keep(idx) {
		parentIdx := -1
		if pi := t.parent[idx]; pi >= 0 {
			if newPi, ok := remap[pi]; ok {
				parentIdx = newPi
			}
		}
		newIdx := nt.reserveSlot(parentIdx)
		if err := nt.finalizeSlot(newIdx, t.ids[idx], t.names[idx], t.ranks[idx], t.distance[idx], t.hasDist[idx]); err != nil {
			return err
		}
		remap[idx] = newIdx
	}
	for _, c := range t.children[idx] {
		if err := t.copyPruned(c, keep, nt, remap); err != nil {
			return err
		}
	}
	return nil
}

// isDescendant reports whether idx is a descendant of ancestorIdx.
func (t *Taxonomy) isDescendant(ancestorIdx, idx int) bool {
	for cur := t.parent[idx]; cur >= 0; cur = t.parent[cur] {
		if cur == ancestorIdx {
			return true
		}
	}
	return false
}

// removeChild removes childIdx from parentIdx's children list,
// preserving the order of the remaining children.
func (t *Taxonomy) removeChild(parentIdx, childIdx int) {
	kids := t.children[parentIdx]
	for i, c := range kids {
		if c == childIdx {
			t.children[parentIdx] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

// removeFromNameIndex removes idx from name's index entry, if any.
func (t *Taxonomy) removeFromNameIndex(name string, idx int) {
	if t.skipNameIndex || name == "" {
		return
	}
	idxs := t.nameIndex[name]
	for i, x := range idxs {
		if x == idx {
			idxs = append(idxs[:i], idxs[i+1:]...)
			break
		}
	}
	if len(idxs) == 0 {
		delete(t.nameIndex, name)
		return
	}
	t.nameIndex[name] = idxs
}
