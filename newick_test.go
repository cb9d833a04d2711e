// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import (
	"strings"
	"testing"

	"github.com/js-arias/gotax"
)

func TestFromNewick(t *testing.T) {
	tax, err := taxonomy.FromNewick(strings.NewReader(newickFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tax.Len(); got != 6 {
		t.Fatalf("Len() = %d, want 6", got)
	}

	root := tax.Root()
	if root == nil || root.ID != "F" {
		t.Fatalf("Root() = %v, want id F", root)
	}

	kids, err := tax.Children("F")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kids) != 3 {
		t.Fatalf("Children(F) = %d nodes, want 3", len(kids))
	}
	want := []string{"A", "B", "E"}
	for i, k := range kids {
		if k.ID != want[i] {
			t.Errorf("Children(F)[%d] = %s, want %s", i, k.ID, want[i])
		}
	}

	lineage, err := tax.Lineage("C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLineage := []string{"C", "E", "F"}
	if len(lineage) != len(wantLineage) {
		t.Fatalf("Lineage(C) = %d nodes, want %d", len(lineage), len(wantLineage))
	}
	for i, n := range lineage {
		if n.ID != wantLineage[i] {
			t.Errorf("Lineage(C)[%d] = %s, want %s", i, n.ID, wantLineage[i])
		}
	}

	_, dist, err := tax.ParentWithDistance("C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist == nil || *dist != 0.3 {
		t.Errorf("ParentWithDistance(C) distance = %v, want 0.3", dist)
	}

	_, rootDist, err := tax.ParentWithDistance("F")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rootDist != nil {
		t.Errorf("ParentWithDistance(F) distance = %v, want nil at the root", rootDist)
	}
}

func TestFromNewickNamesNotIndexed(t *testing.T) {
	tax, err := taxonomy.FromNewick(strings.NewReader(newickFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tax.FindAllByName("A"); len(got) != 0 {
		t.Errorf("FindAllByName(A) = %v, want empty: newick names are not indexed", got)
	}
}

func TestFromNewickUnnamedInternal(t *testing.T) {
	tax, err := taxonomy.FromNewick(strings.NewReader(newickUnnamedInternalFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root := tax.Root()
	if root == nil {
		t.Fatal("Root() = nil, want a node")
	}
	if root.ID != "internal-2" {
		t.Errorf("Root().ID = %q, want synthetic id internal-2 (outermost subtree closes last)", root.ID)
	}

	kids, err := tax.Children(root.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kids) != 3 {
		t.Fatalf("Children(root) = %d nodes, want 3", len(kids))
	}
	if kids[2].ID != "internal-1" {
		t.Errorf("Children(root)[2].ID = %q, want synthetic id internal-1 (innermost subtree closes first)", kids[2].ID)
	}
}

func TestFromNewickMissingOpenParen(t *testing.T) {
	if _, err := taxonomy.FromNewick(strings.NewReader("A,B);")); err == nil {
		t.Error("FromNewick with no leading '(' = nil error, want an error")
	}
}

func TestFromNewickMissingSemicolon(t *testing.T) {
	if _, err := taxonomy.FromNewick(strings.NewReader("(A,B)")); err == nil {
		t.Error("FromNewick with no trailing ';' = nil error, want an error")
	}
}

func TestToNewickRoundTrip(t *testing.T) {
	tax, err := taxonomy.FromNewick(strings.NewReader(newickFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tax.ToNewick()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := taxonomy.FromNewick(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("re-parsing serialized output: %v", err)
	}
	if back.Len() != tax.Len() {
		t.Fatalf("round-tripped Len() = %d, want %d", back.Len(), tax.Len())
	}
	root := back.Root()
	if root == nil || root.ID != "F" {
		t.Fatalf("round-tripped Root() = %v, want id F", root)
	}
}

func TestToNewickEmpty(t *testing.T) {
	tax := mustFromJSON(t, jsonGraphFixture)
	pruned, err := tax.PruneKeep(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := pruned.ToNewick()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != ";" {
		t.Errorf("ToNewick on an empty taxonomy = %q, want %q", out, ";")
	}
}
