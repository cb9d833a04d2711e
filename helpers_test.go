// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import "strings"

// jsonGraphFixture is a small node-link graph used across the
// suite: a root, two phyla, one genus/species chain under each, and
// a genus/species pair both named "Bacillus" for FindAllByName.
//
//	Life(1)
//	└─ Bacteria(2)
//	   ├─ Proteobacteria(3)
//	   │  └─ Gammaproteobacteria(4)
//	   │     └─ Escherichia(5)
//	   │        └─ Escherichia coli(6)
//	   └─ Firmicutes(7)
//	      └─ Bacillus(8)
//	         └─ Bacillus(9)
const jsonGraphFixture = `{
  "directed": true,
  "multigraph": false,
  "graph": [],
  "nodes": [
    {"id": "1", "name": "Life", "rank": ""},
    {"id": "2", "name": "Bacteria", "rank": "domain"},
    {"id": "3", "name": "Proteobacteria", "rank": "phylum"},
    {"id": "4", "name": "Gammaproteobacteria", "rank": "class"},
    {"id": "5", "name": "Escherichia", "rank": "genus"},
    {"id": "6", "name": "Escherichia coli", "rank": "species"},
    {"id": "7", "name": "Firmicutes", "rank": "phylum"},
    {"id": "8", "name": "Bacillus", "rank": "genus"},
    {"id": "9", "name": "Bacillus", "rank": "species"}
  ],
  "links": [
    {"source": 1, "target": 0},
    {"source": 2, "target": 1},
    {"source": 3, "target": 2},
    {"source": 4, "target": 3},
    {"source": 5, "target": 4},
    {"source": 6, "target": 1},
    {"source": 7, "target": 6},
    {"source": 8, "target": 7}
  ]
}`

// newickStarJSON returns a reader over a trivial single-node graph,
// used by tests that only need a valid taxonomy to exercise an
// unrelated code path (an unknown id lookup, a duplicate-id error).
func newickStarJSON() *strings.Reader {
	return strings.NewReader(`{
  "directed": true,
  "multigraph": false,
  "graph": [],
  "nodes": [{"id": "root", "name": "Life", "rank": ""}],
  "links": []
}`)
}

// newickFixture is the Newick form of a small, fully labeled tree
// with both leaf and internal branch lengths.
const newickFixture = "(A:0.1,B:0.2,(C:0.3,D:0.4)E:0.5)F;"

// newickUnnamedInternalFixture is the same tree with both internal
// nodes left unnamed, to exercise synthetic-id assignment.
const newickUnnamedInternalFixture = "(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);"
