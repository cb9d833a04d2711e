// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/js-arias/gotax"
	"gonum.org/v1/gonum/stat/distuv"
)

// randomRanks are the ranks, shallowest first, from which
// newRandomTaxonomy draws each node's rank uniformly at random.
var randomRanks = []string{"domain", "phylum", "class", "order", "family", "genus", "species"}

// newRandomTaxonomy builds a random, structurally valid taxonomy of
// n nodes: node "0" is the root, and every later node i attaches to
// a uniformly chosen earlier node, the same way simulate.Uniform
// picked a random existing sister for each new terminal. Each
// node's rank is drawn from a uniform distribution over
// randomRanks, giving every taxonomy a plausible (if not
// necessarily lineage-consistent) rank ladder without hand-writing
// a fixture. It exists to exercise Prune and Clone at a size no
// literal fixture covers economically.
func newRandomTaxonomy(n int) *taxonomy.Taxonomy {
	if n < 1 {
		panic("expecting at least one node")
	}

	doc := fmt.Sprintf(`{"directed":true,"multigraph":false,"graph":[],"nodes":[{"id":"0","name":"root-0","rank":"domain"}],"links":[]}`)
	tax, err := taxonomy.FromJSON(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}

	rankPick := distuv.Uniform{Min: 0, Max: float64(len(randomRanks))}
	for i := 1; i < n; i++ {
		parent := strconv.Itoa(rand.IntN(i))
		id := strconv.Itoa(i)
		rankIdx := int(rankPick.Rand())
		if rankIdx >= len(randomRanks) {
			rankIdx = len(randomRanks) - 1
		}
		if err := tax.AddNode(parent, id, "taxon-"+id, randomRanks[rankIdx]); err != nil {
			panic(err)
		}
	}
	return tax
}
