// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shenwei356/breader"
)

// ncbiFieldSep is the column separator used by names.dmp and
// nodes.dmp: a pipe wrapped in tabs, not a plain tab.
const ncbiFieldSep = "\t|\t"

// scientificNameClass is the only names.dmp name class extracted
// into a node's display name.
const scientificNameClass = "scientific name"

type ncbiName struct {
	taxID string
	name  string
	class string
}

type ncbiNode struct {
	taxID    string
	parentID string
	rank     string
	hidden   bool
}

// ncbiDefaultDistance is reported by ParentWithDistance for every
// edge of an NCBI-loaded taxonomy, since nodes.dmp carries no
// branch-length information of its own.
var ncbiDefaultDistance = 1.0

// FromNCBI loads a taxonomy from an NCBI taxdump directory,
// reading <dir>/names.dmp and <dir>/nodes.dmp.
func FromNCBI(dir string) (*Taxonomy, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, errInvalidFormat("ncbi taxonomy expects a directory containing names.dmp and nodes.dmp")
	}
	return FromNCBIFiles(filepath.Join(dir, "names.dmp"), filepath.Join(dir, "nodes.dmp"))
}

// FromNCBIFiles loads a taxonomy from an explicit names.dmp/nodes.dmp
// pair.
func FromNCBIFiles(namesPath, nodesPath string) (*Taxonomy, error) {
	names, err := readNamesDmp(namesPath)
	if err != nil {
		return nil, err
	}
	nodes, err := readNodesDmp(nodesPath)
	if err != nil {
		return nil, err
	}

	t := newTaxonomy()
	d := ncbiDefaultDistance
	t.distanceDefault = &d

	seen := make(map[string]bool, len(nodes))
	recIdx := make(map[string]int, len(nodes))
	rootTaxID := ""
	for _, rec := range nodes {
		if seen[rec.taxID] {
			return nil, errDuplicateID(rec.taxID)
		}
		seen[rec.taxID] = true
		if rec.taxID == rec.parentID {
			rootTaxID = rec.taxID
		}
	}
	if rootTaxID == "" {
		return nil, errMissingRoot()
	}

	// First pass: reserve the root's slot, so every later parent
	// lookup has a known index to point at, and mark every other
	// node with a placeholder until its own slot is reserved.
	for _, rec := range nodes {
		if rec.taxID == rootTaxID {
			recIdx[rec.taxID] = t.reserveSlot(-1)
			break
		}
	}
	for _, rec := range nodes {
		if rec.taxID == rootTaxID {
			continue
		}
		recIdx[rec.taxID] = -2 // placeholder, linked below
	}

	// Second pass: link each non-root node to its (already
	// reserved) parent slot. Since nodes.dmp may list a child
	// before its parent, repeat until every node is linked.
	pending := make([]ncbiNode, 0, len(nodes))
	for _, rec := range nodes {
		if rec.taxID != rootTaxID {
			pending = append(pending, rec)
		}
	}
	for len(pending) > 0 {
		progressed := false
		next := pending[:0]
		for _, rec := range pending {
			pIdx, ok := recIdx[rec.parentID]
			if !ok || pIdx == -2 {
				next = append(next, rec)
				continue
			}
			recIdx[rec.taxID] = t.reserveSlot(pIdx)
			progressed = true
		}
		pending = next
		if !progressed {
			return nil, errInvalidFormat("nodes.dmp: unresolved parent reference")
		}
	}

	for _, rec := range nodes {
		idx := recIdx[rec.taxID]
		name := names[rec.taxID]
		if err := t.finalizeSlot(idx, rec.taxID, name, rec.rank, 0, false); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readNamesDmp(path string) (map[string]string, error) {
	parse := func(line string) (interface{}, bool, error) {
		fields := strings.Split(strings.TrimRight(line, "\t|\r\n"), ncbiFieldSep)
		if len(fields) < 4 {
			return nil, false, nil
		}
		return ncbiName{
			taxID: strings.TrimSpace(fields[0]),
			name:  strings.TrimSpace(fields[1]),
			class: strings.TrimSpace(fields[3]),
		}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, 8, 100, parse)
	if err != nil {
		return nil, fmt.Errorf("ncbi names.dmp: %w", err)
	}

	names := make(map[string]string, 1024)
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("ncbi names.dmp: %w", chunk.Err)
		}
		for _, data := range chunk.Data {
			n := data.(ncbiName)
			if n.class != scientificNameClass {
				continue
			}
			names[n.taxID] = n.name
		}
	}
	return names, nil
}

func readNodesDmp(path string) ([]ncbiNode, error) {
	parse := func(line string) (interface{}, bool, error) {
		fields := strings.Split(strings.TrimRight(line, "\t|\r\n"), ncbiFieldSep)
		if len(fields) < 11 {
			return nil, false, nil
		}
		hiddenFlag, err := strconv.Atoi(strings.TrimSpace(fields[10]))
		if err != nil {
			return nil, false, err
		}
		return ncbiNode{
			taxID:    strings.TrimSpace(fields[0]),
			parentID: strings.TrimSpace(fields[1]),
			rank:     strings.TrimSpace(fields[2]),
			hidden:   hiddenFlag != 0,
		}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, 8, 100, parse)
	if err != nil {
		return nil, fmt.Errorf("ncbi nodes.dmp: %w", err)
	}

	var nodes []ncbiNode
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("ncbi nodes.dmp: %w", chunk.Err)
		}
		for _, data := range chunk.Data {
			nodes = append(nodes, data.(ncbiNode))
		}
	}
	return nodes, nil
}
