// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// gtdbRankPrefix maps a GTDB lineage token's letter prefix to its
// rank name.
var gtdbRankPrefix = map[string]string{
	"d": "domain",
	"p": "phylum",
	"c": "class",
	"o": "order",
	"f": "family",
	"g": "genus",
	"s": "species",
}

// FromGTDB loads a taxonomy from a GTDB-style lineage TSV: each row
// carries, in one of its columns, a semicolon-joined lineage of
// rank-prefixed tokens (d__...;p__...;...). Tokens are merged by id
// across rows, so a lineage prefix shared by two rows becomes a
// single node.
func FromGTDB(r io.Reader) (*Taxonomy, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1
	tab.LazyQuotes = true

	t := newTaxonomy()

	row := 0
	for {
		row++
		fields, err := tab.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errInvalidFormat(fmt.Sprintf("gtdb: row %d: %v", row, err))
		}
		if isBlankRow(fields) {
			continue
		}

		lineage := findLineageColumn(fields)
		if lineage == "" {
			// No field looks like a rank-prefixed lineage: a header
			// row, not a data row. Skip it rather than error.
			continue
		}
		tokens := strings.Split(lineage, ";")
		if !strings.HasPrefix(strings.TrimSpace(tokens[0]), "d__") {
			return nil, errInvalidFormat(fmt.Sprintf("gtdb: row %d: lineage does not start with a domain", row))
		}

		prevIdx := -1
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			prefix, name, ok := splitGTDBToken(tok)
			if !ok {
				return nil, errInvalidFormat(fmt.Sprintf("gtdb: row %d: token %q has no rank prefix", row, tok))
			}
			rank, ok := gtdbRankPrefix[prefix]
			if !ok {
				return nil, errInvalidFormat(fmt.Sprintf("gtdb: row %d: token %q has an unknown rank prefix", row, tok))
			}
			_ = name // the token itself, not its suffix, is both id and name

			if idx, ok := t.idIndex[tok]; ok {
				prevIdx = idx
				continue
			}
			if prevIdx < 0 && t.root >= 0 {
				return nil, errMultipleRoots()
			}
			idx, err := t.addLeaf(prevIdx, tok, tok, rank, 0, false)
			if err != nil {
				return nil, err
			}
			prevIdx = idx
		}
	}

	if t.root < 0 {
		return nil, errMissingRoot()
	}
	return t, nil
}

// findLineageColumn returns the first field that looks like a GTDB
// lineage string (it holds a rank-prefixed, semicolon-joined
// token), or "" if none of the row's fields do - which is how a
// header row is told apart from a data row. Whether that lineage
// actually starts with a domain token is checked separately, so a
// malformed lineage is reported as an error rather than silently
// skipped like a header.
func findLineageColumn(fields []string) string {
	for _, f := range fields {
		if strings.Contains(f, "__") {
			return strings.TrimSpace(f)
		}
	}
	return ""
}

// splitGTDBToken splits a rank-prefixed lineage token ("p__Firmicutes")
// into its prefix ("p") and suffix ("Firmicutes").
func splitGTDBToken(tok string) (prefix, suffix string, ok bool) {
	i := strings.Index(tok, "__")
	if i < 0 {
		return "", "", false
	}
	return tok[:i], tok[i+2:], true
}

func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
