// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package record

import (
	"slices"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
)

// ClassMap records where the typed and styling-relevant columns land after
// reshaping, as zero-based canonical positions. Consumers treat every
// position not listed here as plain text.
type ClassMap struct {
	Version schema.Version
	Width   int

	// Identity columns, for indexing and display.
	OwnerColumn  int
	IDColumn     int
	NameColumn   int
	SHA256Column int

	// Number-format classes.
	BoolColumns []int // raw flags plus the two derived trust columns
	DateColumns []int
	CountColumn int // -1 when the layout has no CRL list column
	LinkColumn  int

	// Highlight anchors.
	TypeColumn        int
	RootType          string
	IntermediateType  string
	StatusColumns     []int
	RevocationColumn  int
	ConstrainedColumn int
	TrustColumns      [2]int // included-any, chains-up

	// Tail columns.
	CountryColumn     int
	CountryCodeColumn int
}

// ClassMap returns the canonical column positions for this layout version.
func (c *Canonicalizer) ClassMap() ClassMap { return c.classMap }

// buildClassMap replays the reshaping arithmetic over the layout's raw
// positions. Tests pin the v2 results against the canonical workbook, so a
// drift between this map and reshape shows up as position mismatches.
func buildClassMap(l *schema.Layout, seq sequence) ClassMap {
	shift := 0
	if l.CompositeColumn >= 0 {
		shift = len(l.CompositeStores) - 1
	}
	post := func(raw int) int {
		if l.CompositeColumn >= 0 && raw > l.CompositeColumn {
			return raw + shift
		}
		return raw
	}
	// final maps a post-explosion position through the country move and the
	// two insertions. Anchors sit left of the country column in every
	// layout, so only cells right of it step down.
	final := func(p int) int {
		if p > seq.country {
			p--
		}
		if seq.list >= 0 && p > seq.list {
			p++
		}
		if p >= seq.revocation {
			p += 2
		}
		return p
	}

	width := seq.width + 4
	count := -1
	if seq.list >= 0 {
		width++
		count = final(seq.list) + 1
	}

	bools := make([]int, 0, len(l.BoolColumns)+2)
	for _, col := range l.BoolColumns {
		bools = append(bools, final(post(col)))
	}
	bools = append(bools, seq.revocation, seq.revocation+1)
	slices.Sort(bools)

	dates := make([]int, len(l.DateColumns))
	for i, col := range l.DateColumns {
		dates[i] = final(post(col))
	}

	var statuses []int
	if l.CompositeColumn >= 0 {
		for i := range l.CompositeStores {
			statuses = append(statuses, final(l.CompositeColumn+i))
		}
	} else {
		for _, col := range l.StatusColumns {
			statuses = append(statuses, final(col))
		}
	}

	return ClassMap{
		Version:           l.Version,
		Width:             width,
		OwnerColumn:       final(post(l.OwnerColumn)),
		IDColumn:          final(post(l.IDColumn)),
		NameColumn:        final(post(l.NameColumn)),
		SHA256Column:      final(post(l.SHA256Column)),
		BoolColumns:       bools,
		DateColumns:       dates,
		CountColumn:       count,
		LinkColumn:        width - 1,
		TypeColumn:        final(post(l.TypeColumn)),
		RootType:          l.RootType,
		IntermediateType:  l.IntermediateType,
		StatusColumns:     statuses,
		RevocationColumn:  final(post(l.RevocationColumn)),
		ConstrainedColumn: final(post(l.ConstrainedColumn)),
		TrustColumns:      [2]int{seq.revocation, seq.revocation + 1},
		CountryColumn:     width - 3,
		CountryCodeColumn: width - 2,
	}
}
