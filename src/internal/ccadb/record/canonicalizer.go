// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package record

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/country"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/forest"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
)

// Sentinel errors for structural record defects. Both abort the conversion;
// the pipeline wraps them with the offending record and line numbers.
var (
	ErrColumnCount = errors.New("record: column count does not match the schema layout")
	ErrFieldValue  = errors.New("record: malformed field value")
)

// Canonical names of the derived columns.
const (
	includedHeader    = "X-Included in any Root Store?"
	chainsHeader      = "X-Chains up to Roots Included in any Root Store?"
	countryCodeHeader = "X-Country (alpha-2)"
	linkHeader        = "X-crt.sh link"
)

const crtshBase = "https://crt.sh/?sha256="

// Canonicalizer converts raw records of one layout version into canonical
// typed rows. It is stateless after construction and safe for concurrent
// use as long as the trust map is not mutated.
type Canonicalizer struct {
	layout   *schema.Layout
	trust    map[string]forest.Trust
	classes  []cellClass
	seq      sequence
	classMap ClassMap
}

// New builds a Canonicalizer for the given layout. The trust map is the
// output of the hierarchy walk; a nil map leaves every chains-up verdict
// unknown, which is what single-record tooling without a full inventory
// wants.
func New(layout *schema.Layout, trust map[string]forest.Trust) *Canonicalizer {
	classes := make([]cellClass, layout.Width)
	for _, col := range layout.BoolColumns {
		classes[col] = classBool
	}
	for _, col := range layout.DateColumns {
		classes[col] = classDate
	}
	for _, col := range layout.HexColumns {
		classes[col] = classHex
	}
	if layout.ListColumn >= 0 {
		classes[layout.ListColumn] = classList
	}

	seq := newSequence(layout)
	return &Canonicalizer{
		layout:   layout,
		trust:    trust,
		classes:  classes,
		seq:      seq,
		classMap: buildClassMap(layout, seq),
	}
}

// Layout returns the raw layout this Canonicalizer was built for.
func (c *Canonicalizer) Layout() *schema.Layout { return c.layout }

// Header canonicalizes the raw header row. The same reshaping Row performs
// on cells is applied to the column names, so header and rows stay aligned
// by construction.
func (c *Canonicalizer) Header(raw []string) ([]string, error) {
	if len(raw) != c.layout.Width {
		return nil, fmt.Errorf("%w: got %d columns, want %d for the %s layout",
			ErrColumnCount, len(raw), c.layout.Width, c.layout.Version)
	}

	names := make([]string, 0, c.classMap.Width)
	for col, name := range raw {
		if col == c.layout.CompositeColumn {
			for _, store := range c.layout.CompositeStores {
				names = append(names, "X-"+store+" Status")
			}
			continue
		}
		names = append(names, name)
	}

	count := ""
	if c.seq.list >= 0 {
		count = fmt.Sprintf("X-Number of items in %q", names[c.seq.list])
	}

	return reshape(c.seq, names, derived[string]{
		countryCode: countryCodeHeader,
		link:        linkHeader,
		count:       count,
		included:    includedHeader,
		chains:      chainsHeader,
	}), nil
}

// Row canonicalizes one raw data record into typed cells.
func (c *Canonicalizer) Row(raw []string) ([]any, error) {
	if len(raw) != c.layout.Width {
		return nil, fmt.Errorf("%w: got %d columns, want %d for the %s layout",
			ErrColumnCount, len(raw), c.layout.Width, c.layout.Version)
	}

	statuses, err := c.layout.Statuses(raw)
	if err != nil {
		return nil, err
	}

	cells := make([]any, 0, c.classMap.Width)
	var count any = ""
	for col, value := range raw {
		if col == c.layout.CompositeColumn {
			for _, status := range statuses {
				cells = append(cells, status)
			}
			continue
		}

		cell, err := c.transformCell(col, value)
		if err != nil {
			return nil, err
		}
		if col == c.layout.ListColumn {
			if joined, ok := cell.(string); ok && joined != "" {
				count = strings.Count(joined, "\n") + 1
			}
		}
		cells = append(cells, cell)
	}

	return reshape(c.seq, cells, derived[any]{
		countryCode: country.Resolve(raw[c.layout.CountryColumn]),
		link:        crtshBase + raw[c.layout.SHA256Column],
		count:       count,
		included:    schema.AnyIncluded(statuses),
		chains:      c.chainsCell(raw),
	}), nil
}

// chainsCell derives the chains-up-to-root verdict. Only intermediates get
// one; roots and owner rows stay empty, since "chains up" is a statement
// about a certificate's issuing path, not about the certificate itself.
func (c *Canonicalizer) chainsCell(raw []string) any {
	if !c.layout.IsIntermediate(raw) {
		return nil
	}
	return c.trust[c.layout.ID(raw)].Cell()
}

// sequence holds the column positions the reshaping operates on, in
// post-explosion coordinates. Every layout keeps these anchors left of the
// country column, so moving the country to the end never disturbs them.
type sequence struct {
	width      int // record width after composite explosion
	country    int
	list       int // -1 when the layout has no CRL list column
	revocation int
}

func newSequence(l *schema.Layout) sequence {
	shift := 0
	if l.CompositeColumn >= 0 {
		shift = len(l.CompositeStores) - 1
	}
	adjust := func(col int) int {
		if l.CompositeColumn >= 0 && col > l.CompositeColumn {
			return col + shift
		}
		return col
	}

	list := -1
	if l.ListColumn >= 0 {
		list = adjust(l.ListColumn)
	}
	return sequence{
		width:      l.Width + shift,
		country:    adjust(l.CountryColumn),
		list:       list,
		revocation: adjust(l.RevocationColumn),
	}
}

// derived carries the cells added during reshaping, typed like the
// surrounding cells so Header and Row share one executor.
type derived[T any] struct {
	countryCode T
	link        T
	count       T
	included    T
	chains      T
}

// reshape applies the structural column operations shared by Header and
// Row: move the country column to the end, append the resolved alpha-2
// code and the crt.sh link, insert the CRL item count right after the list
// column, and insert the two derived trust columns at the revocation
// position. Insertions run right to left, so each position is unaffected
// by the ones before it.
func reshape[T any](seq sequence, cells []T, d derived[T]) []T {
	moved := cells[seq.country]
	cells = slices.Delete(cells, seq.country, seq.country+1)
	cells = append(cells, moved, d.countryCode, d.link)
	if seq.list >= 0 {
		cells = slices.Insert(cells, seq.list+1, d.count)
	}
	return slices.Insert(cells, seq.revocation, d.included, d.chains)
}
