// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/convert"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/forest"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/record"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
)

// ErrNotFound is returned when no record matches a lookup reference.
var ErrNotFound = errors.New("inventory: certificate not found")

// Inventory is one converted export held resident, with lookup indexes.
// It is immutable after Load and safe for concurrent readers.
type Inventory struct {
	layout  *schema.Layout
	classes record.ClassMap
	header  []string
	rows    [][]any
	bySHA   map[string]int
	byID    map[string]int
	forest  *forest.Forest
	stats   Stats
}

// Stats summarizes the resident inventory.
type Stats struct {
	Records       int
	Roots         int // traversal roots of the hierarchy
	RootCerts     int
	Intermediates int
	TrustedRoots  int // root certificates included in at least one store
	ChainsUp      int // intermediates chaining up to an included root
	Revoked       int
}

// ChainHop is one certificate on an ancestry path.
type ChainHop struct {
	ID    string
	Name  string
	Owner string
	Root  bool
	Trust forest.Trust
}

// tableSink collects the canonical table for indexing.
type tableSink struct {
	classes record.ClassMap
	header  []string
	rows    [][]any
}

func (s *tableSink) WriteHeader(classes record.ClassMap, names []string) error {
	s.classes = classes
	s.header = names
	return nil
}

func (s *tableSink) WriteRow(cells []any) error {
	s.rows = append(s.rows, cells)
	return nil
}

func (s *tableSink) Flush() error { return nil }

// Load converts src with the regular pipeline and indexes the result.
func Load(ctx context.Context, layout *schema.Layout, src convert.Source, log logger.Logger) (*Inventory, error) {
	sink := &tableSink{}
	result, err := convert.NewRunner(layout, log).Run(ctx, src, sink)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{
		layout:  layout,
		classes: sink.classes,
		header:  sink.header,
		rows:    sink.rows,
		bySHA:   make(map[string]int, len(sink.rows)),
		byID:    make(map[string]int, len(sink.rows)),
		forest:  result.Forest,
	}
	for i, row := range sink.rows {
		if sha, ok := row[inv.classes.SHA256Column].(string); ok && sha != "" {
			inv.bySHA[normalizeFingerprint(sha)] = i
		}
		if id, ok := row[inv.classes.IDColumn].(string); ok && id != "" {
			inv.byID[id] = i
		}
	}
	inv.stats = inv.summarize(result.Stats)
	return inv, nil
}

// Header returns the canonical column names.
func (inv *Inventory) Header() []string { return inv.header }

// Classes returns the canonical column positions.
func (inv *Inventory) Classes() record.ClassMap { return inv.classes }

// Version returns the schema version the export was read with.
func (inv *Inventory) Version() schema.Version { return inv.layout.Version }

// Stores returns the root-store names the export reports statuses for.
// Status columns sit left of every canonical insertion in all registered
// layouts, so the canonical header carries them at their raw positions.
func (inv *Inventory) Stores() []string { return inv.layout.StoreNames(inv.header) }

// Len returns the number of resident records.
func (inv *Inventory) Len() int { return len(inv.rows) }

// Stats returns the inventory summary.
func (inv *Inventory) Stats() Stats { return inv.stats }

// BySHA256 returns the canonical row for a certificate fingerprint.
// Colon-separated and lowercase spellings are accepted; CCADB stores the
// fingerprint as bare uppercase hex.
func (inv *Inventory) BySHA256(fingerprint string) ([]any, bool) {
	i, ok := inv.bySHA[normalizeFingerprint(fingerprint)]
	if !ok {
		return nil, false
	}
	return inv.rows[i], true
}

// ByID returns the canonical row for a Salesforce record ID.
func (inv *Inventory) ByID(id string) ([]any, bool) {
	i, ok := inv.byID[id]
	if !ok {
		return nil, false
	}
	return inv.rows[i], true
}

// TrustChain resolves ref (a Salesforce ID or a SHA-256 fingerprint) and
// walks its ancestry up to the hierarchy root, first hop the certificate
// itself.
func (inv *Inventory) TrustChain(ref string) ([]ChainHop, error) {
	id := ref
	if _, ok := inv.byID[id]; !ok {
		row, ok := inv.BySHA256(ref)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
		}
		id, _ = row[inv.classes.IDColumn].(string)
	}

	hops := make([]ChainHop, 0, 4)
	for _, node := range inv.forest.Ancestry(id) {
		hop := ChainHop{ID: node.ID, Root: node.IsRoot, Trust: node.Trust}
		if row, ok := inv.ByID(node.ID); ok {
			hop.Name, _ = row[inv.classes.NameColumn].(string)
			hop.Owner, _ = row[inv.classes.OwnerColumn].(string)
		}
		hops = append(hops, hop)
	}
	if len(hops) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return hops, nil
}

func (inv *Inventory) summarize(run convert.Stats) Stats {
	stats := Stats{Records: run.Records, Roots: run.Roots}
	for _, row := range inv.rows {
		certType, _ := row[inv.classes.TypeColumn].(string)
		switch certType {
		case inv.layout.RootType:
			stats.RootCerts++
			if included, _ := row[inv.classes.TrustColumns[0]].(bool); included {
				stats.TrustedRoots++
			}
		case inv.layout.IntermediateType:
			stats.Intermediates++
			if chains, _ := row[inv.classes.TrustColumns[1]].(bool); chains {
				stats.ChainsUp++
			}
		}

		switch row[inv.classes.RevocationColumn] {
		case "Revoked", "Parent Cert Revoked":
			stats.Revoked++
		}
	}
	return stats
}

// normalizeFingerprint strips separators and uppercases, so pasted
// colon-hex fingerprints match CCADB's bare spelling.
func normalizeFingerprint(fingerprint string) string {
	fingerprint = strings.NewReplacer(":", "", " ", "").Replace(fingerprint)
	return strings.ToUpper(fingerprint)
}
