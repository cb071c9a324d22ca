// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Version identifies one CCADB AllCertificateRecords CSV layout.
type Version string

// Known layout versions, oldest first.
const (
	V1   Version = "v1"
	V1R2 Version = "v1r2"
	V1R3 Version = "v1r3"
	V1R4 Version = "v1r4"
	V2   Version = "v2"
)

// ErrMalformedComposite is returned when a non-empty composite root-store
// status cell cannot be decomposed into the layout's store set.
var ErrMalformedComposite = errors.New("schema: malformed composite root store status")

// Layout describes one CSV schema version. All positions are zero-based
// indices into the raw record. A Layout is immutable; callers must not
// modify the slices it exposes.
type Layout struct {
	Version Version
	Width   int // expected raw column count

	// Identity and hierarchy.
	OwnerColumn      int // CA owner display name
	IDColumn         int
	NameColumn       int // certificate display name
	ParentIDColumn   int
	TypeColumn       int
	RootType         string // TypeColumn value identifying a root
	IntermediateType string

	// Per-store inclusion status. Modern layouts carry one column per
	// store (StatusColumns); early layouts pack everything into a single
	// composite column decomposed against CompositeStores.
	StatusColumns   []int
	CompositeColumn int      // -1 when statuses are split
	CompositeStores []string // fixed store order for decomposition

	// Typed-value columns.
	BoolColumns []int
	DateColumns []int
	HexColumns  []int // base64 in the export, colon-hex in the output
	ListColumn  int   // JSON array of partitioned CRLs; -1 when absent

	// Derived-column anchors.
	SHA256Column      int
	RevocationColumn  int
	ConstrainedColumn int // Technically Constrained
	CountryColumn     int
}

// Owner returns the record's CA owner display name.
func (l *Layout) Owner(raw []string) string { return raw[l.OwnerColumn] }

// ID returns the record's Salesforce ID.
func (l *Layout) ID(raw []string) string { return raw[l.IDColumn] }

// Name returns the record's certificate display name.
func (l *Layout) Name(raw []string) string { return raw[l.NameColumn] }

// ParentID returns the Salesforce ID of the record's issuer row. Roots
// typically point at a CA-owner record that never appears as a certificate
// row, which is what makes them hierarchy roots downstream.
func (l *Layout) ParentID(raw []string) string { return raw[l.ParentIDColumn] }

// IsRoot reports whether the record describes a root certificate.
func (l *Layout) IsRoot(raw []string) bool { return raw[l.TypeColumn] == l.RootType }

// IsIntermediate reports whether the record describes an intermediate
// certificate. Record types other than root and intermediate exist in
// old exports (owner rows); both predicates are false for those.
func (l *Layout) IsIntermediate(raw []string) bool {
	return raw[l.TypeColumn] == l.IntermediateType
}

// Statuses returns the per-store inclusion statuses of a raw record, in the
// layout's store order. For composite layouts the single status cell is
// decomposed; see SplitComposite for the rules.
func (l *Layout) Statuses(raw []string) ([]string, error) {
	if l.CompositeColumn < 0 {
		statuses := make([]string, len(l.StatusColumns))
		for i, col := range l.StatusColumns {
			statuses[i] = raw[col]
		}
		return statuses, nil
	}
	return l.SplitComposite(raw[l.CompositeColumn])
}

// SplitComposite decomposes a composite root-store status cell
// ("Apple: Included; Mozilla: Not Included") into one status per
// CompositeStores entry.
//
// An empty cell yields all-empty statuses: new records legitimately have no
// store decision yet. A non-empty cell missing one of the layout's stores,
// or naming a store outside the set, is malformed and returns
// ErrMalformedComposite.
func (l *Layout) SplitComposite(cell string) ([]string, error) {
	statuses := make([]string, len(l.CompositeStores))
	if cell == "" {
		return statuses, nil
	}

	byStore := make(map[string]string, len(l.CompositeStores))
	for _, part := range strings.Split(cell, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		store, status, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("%w: entry %q has no status", ErrMalformedComposite, part)
		}
		byStore[strings.TrimSpace(store)] = strings.TrimSpace(status)
	}

	for i, store := range l.CompositeStores {
		status, ok := byStore[store]
		if !ok {
			return nil, fmt.Errorf("%w: store %q missing", ErrMalformedComposite, store)
		}
		statuses[i] = status
		delete(byStore, store)
	}

	if len(byStore) > 0 {
		for store := range byStore {
			return nil, fmt.Errorf("%w: unknown store %q", ErrMalformedComposite, store)
		}
	}

	return statuses, nil
}

// StoreNames returns the root-store names this layout reports statuses for,
// in status order.
func (l *Layout) StoreNames(header []string) []string {
	if l.CompositeColumn < 0 {
		names := make([]string, len(l.StatusColumns))
		for i, col := range l.StatusColumns {
			names[i] = strings.TrimSuffix(header[col], " Status")
		}
		return names
	}
	return l.CompositeStores
}

// AnyIncluded reports whether any per-store status equals "Included",
// ignoring case. This is the definition of a certificate being included in
// at least one root store.
func AnyIncluded(statuses []string) bool {
	for _, status := range statuses {
		if strings.EqualFold(status, "Included") {
			return true
		}
	}
	return false
}
