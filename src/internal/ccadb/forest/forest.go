// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forest

import (
	"sort"
)

// Trust is the tri-state inclusion verdict attached to every certificate.
type Trust int8

const (
	// TrustUnknown means nothing is known: the record is an intermediate
	// that was never reached from a typed root.
	TrustUnknown Trust = iota
	// TrustTrusted means the certificate chains up to (or is) a root
	// included in at least one root store.
	TrustTrusted
	// TrustUntrusted means the chain terminates in a root no store includes.
	TrustUntrusted
)

// String returns a human-readable trust label.
func (t Trust) String() string {
	switch t {
	case TrustTrusted:
		return "trusted"
	case TrustUntrusted:
		return "untrusted"
	default:
		return "unknown"
	}
}

// Cell returns the workbook representation of the trust state: true, false,
// or nil when unknown.
func (t Trust) Cell() any {
	switch t {
	case TrustTrusted:
		return true
	case TrustUntrusted:
		return false
	default:
		return nil
	}
}

// TrustFromIncluded converts a root's "included in any store" verdict into
// its direct trust state.
func TrustFromIncluded(included bool) Trust {
	if included {
		return TrustTrusted
	}
	return TrustUntrusted
}

// Node is one certificate in the hierarchy.
type Node struct {
	ID       string
	ParentID string
	IsRoot   bool
	Trust    Trust

	children []string // unique child IDs, sorted
}

// Children returns the node's child IDs in deterministic order. The returned
// slice is shared; callers must not modify it.
func (n *Node) Children() []string { return n.children }

// Builder accumulates nodes and edges during the first pass over the CSV.
type Builder struct {
	nodes map[string]*Node
	edges []edge
}

type edge struct {
	parentID string
	childID  string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]*Node)}
}

// Add records one certificate row. Node attributes follow last-write-wins
// when the same ID appears twice, matching the duplicate-record rule of the
// export; every call still contributes an edge, so a duplicated ID can hang
// the same subtree under two parents.
//
// direct is the node's own trust: roots pass TrustFromIncluded of their
// store statuses, intermediates pass TrustUnknown.
func (b *Builder) Add(id, parentID string, isRoot bool, direct Trust) {
	b.nodes[id] = &Node{
		ID:       id,
		ParentID: parentID,
		IsRoot:   isRoot,
		Trust:    direct,
	}
	b.edges = append(b.edges, edge{parentID: parentID, childID: id})
}

// Len returns the number of distinct certificates added so far.
func (b *Builder) Len() int { return len(b.nodes) }

// Build links the accumulated edges into a Forest. Edges pointing at an
// unknown parent (CA-owner records, truncated exports) turn their child into
// a traversal root. Children sets are deduplicated and sorted so repeated
// runs over the same export walk the hierarchy identically.
func (b *Builder) Build() *Forest {
	childSets := make(map[string]map[string]struct{})
	rootSet := make(map[string]struct{})

	for _, e := range b.edges {
		if _, known := b.nodes[e.parentID]; known {
			set, ok := childSets[e.parentID]
			if !ok {
				set = make(map[string]struct{})
				childSets[e.parentID] = set
			}
			set[e.childID] = struct{}{}
			continue
		}
		rootSet[e.childID] = struct{}{}
	}

	for parentID, set := range childSets {
		node := b.nodes[parentID]
		node.children = make([]string, 0, len(set))
		for childID := range set {
			node.children = append(node.children, childID)
		}
		sort.Strings(node.children)
	}

	roots := make([]string, 0, len(rootSet))
	for id := range rootSet {
		roots = append(roots, id)
	}
	sort.Strings(roots)

	return &Forest{nodes: b.nodes, roots: roots}
}

// Forest is the linked certificate hierarchy.
type Forest struct {
	nodes map[string]*Node
	roots []string
}

// Len returns the number of certificates in the forest.
func (f *Forest) Len() int { return len(f.nodes) }

// RootIDs returns the traversal root IDs in walk order. The returned slice
// is shared; callers must not modify it.
func (f *Forest) RootIDs() []string { return f.roots }

// Node returns the certificate with the given ID.
func (f *Forest) Node(id string) (*Node, bool) {
	node, ok := f.nodes[id]
	return node, ok
}

// Ancestry returns the chain from the given certificate up to its topmost
// known ancestor, starting with the certificate itself. The walk stops at
// an unknown parent or when it would revisit a node, so it terminates even
// on un-propagated forests that still contain a parent loop.
func (f *Forest) Ancestry(id string) []*Node {
	var chain []*Node
	seen := make(map[string]bool)

	for {
		node, ok := f.nodes[id]
		if !ok || seen[id] {
			return chain
		}
		seen[id] = true
		chain = append(chain, node)
		id = node.ParentID
	}
}

// sortedIDs returns every certificate ID in ascending order.
func (f *Forest) sortedIDs() []string {
	ids := make([]string, 0, len(f.nodes))
	for id := range f.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
