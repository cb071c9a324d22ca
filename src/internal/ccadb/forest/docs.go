// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package forest builds the CA certificate hierarchy out of CCADB records
// and propagates root-store trust down it.
//
// Every record contributes one node (keyed by Salesforce ID) and one
// parent-child edge. The parent of a root certificate points at a CA-owner
// record that never appears as a certificate row, so linking edges against
// known nodes naturally splits the graph into a forest: children whose
// parent ID is unknown become traversal roots.
//
// Trust is a tri-state. Root certificates derive theirs directly from the
// per-store inclusion statuses and are never overwritten; intermediates
// inherit whatever their parent carries at visit time. Nodes that hang off
// an untyped traversal root keep TrustUnknown. A parent loop makes part of
// the graph unreachable and is reported as ErrCycle rather than walked
// forever.
package forest
