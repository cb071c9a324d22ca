// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forest

import (
	"errors"
	"fmt"
	"slices"
)

// ErrCycle is returned when the certificate hierarchy contains a parent loop.
var ErrCycle = errors.New("forest: cycle detected in certificate hierarchy")

// Propagate walks the forest from its traversal roots and pushes trust down
// to every intermediate, returning the resulting ID to trust mapping. Node
// trust states are updated in place as a side effect.
//
// The walk keeps an explicit stack of sibling frames instead of recursing:
// CCADB hierarchies are shallow, but the input is external and a recursive
// walk would turn a hostile export into a stack overflow. Each visited node
// assigns its current trust to every non-root child before the children are
// expanded; a node reached again through a second parent is re-expanded, so
// the last parent processed wins, deterministically, because children lists
// are sorted.
//
// Cycle handling: a node whose children frame is still open is on the
// current path, and reaching it again means the hierarchy loops, which is a
// structural error. Nodes that stay unvisited after the walk are unreachable
// from every traversal root; since any node with an unknown parent becomes a
// traversal root itself, unreachable nodes can only sit below a parent loop
// and raise the same error.
func (f *Forest) Propagate() (map[string]Trust, error) {
	type frame struct {
		id      string
		pending []string
	}

	stack := []frame{{pending: slices.Clone(f.roots)}}
	onPath := make(map[string]bool)
	visited := make(map[string]bool, len(f.nodes))

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if len(top.pending) == 0 {
			if top.id != "" {
				delete(onPath, top.id)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		id := top.pending[len(top.pending)-1]
		top.pending = top.pending[:len(top.pending)-1]

		if onPath[id] {
			return nil, fmt.Errorf("%w: certificate %s is its own ancestor", ErrCycle, id)
		}

		node := f.nodes[id]
		visited[id] = true

		if len(node.children) == 0 {
			continue
		}

		for _, childID := range node.children {
			if child := f.nodes[childID]; !child.IsRoot {
				child.Trust = node.Trust
			}
		}

		onPath[id] = true
		stack = append(stack, frame{id: id, pending: slices.Clone(node.children)})
	}

	if len(visited) != len(f.nodes) {
		for _, id := range f.sortedIDs() {
			if !visited[id] {
				return nil, fmt.Errorf("%w: certificate %s is unreachable from any root", ErrCycle, id)
			}
		}
	}

	trust := make(map[string]Trust, len(f.nodes))
	for id, node := range f.nodes {
		trust[id] = node.Trust
	}
	return trust, nil
}
