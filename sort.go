// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import "container/heap"

// leafHeap is a max-heap, ordered by frequency and then value, over a
// prefix of length n of leaves.
type leafHeap struct {
	tree   *Tree
	leaves []uint16
	n      int
}

func (h *leafHeap) Len() int           { return h.n }
func (h *leafHeap) Less(i, j int) bool { return h.tree.less(h.leaves[j], h.leaves[i]) }
func (h *leafHeap) Swap(i, j int)      { h.leaves[i], h.leaves[j] = h.leaves[j], h.leaves[i] }

func (h *leafHeap) Push(x interface{}) {
	h.leaves = append(h.leaves[:h.n], x.(uint16))
	h.n++
}

func (h *leafHeap) Pop() interface{} {
	h.n--
	return h.leaves[h.n]
}

// sortLeaves sorts leaves in place into ascending order of frequency,
// leaves with the same frequency are ordered by value. Each Pop moves the
// current maximum to the end of the shrinking heap.
func sortLeaves(t *Tree, leaves []uint16) {
	h := &leafHeap{tree: t, leaves: leaves, n: len(leaves)}
	heap.Init(h)
	for h.Len() > 1 {
		heap.Pop(h)
	}
}
