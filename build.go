// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

// build constructs the tree from leaves, which must be sorted by ascending
// frequency. Internal nodes are created in non-decreasing order of
// frequency so the smallest unused node is always found at the front of
// either the remaining leaves or the internal nodes not yet consumed, and
// the tree is built with a single merge of the two.
func (t *Tree) build(leaves []uint16) error {
	switch len(leaves) {
	case 0:
		return ErrEmptyInput
	case 1:
		t.root = leaves[0]
		t.numLeaves = 1
		return nil
	}
	first, err := t.join(leaves[0], leaves[1])
	if err != nil {
		return err
	}
	m := merger{tree: t, leaves: leaves, nextLeaf: 2, nextInternal: first}
	last := uint16(AlphabetSize + len(leaves) - 1)
	root := first
	for t.next < last {
		left := m.pick()
		right := m.pick()
		if root, err = t.join(left, right); err != nil {
			return err
		}
	}
	t.root = root
	t.numLeaves = len(leaves)
	return nil
}

type merger struct {
	tree         *Tree
	leaves       []uint16
	nextLeaf     int
	nextInternal uint16
}

// pick returns the smallest unconsumed node, preferring a leaf over an
// internal node with the same frequency.
func (m *merger) pick() uint16 {
	nodes := &m.tree.nodes
	haveLeaf := m.nextLeaf < len(m.leaves)
	haveInternal := m.nextInternal < m.tree.next
	if haveLeaf && (!haveInternal || nodes[m.leaves[m.nextLeaf]].Freq <= nodes[m.nextInternal].Freq) {
		idx := m.leaves[m.nextLeaf]
		m.nextLeaf++
		return idx
	}
	idx := m.nextInternal
	m.nextInternal++
	return idx
}
