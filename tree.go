// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

const (
	// AlphabetSize is the number of symbols, one per byte value.
	AlphabetSize = 256

	// MaxNodes is the capacity of a Tree, a leaf for every symbol plus
	// the internal nodes needed to join all of them.
	MaxNodes = 2*AlphabetSize - 1

	// MaxCodeLen is the longest code that a tree can assign.
	MaxCodeLen = AlphabetSize - 1

	// NoNode is the parent of the root and of leaves that are not part of
	// the tree.
	NoNode = 0xffff
)

// NodeKind distinguishes leaves from internal nodes.
type NodeKind uint8

// Kinds of node.
const (
	Leaf NodeKind = iota
	Internal
)

func (k NodeKind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Internal:
		return "internal"
	}
	return "unknown"
}

// A Node is a node in the tree. Value is only meaningful for a Leaf and
// Left/Right only for an Internal node; both contain indexes into the
// tree's nodes.
type Node struct {
	Kind        NodeKind
	Value       byte
	Left, Right uint16
	Freq        uint32
	Parent      uint16
}

// A Tree is a fixed capacity huffman tree. Nodes 0..255 are the leaves
// for each byte value and are always present, nodes 256 onwards are the
// internal nodes in the order that they were created.
type Tree struct {
	nodes     [MaxNodes]Node
	root      uint16
	next      uint16 // next unused internal node.
	numLeaves int
}

func (t *Tree) reset() {
	for i := 0; i < AlphabetSize; i++ {
		t.nodes[i] = Node{Kind: Leaf, Value: byte(i), Parent: NoNode}
	}
	t.root = NoNode
	t.next = AlphabetSize
	t.numLeaves = 0
}

// Root returns the index of the root node, NoNode for an empty tree.
func (t *Tree) Root() uint16 {
	return t.root
}

// Node returns the node at index i. It returns false if i is not the index
// of a leaf or of an internal node that has been created, NoNode included.
func (t *Tree) Node(i uint16) (Node, bool) {
	if i >= t.next {
		return Node{}, false
	}
	return t.nodes[i], true
}

// NumLeaves returns the number of leaves reachable from the root.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// NumInternal returns the number of internal nodes.
func (t *Tree) NumInternal() int {
	return int(t.next) - AlphabetSize
}

// alloc returns the next unused internal node.
func (t *Tree) alloc() (uint16, error) {
	if t.next >= MaxNodes {
		return NoNode, StructuralError("too many internal nodes")
	}
	idx := t.next
	t.nodes[idx] = Node{Kind: Internal, Left: NoNode, Right: NoNode, Parent: NoNode}
	t.next++
	return idx, nil
}

// setChildren makes left and right the children of the internal node at idx,
// its frequency becomes the sum of theirs.
func (t *Tree) setChildren(idx, left, right uint16) {
	n := &t.nodes[idx]
	n.Left, n.Right = left, right
	n.Freq = t.nodes[left].Freq + t.nodes[right].Freq
	t.nodes[left].Parent = idx
	t.nodes[right].Parent = idx
}

// join creates a new internal node with the supplied children.
func (t *Tree) join(left, right uint16) (uint16, error) {
	idx, err := t.alloc()
	if err != nil {
		return NoNode, err
	}
	t.setChildren(idx, left, right)
	return idx, nil
}

// less orders nodes by frequency, using the index to break ties. For
// leaves the index is the byte value.
func (t *Tree) less(a, b uint16) bool {
	fa, fb := t.nodes[a].Freq, t.nodes[b].Freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

// walk visits every node reachable from the root depth first, left before
// right, calling fn for each node with its depth.
func (t *Tree) walk(fn func(idx uint16, depth int) error) error {
	if t.root == NoNode {
		return nil
	}
	var visit func(idx uint16, depth int) error
	visit = func(idx uint16, depth int) error {
		if err := fn(idx, depth); err != nil {
			return err
		}
		n := &t.nodes[idx]
		if n.Kind == Leaf {
			return nil
		}
		if err := visit(n.Left, depth+1); err != nil {
			return err
		}
		return visit(n.Right, depth+1)
	}
	return visit(t.root, 0)
}

// LeafOrder returns the values of the leaves in the order that they are
// visited by a depth first, left to right, traversal from the root.
func (t *Tree) LeafOrder() []byte {
	leaves := make([]byte, 0, t.numLeaves)
	t.walk(func(idx uint16, _ int) error {
		if n := &t.nodes[idx]; n.Kind == Leaf {
			leaves = append(leaves, n.Value)
		}
		return nil
	})
	return leaves
}
