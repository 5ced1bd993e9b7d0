// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"github.com/cosnicolaou/huffman/internal/bitstream"
)

// Code is a variable length bit string of up to MaxCodeLen bits, stored
// most significant bit first.
type Code struct {
	bits [(MaxCodeLen + 7) / 8]byte
	len  int
}

// Len returns the number of bits in the code.
func (c Code) Len() int {
	return c.len
}

// Bit returns the i'th bit of the code, 0 or 1.
func (c Code) Bit(i int) byte {
	return (c.bits[i/8] >> (7 - i%8)) & 1
}

// Bytes returns the code packed into (Len()+7)/8 bytes, the trailing bits
// of the final byte are zero.
func (c Code) Bytes() []byte {
	return c.bits[:(c.len+7)/8]
}

func (c Code) String() string {
	return bitstream.String(c.bits[:], c.len)
}

func (c *Code) push(bit byte) {
	if bit != 0 {
		c.bits[c.len/8] |= 0x80 >> (c.len % 8)
	}
	c.len++
}

func (c *Code) pop() {
	c.len--
	c.bits[c.len/8] &^= 0x80 >> (c.len % 8)
}

// CodeTable maps each byte value present in a tree to its code.
type CodeTable struct {
	codes [AlphabetSize]Code
	n     int
}

// Lookup returns the code for b, false if b has no code.
func (ct *CodeTable) Lookup(b byte) (Code, bool) {
	c := ct.codes[b]
	return c, c.len > 0
}

// Len returns the number of entries in the table.
func (ct *CodeTable) Len() int {
	return ct.n
}

// Symbols returns the byte values that have codes in ascending order.
func (ct *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, ct.n)
	for i := range ct.codes {
		if ct.codes[i].len > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// MaxLen returns the length of the longest code.
func (ct *CodeTable) MaxLen() int {
	max := 0
	for i := range ct.codes {
		if l := ct.codes[i].len; l > max {
			max = l
		}
	}
	return max
}

func (ct *CodeTable) set(b byte, c Code) {
	if ct.codes[b].len == 0 {
		ct.n++
	}
	ct.codes[b] = c
}

// Codes returns the code table for the tree: descending to a left child
// appends a 0 and to a right child a 1. A tree with a single leaf assigns
// it the code "0".
func (t *Tree) Codes() CodeTable {
	var ct CodeTable
	if t.root == NoNode {
		return ct
	}
	if root := &t.nodes[t.root]; root.Kind == Leaf {
		var c Code
		c.push(0)
		ct.set(root.Value, c)
		return ct
	}
	var code Code
	var visit func(idx uint16)
	visit = func(idx uint16) {
		n := &t.nodes[idx]
		if n.Kind == Leaf {
			ct.set(n.Value, code)
			return
		}
		code.push(0)
		visit(n.Left)
		code.pop()
		code.push(1)
		visit(n.Right)
		code.pop()
	}
	visit(t.root)
	return ct
}
