// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cosnicolaou/huffman/internal/bitstream"
)

// Header is the self-describing prefix of a compressed stream:
//
//	.file_size:32     = number of uncompressed bytes, big endian
//	.num_leaves:16    = (0x00, n) for 1 <= n <= 255, (0x01, 0xff) for 256
//	.leaves:8*n       = leaf values in depth first, left to right, order
//	.shape:m          = one bit per node visited depth first, left to
//	                    right: 1 for a leaf, 0 for an internal node,
//	                    padded with zeros to a byte boundary
//
// The encoded payload follows immediately.
type Header struct {
	FileSize  uint32
	NumLeaves int
	Leaves    []byte
	// Shape is the tree shape bitstream as a string of '0' and '1'
	// characters, without padding.
	Shape string
	// Size is the size of the header in bytes.
	Size int
}

func encodeLeafCount(n int) (byte, byte) {
	if n == AlphabetSize {
		return 0x01, 0xff
	}
	return 0x00, byte(n & 0xff)
}

func decodeLeafCount(hi, lo byte) (int, error) {
	switch {
	case hi == 0x01 && lo == 0xff:
		return AlphabetSize, nil
	case hi == 0x00 && lo != 0x00:
		return int(lo), nil
	case hi == 0x00:
		return 0, StructuralError("zero leaves")
	}
	return 0, StructuralError(fmt.Sprintf("bad leaf count: %#02x %#02x", hi, lo))
}

// writeHeader writes the header for t and fileSize to bw.
func writeHeader(bw *bitstream.Writer, t *Tree, fileSize uint32) (*Header, error) {
	start := bw.Len()
	hdr := &Header{
		FileSize:  fileSize,
		NumLeaves: t.numLeaves,
		Leaves:    t.LeafOrder(),
	}
	if err := bw.WriteBits(uint64(fileSize), 32); err != nil {
		return nil, err
	}
	hi, lo := encodeLeafCount(t.numLeaves)
	if err := bw.WriteByte(hi); err != nil {
		return nil, err
	}
	if err := bw.WriteByte(lo); err != nil {
		return nil, err
	}
	for _, v := range hdr.Leaves {
		if err := bw.WriteByte(v); err != nil {
			return nil, err
		}
	}
	var shape strings.Builder
	err := t.walk(func(idx uint16, _ int) error {
		leaf := t.nodes[idx].Kind == Leaf
		if leaf {
			shape.WriteByte('1')
		} else {
			shape.WriteByte('0')
		}
		return bw.WriteBit(leaf)
	})
	if err != nil {
		return nil, err
	}
	if err := bw.Align(); err != nil {
		return nil, err
	}
	hdr.Shape = shape.String()
	hdr.Size = int((bw.Len() - start) / 8)
	return hdr, nil
}

// readErr maps an error from the bitstream reader into an IOError,
// running out of data part way through is reported as io.ErrUnexpectedEOF.
func readErr(op string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &IOError{Op: op, Err: err}
}

// ReadHeader reads a header from rd and returns it along with the tree
// that it describes.
func ReadHeader(rd io.Reader) (*Header, *Tree, error) {
	return readHeader(bitstream.NewReader(rd))
}

func readHeader(br *bitstream.Reader) (*Header, *Tree, error) {
	start := br.Offset()
	size, err := br.ReadBits(32)
	if err != nil {
		return nil, nil, readErr("read header", err)
	}
	var count [2]byte
	if err := br.ReadFull(count[:]); err != nil {
		return nil, nil, readErr("read header", err)
	}
	numLeaves, err := decodeLeafCount(count[0], count[1])
	if err != nil {
		return nil, nil, err
	}
	if size < uint64(numLeaves) {
		return nil, nil, StructuralError(fmt.Sprintf("file size %v is smaller than the number of leaves %v", size, numLeaves))
	}
	hdr := &Header{
		FileSize:  uint32(size),
		NumLeaves: numLeaves,
		Leaves:    make([]byte, numLeaves),
	}
	if err := br.ReadFull(hdr.Leaves); err != nil {
		return nil, nil, readErr("read header", err)
	}
	var seen [AlphabetSize]bool
	for _, v := range hdr.Leaves {
		if seen[v] {
			return nil, nil, StructuralError(fmt.Sprintf("duplicate leaf value: %#02x", v))
		}
		seen[v] = true
	}
	sr := &shapeReader{br: br, leaves: hdr.Leaves}
	sr.tree.reset()
	root, err := sr.node()
	if err != nil {
		return nil, nil, err
	}
	if sr.next != len(hdr.Leaves) {
		return nil, nil, StructuralError(fmt.Sprintf("tree shape has %v leaves, header has %v", sr.next, len(hdr.Leaves)))
	}
	br.Align()
	sr.tree.root = root
	sr.tree.numLeaves = numLeaves
	hdr.Shape = sr.shape.String()
	hdr.Size = int((br.Offset() - start) / 8)
	return hdr, &sr.tree, nil
}

type shapeReader struct {
	br     *bitstream.Reader
	tree   Tree
	leaves []byte
	next   int
	shape  strings.Builder
}

// node reads the shape of the subtree rooted at the next node in the
// bitstream and returns its index. Leaves are assigned the header's leaf
// values in order and internal nodes are numbered in the order that they
// are read.
func (sr *shapeReader) node() (uint16, error) {
	leaf, err := sr.br.ReadBit()
	if err != nil {
		return NoNode, readErr("read tree shape", err)
	}
	if leaf {
		sr.shape.WriteByte('1')
		if sr.next >= len(sr.leaves) {
			return NoNode, StructuralError(fmt.Sprintf("tree shape has more than %v leaves", len(sr.leaves)))
		}
		idx := uint16(sr.leaves[sr.next])
		sr.next++
		return idx, nil
	}
	sr.shape.WriteByte('0')
	if sr.tree.NumInternal() >= len(sr.leaves)-1 {
		return NoNode, StructuralError(fmt.Sprintf("tree shape has more than %v internal nodes", len(sr.leaves)-1))
	}
	idx, err := sr.tree.alloc()
	if err != nil {
		return NoNode, err
	}
	left, err := sr.node()
	if err != nil {
		return NoNode, err
	}
	right, err := sr.node()
	if err != nil {
		return NoNode, err
	}
	sr.tree.setChildren(idx, left, right)
	return idx, nil
}
