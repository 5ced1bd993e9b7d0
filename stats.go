// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"fmt"
	"io"
	"strings"
)

// NodeStats describes a single node in a tree.
type NodeStats struct {
	Index, Parent, Left, Right uint16
	// Frequency is the node's frequency relative to the file size.
	Frequency float64
}

// CodeStats describes the code assigned to a single byte value.
type CodeStats struct {
	Value byte
	Freq  uint32
	Code  string
}

// Stats describes the outcome of a compression.
type Stats struct {
	FileSize       uint32
	CompressedSize uint64
	NumLeaves      int
	// Nodes lists the internal nodes, starting with the root, followed by
	// the leaves in ascending order of frequency.
	Nodes []NodeStats
	// Codes is in the same order as the leaves in Nodes.
	Codes []CodeStats
	// MeanCodeLen is the average number of bits used per input byte.
	MeanCodeLen float64
}

// Gain returns the percentage by which the compressed output is smaller
// than the input, it is negative if the output is larger.
func (s Stats) Gain() float64 {
	if s.FileSize == 0 {
		return 0
	}
	return 100 - float64(s.CompressedSize)/float64(s.FileSize)*100
}

// Stats returns statistics for the most recent successful call to Compress.
func (c *Compressor) Stats() Stats {
	e := &c.enc
	if c.header == nil {
		return Stats{}
	}
	s := Stats{
		FileSize:       e.fileSize,
		CompressedSize: c.size,
		NumLeaves:      e.tree.numLeaves,
	}
	size := float64(e.fileSize)
	stat := func(idx uint16) NodeStats {
		n := &e.tree.nodes[idx]
		ns := NodeStats{Index: idx, Parent: n.Parent, Left: NoNode, Right: NoNode, Frequency: float64(n.Freq) / size}
		if n.Kind == Internal {
			ns.Left, ns.Right = n.Left, n.Right
		}
		return ns
	}
	for idx := int(e.tree.next) - 1; idx >= AlphabetSize; idx-- {
		s.Nodes = append(s.Nodes, stat(uint16(idx)))
	}
	var bits uint64
	for _, idx := range e.leaves {
		s.Nodes = append(s.Nodes, stat(idx))
		n := &e.tree.nodes[idx]
		code, _ := e.codes.Lookup(n.Value)
		s.Codes = append(s.Codes, CodeStats{Value: n.Value, Freq: n.Freq, Code: code.String()})
		bits += uint64(n.Freq) * uint64(code.Len())
	}
	s.MeanCodeLen = float64(bits) / size
	return s
}

func nodeRef(idx uint16, root string) string {
	if idx == NoNode {
		return root
	}
	return fmt.Sprintf("%d", idx)
}

// WriteReport writes a human readable version of s to wr: the node table,
// the code table, the mean code length and the compression gain.
func (s Stats) WriteReport(wr io.Writer) error {
	var out strings.Builder
	fmt.Fprintf(&out, "%8s%8s%8s%8s%12s\n", "Node", "Parent", "Left", "Right", "Frequency")
	for _, n := range s.Nodes {
		fmt.Fprintf(&out, "%8d%8s%8s%8s%12.4f\n", n.Index,
			nodeRef(n.Parent, "R"), nodeRef(n.Left, "-"), nodeRef(n.Right, "-"), n.Frequency)
	}
	fmt.Fprintf(&out, "\n%8s%12s  %s\n", "Byte", "Count", "Code")
	for _, c := range s.Codes {
		fmt.Fprintf(&out, "%8d%12d  %s\n", c.Value, c.Freq, c.Code)
	}
	fmt.Fprintf(&out, "\nMean code length : %.2f\n", s.MeanCodeLen)
	fmt.Fprintf(&out, "Original size    : %d\n", s.FileSize)
	fmt.Fprintf(&out, "Compressed size  : %d\n", s.CompressedSize)
	if gain := s.Gain(); gain < 0 {
		fmt.Fprintf(&out, "Loss             : %.2f%%\n", -gain)
	} else {
		fmt.Fprintf(&out, "Gain             : %.2f%%\n", gain)
	}
	_, err := io.WriteString(wr, out.String())
	return err
}
