// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"io"
	"math"
)

const readBufferSize = 64 * 1024

// maxCount is the largest value that a frequency or the file size can
// take; the file size is stored as 4 bytes in the header.
const maxCount = math.MaxUint32

// count reads rd to EOF recording the frequency of every byte value, the
// total number of bytes and the list of byte values that occur, in
// ascending order of value.
func (e *encoder) count(rd io.Reader) error {
	buf := make([]byte, readBufferSize)
	for {
		n, err := rd.Read(buf)
		for _, b := range buf[:n] {
			node := &e.tree.nodes[b]
			if node.Freq >= e.limit {
				return &OverflowError{Counter: FrequencyCounter, Value: b, Limit: e.limit}
			}
			node.Freq++
			if e.fileSize >= e.limit {
				return &OverflowError{Counter: FileSizeCounter, Limit: e.limit}
			}
			e.fileSize++
		}
		e.progress(CountPass, n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return &IOError{Op: "read", Err: err}
		}
	}
	e.leaves = e.leaves[:0]
	for v := 0; v < AlphabetSize; v++ {
		if e.tree.nodes[v].Freq != 0 {
			e.leaves = append(e.leaves, uint16(v))
		}
	}
	return nil
}
