// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package huffman provides a byte oriented huffman compressor and
// decompressor. The compressed stream is self contained: it starts with a
// header that records the uncompressed size and the shape of the tree
// used to encode it, followed by the codes for every input byte. See
// Header for the layout.
//
// Compression makes two passes over its input, the first to count byte
// frequencies and the second to encode, and hence requires an
// io.ReadSeeker. Trees are built deterministically, leaves with equal
// frequencies are ordered by byte value, so that compressing the same
// input always produces the same output.
//
// Decompression is streaming, NewReader returns an io.Reader that decodes
// the compressed data as it is read.
package huffman
