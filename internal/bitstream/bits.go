// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bitstream provides the bit level packing used by the huffman
// file format.
package bitstream

import (
	"bufio"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// NOTE: bitstreams are created by packing 8 bits into a byte with
//       the most significant bit being the first bit, that is, the bitstream
//       can be visualized as flowing from left to right. A partially filled
//       final byte is padded with zero bits.

// Writer can be used to create and append to a bitstream.
type Writer struct {
	buf       *bufio.Writer
	bw        *bitio.Writer
	lenInBits uint64
}

// NewWriter returns a Writer that packs bits into wr.
func NewWriter(wr io.Writer) *Writer {
	buf := bufio.NewWriter(wr)
	return &Writer{buf: buf, bw: bitio.NewWriter(buf)}
}

// WriteBit appends a single bit, 1 for true and 0 for false.
func (w *Writer) WriteBit(bit bool) error {
	if err := w.bw.WriteBool(bit); err != nil {
		return err
	}
	w.lenInBits++
	return nil
}

// WriteBits appends the n least significant bits of v, most significant
// first. n must be at most 64.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if n < 64 {
		v &= (uint64(1) << n) - 1
	}
	if err := w.bw.WriteBits(v, n); err != nil {
		return err
	}
	w.lenInBits += uint64(n)
	return nil
}

// WriteByte appends all 8 bits of b.
func (w *Writer) WriteByte(b byte) error {
	return w.WriteBits(uint64(b), 8)
}

// Append appends lenBits bits taken from data, which holds its bits packed
// most significant bit first.
func (w *Writer) Append(data []byte, lenBits int) error {
	for i := 0; lenBits > 0; i++ {
		n := 8
		if lenBits < 8 {
			n = lenBits
		}
		if err := w.WriteBits(uint64(data[i]>>(8-n)), uint8(n)); err != nil {
			return err
		}
		lenBits -= n
	}
	return nil
}

// Align pads the current byte with zero bits so that the next bit written
// starts a new byte.
func (w *Writer) Align() error {
	skipped, err := w.bw.Align()
	w.lenInBits += uint64(skipped)
	return err
}

// Close aligns the stream and flushes all buffered data to the underlying
// writer. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.Align(); err != nil {
		return err
	}
	if err := w.bw.Close(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Len returns the number of bits written so far, including any alignment
// padding.
func (w *Writer) Len() uint64 {
	return w.lenInBits
}

// Reader reads a bitstream created by Writer.
type Reader struct {
	br     *bitio.Reader
	offset uint64
}

// NewReader returns a Reader that reads bits from rd.
func NewReader(rd io.Reader) *Reader {
	if _, ok := rd.(io.ByteReader); !ok {
		rd = bufio.NewReader(rd)
	}
	return &Reader{br: bitio.NewReader(rd)}
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		return false, err
	}
	r.offset++
	return b, nil
}

// ReadBits reads n bits and returns them as the least significant bits
// of the result.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err != nil {
		return 0, err
	}
	r.offset += uint64(n)
	return v, nil
}

// ReadByte reads the next 8 bits.
func (r *Reader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	return byte(v), err
}

// ReadFull fills buf with the next len(buf) bytes.
func (r *Reader) ReadFull(buf []byte) error {
	for i := range buf {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}

// Align skips the remaining bits of the current byte.
func (r *Reader) Align() {
	r.offset += uint64(r.br.Align())
}

// Offset returns the number of bits consumed so far.
func (r *Reader) Offset() uint64 {
	return r.offset
}

// String renders the first lenBits bits of data as a string of '0' and '1'
// characters.
func String(data []byte, lenBits int) string {
	var out strings.Builder
	out.Grow(lenBits)
	for i := 0; i < lenBits; i++ {
		if data[i/8]&(0x80>>(i%8)) != 0 {
			out.WriteByte('1')
			continue
		}
		out.WriteByte('0')
	}
	return out.String()
}
