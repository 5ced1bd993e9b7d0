// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitstream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/cosnicolaou/huffman/internal/bitstream"
)

func b(b ...byte) []byte {
	return b
}

func TestWriterPacking(t *testing.T) {
	for i, tc := range []struct {
		write func(w *bitstream.Writer) error
		out   []byte
		bits  uint64
	}{
		{func(w *bitstream.Writer) error { return nil }, nil, 0},
		{func(w *bitstream.Writer) error { return w.WriteBit(true) }, b(0x80), 8},
		{func(w *bitstream.Writer) error { return w.WriteBits(0b011, 3) }, b(0x60), 8},
		{func(w *bitstream.Writer) error { return w.WriteBits(0xffff, 3) }, b(0xe0), 8},
		{func(w *bitstream.Writer) error { return w.WriteBits(0x0000000b, 32) }, b(0x00, 0x00, 0x00, 0x0b), 32},
		{func(w *bitstream.Writer) error {
			for _, bit := range []bool{false, true, false, false, true, true, false, true, true} {
				if err := w.WriteBit(bit); err != nil {
					return err
				}
			}
			return nil
		}, b(0x4d, 0x80), 16},
		{func(w *bitstream.Writer) error {
			if err := w.WriteBit(true); err != nil {
				return err
			}
			if err := w.Align(); err != nil {
				return err
			}
			return w.WriteByte(0x61)
		}, b(0x80, 0x61), 16},
		{func(w *bitstream.Writer) error {
			return w.Append(b(0xff, 0xc0), 10)
		}, b(0xff, 0xc0), 16},
		{func(w *bitstream.Writer) error {
			if err := w.WriteBits(0b1, 1); err != nil {
				return err
			}
			return w.Append(b(0xa5, 0x80), 9)
		}, b(0xd2, 0xc0), 16},
	} {
		var buf bytes.Buffer
		w := bitstream.NewWriter(&buf)
		if err := tc.write(w); err != nil {
			t.Errorf("%v: write: %v", i, err)
			continue
		}
		if err := w.Close(); err != nil {
			t.Errorf("%v: close: %v", i, err)
			continue
		}
		if got, want := buf.Bytes(), tc.out; !bytes.Equal(got, want) {
			t.Errorf("%v: got %08b, want %08b", i, got, want)
		}
		if got, want := w.Len(), tc.bits; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
}

func TestReader(t *testing.T) {
	r := bitstream.NewReader(bytes.NewReader(b(0x00, 0x00, 0x00, 0x0b, 0x4d, 0x80, 0x61)))
	size, err := r.ReadBits(32)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := size, uint64(11); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	var bits []bool
	for i := 0; i < 9; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			t.Fatal(err)
		}
		bits = append(bits, bit)
	}
	for i, want := range []bool{false, true, false, false, true, true, false, true, true} {
		if got := bits[i]; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
	if got, want := r.Offset(), uint64(41); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	r.Align()
	if got, want := r.Offset(), uint64(48); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	buf := make([]byte, 1)
	if err := r.ReadFull(buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf[0], byte(0x61); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := r.ReadBit(); err != io.EOF {
		t.Errorf("got %v, want %v", err, io.EOF)
	}
}

func TestRoundTrip(t *testing.T) {
	code := b(0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d,
		0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d,
		0xb6, 0xdb, 0x6d, 0xb6, 0xdb, 0x6d, 0xb6, 0xda)
	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	for i := 0; i < 3; i++ {
		if err := w.Append(code, 255); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.Len(), (3*255+7)/8; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	want := bitstream.String(code, 255)
	r := bitstream.NewReader(&buf)
	for i := 0; i < 3; i++ {
		out := make([]byte, 0, 255)
		for j := 0; j < 255; j++ {
			bit, err := r.ReadBit()
			if err != nil {
				t.Fatal(err)
			}
			if bit {
				out = append(out, '1')
			} else {
				out = append(out, '0')
			}
		}
		if got := string(out); got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
}

func TestString(t *testing.T) {
	for i, tc := range []struct {
		data []byte
		n    int
		out  string
	}{
		{nil, 0, ""},
		{b(0x80), 1, "1"},
		{b(0x4d, 0x80), 9, "010011011"},
		{b(0x00), 3, "000"},
	} {
		if got, want := bitstream.String(tc.data, tc.n), tc.out; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
}
