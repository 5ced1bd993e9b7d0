// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"io"

	"github.com/cosnicolaou/huffman/internal/bitstream"
	"github.com/rs/zerolog"
)

type decompressorOpts struct {
	logger     zerolog.Logger
	progressCh chan<- Progress
}

// DecompressorOption represents an option to NewReader and Decompress.
type DecompressorOption func(*decompressorOpts)

// DecompressorLogger sets the logger used for debug output.
func DecompressorLogger(l zerolog.Logger) DecompressorOption {
	return func(o *decompressorOpts) {
		o.logger = l
	}
}

// DecompressorProgress requests that progress updates be sent to the
// supplied channel. Updates are sent synchronously.
func DecompressorProgress(ch chan<- Progress) DecompressorOption {
	return func(o *decompressorOpts) {
		o.progressCh = ch
	}
}

type reader struct {
	opts      decompressorOpts
	br        *bitstream.Reader
	header    *Header
	tree      *Tree
	remaining uint32
	payload   uint64
	err       error
}

// NewReader returns an io.Reader that decompresses the data read from rd.
// The header is read on the first call to Read.
func NewReader(rd io.Reader, opts ...DecompressorOption) io.Reader {
	r := &reader{
		opts: decompressorOpts{logger: zerolog.Nop()},
		br:   bitstream.NewReader(rd),
	}
	for _, fn := range opts {
		fn(&r.opts)
	}
	return r
}

func (r *reader) setup() error {
	hdr, tree, err := readHeader(r.br)
	if err != nil {
		return err
	}
	r.header, r.tree = hdr, tree
	r.remaining = hdr.FileSize
	r.payload = r.br.Offset()
	r.opts.logger.Debug().
		Uint32("file_size", hdr.FileSize).
		Int("num_leaves", hdr.NumLeaves).
		Int("bytes", hdr.Size).
		Int("shape_bits", len(hdr.Shape)).
		Msg("read header")
	return nil
}

// Read implements io.Reader.
func (r *reader) Read(buf []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.header == nil {
		if err := r.setup(); err != nil {
			r.err = err
			return 0, err
		}
	}
	n := 0
	for n < len(buf) && r.remaining > 0 {
		b, err := r.decode()
		if err != nil {
			r.err = err
			r.progress(n)
			return n, err
		}
		buf[n] = b
		n++
		r.remaining--
	}
	r.progress(n)
	if r.remaining == 0 {
		r.opts.logger.Debug().Uint64("bits", r.br.Offset()-r.payload).Msg("read payload")
		r.err = io.EOF
		if n == 0 {
			return 0, io.EOF
		}
	}
	return n, nil
}

func (r *reader) progress(n int) {
	if r.opts.progressCh != nil && n > 0 {
		r.opts.progressCh <- Progress{Pass: DecodePass, Bytes: n}
	}
}

// decode reads the code for a single byte by walking the tree from the
// root, 0 selects the left child and 1 the right.
func (r *reader) decode() (byte, error) {
	nodes := &r.tree.nodes
	idx := r.tree.root
	if nodes[idx].Kind == Leaf {
		bit, err := r.br.ReadBit()
		if err != nil {
			return 0, readErr("read payload", err)
		}
		if bit {
			return 0, StructuralError("single symbol code is not 0")
		}
		return nodes[idx].Value, nil
	}
	for nodes[idx].Kind == Internal {
		bit, err := r.br.ReadBit()
		if err != nil {
			return 0, readErr("read payload", err)
		}
		if bit {
			idx = nodes[idx].Right
		} else {
			idx = nodes[idx].Left
		}
	}
	return nodes[idx].Value, nil
}

// Decompress decompresses all of rd to wr.
func Decompress(rd io.Reader, wr io.Writer, opts ...DecompressorOption) error {
	dc := NewReader(rd, opts...)
	buf := make([]byte, readBufferSize)
	for {
		n, err := dc.Read(buf)
		if n > 0 {
			if _, werr := wr.Write(buf[:n]); werr != nil {
				return &IOError{Op: "write", Err: werr}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
