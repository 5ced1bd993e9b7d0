// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"io"

	"github.com/cosnicolaou/huffman/internal/bitstream"
	"github.com/rs/zerolog"
)

// Pass identifies the pass over the data that a Progress update refers to.
type Pass int

// The passes over the data, counting and encoding for compression and
// decoding for decompression.
const (
	CountPass Pass = iota
	EncodePass
	DecodePass
)

func (p Pass) String() string {
	switch p {
	case CountPass:
		return "count"
	case EncodePass:
		return "encode"
	case DecodePass:
		return "decode"
	}
	return "unknown"
}

// Progress is used to report the progress of compression and
// decompression. Bytes is the number of uncompressed bytes processed since
// the previous update.
type Progress struct {
	Pass  Pass
	Bytes int
}

type compressorOpts struct {
	logger     zerolog.Logger
	progressCh chan<- Progress
	limit      uint32
}

// CompressorOption represents an option to NewCompressor.
type CompressorOption func(*compressorOpts)

// CompressorLogger sets the logger used for debug output, by default
// nothing is logged.
func CompressorLogger(l zerolog.Logger) CompressorOption {
	return func(o *compressorOpts) {
		o.logger = l
	}
}

// CompressorProgress requests that progress updates be sent to the
// supplied channel. Updates are sent synchronously, the caller must
// consume them.
func CompressorProgress(ch chan<- Progress) CompressorOption {
	return func(o *compressorOpts) {
		o.progressCh = ch
	}
}

// encoder holds all of the state for a single compression.
type encoder struct {
	tree       Tree
	leaves     []uint16
	fileSize   uint32
	limit      uint32
	codes      CodeTable
	progressCh chan<- Progress
}

func (e *encoder) reset(limit uint32, ch chan<- Progress) {
	e.tree.reset()
	e.leaves = make([]uint16, 0, AlphabetSize)
	e.fileSize = 0
	e.limit = limit
	e.codes = CodeTable{}
	e.progressCh = ch
}

func (e *encoder) progress(pass Pass, n int) {
	if e.progressCh != nil && n > 0 {
		e.progressCh <- Progress{Pass: pass, Bytes: n}
	}
}

// Compressor compresses seekable inputs. A Compressor may be reused,
// but not concurrently; each call to Compress starts from scratch.
type Compressor struct {
	opts   compressorOpts
	enc    encoder
	header *Header
	size   uint64
}

// NewCompressor returns a new Compressor.
func NewCompressor(opts ...CompressorOption) *Compressor {
	c := &Compressor{
		opts: compressorOpts{
			logger: zerolog.Nop(),
			limit:  maxCount,
		},
	}
	for _, fn := range opts {
		fn(&c.opts)
	}
	return c
}

// Compress compresses the entire contents of rs to wr regardless of its
// current offset. rs is read twice from its start, once to count byte
// frequencies and then to encode it. Nothing is written to wr if the
// first pass fails.
func (c *Compressor) Compress(rs io.ReadSeeker, wr io.Writer) error {
	e := &c.enc
	e.reset(c.opts.limit, c.opts.progressCh)
	c.header, c.size = nil, 0
	log := c.opts.logger

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Err: err}
	}
	if err := e.count(rs); err != nil {
		return err
	}
	log.Debug().Uint32("file_size", e.fileSize).Int("num_leaves", len(e.leaves)).Msg("counted input")

	sortLeaves(&e.tree, e.leaves)
	if err := e.tree.build(e.leaves); err != nil {
		return err
	}
	e.codes = e.tree.Codes()
	log.Debug().
		Uint16("root", e.tree.root).
		Uint32("root_freq", e.tree.nodes[e.tree.root].Freq).
		Int("internal_nodes", e.tree.NumInternal()).
		Int("max_code_len", e.codes.MaxLen()).
		Msg("built tree")

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Err: err}
	}

	bw := bitstream.NewWriter(wr)
	hdr, err := writeHeader(bw, &e.tree, e.fileSize)
	if err != nil {
		return &IOError{Op: "write header", Err: err}
	}
	log.Debug().Int("bytes", hdr.Size).Int("shape_bits", len(hdr.Shape)).Msg("wrote header")

	payloadStart := bw.Len()
	if err := e.encode(rs, bw); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	log.Debug().Uint64("bits", bw.Len()-payloadStart).Msg("wrote payload")
	c.header = hdr
	c.size = bw.Len() / 8
	return nil
}

// encode writes the code for every byte read from rd.
func (e *encoder) encode(rd io.Reader, bw *bitstream.Writer) error {
	buf := make([]byte, readBufferSize)
	var total uint64
	for {
		n, err := rd.Read(buf)
		total += uint64(n)
		if total > uint64(e.fileSize) {
			return ErrInputChanged
		}
		for _, b := range buf[:n] {
			code, ok := e.codes.Lookup(b)
			if !ok {
				return ErrInputChanged
			}
			if werr := bw.Append(code.Bytes(), code.Len()); werr != nil {
				return &IOError{Op: "write", Err: werr}
			}
		}
		e.progress(EncodePass, n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return &IOError{Op: "read", Err: err}
		}
	}
	if total != uint64(e.fileSize) {
		return ErrInputChanged
	}
	return nil
}

// Tree returns the tree built by the most recent call to Compress.
func (c *Compressor) Tree() *Tree {
	return &c.enc.tree
}

// Codes returns the code table built by the most recent call to Compress.
func (c *Compressor) Codes() *CodeTable {
	return &c.enc.codes
}

// Header returns the header written by the most recent successful call
// to Compress, nil if there was none.
func (c *Compressor) Header() *Header {
	return c.header
}

// Compress compresses rs to wr using a new Compressor.
func Compress(rs io.ReadSeeker, wr io.Writer, opts ...CompressorOption) error {
	return NewCompressor(opts...).Compress(rs, wr)
}
