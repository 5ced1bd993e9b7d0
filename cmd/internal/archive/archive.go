// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package archive creates gzip compressed tar archives of huffman
// compressed files. Files are compressed concurrently and written to the
// archive in the order that they were added.
package archive

import (
	"archive/tar"
	"bytes"
	"container/heap"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	cerrors "cloudeng.io/errors"
	"github.com/cosnicolaou/huffman"
	"github.com/cosnicolaou/huffman/cmd/internal/cli"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// Suffix is appended to the name of every file in the archive.
const Suffix = ".huff"

type options struct {
	concurrency int
	logger      zerolog.Logger
}

// Option represents an option to New.
type Option func(*options)

// Concurrency sets the number of files that are compressed concurrently.
func Concurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Logger sets the logger used to report progress and skipped files.
func Logger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Entry describes a file written to the archive.
type Entry struct {
	Name  string
	Stats huffman.Stats
}

type entryDesc struct {
	order uint64
	path  string
	name  string

	err      error
	skipped  bool
	data     []byte
	stats    huffman.Stats
	duration time.Duration
}

// Archiver compresses files and writes them to a tar archive.
type Archiver struct {
	ctx     context.Context
	opts    options
	workWg  sync.WaitGroup
	doneWg  sync.WaitGroup
	workCh  chan *entryDesc
	doneCh  chan *entryDesc
	order   uint64
	heap    *entryHeap // accessed only by assemble.
	gz      *gzip.Writer
	tw      *tar.Writer
	errs    cerrors.M
	entries []Entry
}

// New returns an Archiver that writes a gzip compressed tar archive
// to wr.
func New(ctx context.Context, wr io.Writer, opts ...Option) *Archiver {
	a := &Archiver{
		ctx: ctx,
		opts: options{
			concurrency: 1,
			logger:      zerolog.Nop(),
		},
		heap: &entryHeap{},
	}
	for _, fn := range opts {
		fn(&a.opts)
	}
	a.gz = gzip.NewWriter(wr)
	a.tw = tar.NewWriter(a.gz)
	a.workCh = make(chan *entryDesc, a.opts.concurrency)
	a.doneCh = make(chan *entryDesc, a.opts.concurrency)
	heap.Init(a.heap)
	a.workWg.Add(a.opts.concurrency)
	a.doneWg.Add(1)
	for i := 0; i < a.opts.concurrency; i++ {
		go func() {
			a.worker()
			a.workWg.Done()
		}()
	}
	go func() {
		a.assemble()
		a.doneWg.Done()
	}()
	return a
}

// worker compresses each file it is given with its own Compressor.
func (a *Archiver) worker() {
	c := huffman.NewCompressor()
	for e := range a.workCh {
		start := time.Now()
		e.data, e.stats, e.err = compressFile(a.ctx, c, e.path)
		if errors.Is(e.err, huffman.ErrEmptyInput) {
			e.skipped, e.err = true, nil
		}
		e.duration = time.Since(start)
		a.doneCh <- e
	}
}

func compressFile(ctx context.Context, c *huffman.Compressor, name string) ([]byte, huffman.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, huffman.Stats{}, err
	}
	rd, _, cleanup, err := cli.OpenFile(ctx, name)
	if err != nil {
		return nil, huffman.Stats{}, fmt.Errorf("%v: %w", name, err)
	}
	defer cleanup(ctx)
	var buf bytes.Buffer
	if err := c.Compress(rd, &buf); err != nil {
		return nil, huffman.Stats{}, fmt.Errorf("%v: %w", name, err)
	}
	return buf.Bytes(), c.Stats(), nil
}

// Add schedules the file at path to be compressed and written to the
// archive as name with Suffix appended.
func (a *Archiver) Add(path, name string) {
	a.order++
	a.workCh <- &entryDesc{order: a.order, path: path, name: name}
}

// AddDir adds every regular file under dir, named by its path relative
// to dir. Sockets, devices and named pipes are skipped.
func (a *Archiver) AddDir(dir string) error {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	lister := file.List(a.ctx, dir, true)
	for lister.Scan() {
		if lister.IsDir() {
			continue
		}
		p := lister.Path()
		if !isRegular(p) {
			a.opts.logger.Warn().Str("file", p).Msg("skipping non-regular file")
			continue
		}
		a.Add(p, strings.TrimPrefix(p, prefix))
	}
	return lister.Err()
}

// isRegular reports whether a local path, after following symbolic links,
// is a regular file. Object store paths are always regular.
func isRegular(p string) bool {
	if strings.Contains(p, "://") {
		return true
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func (a *Archiver) assemble() {
	expected := uint64(1)
	for e := range a.doneCh {
		heap.Push(a.heap, e)
		for len(*a.heap) > 0 {
			min := (*a.heap)[0]
			if min.order != expected {
				break
			}
			heap.Remove(a.heap, 0)
			a.write(min)
			expected++
		}
	}
}

func (a *Archiver) write(e *entryDesc) {
	log := a.opts.logger
	switch {
	case e.err != nil:
		a.errs.Append(e.err)
		return
	case e.skipped:
		log.Warn().Str("file", e.path).Msg("skipping empty file")
		return
	}
	hdr := &tar.Header{
		Name:    path.Clean(e.name) + Suffix,
		Mode:    0644,
		Size:    int64(len(e.data)),
		ModTime: time.Now(),
	}
	if err := a.tw.WriteHeader(hdr); err != nil {
		a.errs.Append(fmt.Errorf("%v: %v", hdr.Name, err))
		return
	}
	if _, err := a.tw.Write(e.data); err != nil {
		a.errs.Append(fmt.Errorf("%v: %v", hdr.Name, err))
		return
	}
	a.entries = append(a.entries, Entry{Name: hdr.Name, Stats: e.stats})
	log.Info().
		Str("file", e.path).
		Uint32("size", e.stats.FileSize).
		Uint64("compressed", e.stats.CompressedSize).
		Float64("gain", e.stats.Gain()).
		Dur("duration", e.duration).
		Msg("archived")
}

// Finish waits for all outstanding files to be written and closes the
// archive. It returns the entries written and all of the errors
// encountered.
func (a *Archiver) Finish() ([]Entry, error) {
	close(a.workCh)
	a.workWg.Wait()
	close(a.doneCh)
	a.doneWg.Wait()
	a.errs.Append(a.tw.Close())
	a.errs.Append(a.gz.Close())
	return a.entries, a.errs.Err()
}

type entryHeap []*entryDesc

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].order < h[j].order }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(*entryDesc))
}

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
