// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cli provides the file handling, progress reporting and logging
// shared by the huffman commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
)

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

// OpenFile opens a local file or s3 path for reading. The returned reader
// is seekable as required for compression.
func OpenFile(ctx context.Context, name string) (io.ReadSeeker, int64, func(context.Context) error, error) {
	info, err := file.Stat(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	return f.Reader(ctx), info.Size(), f.Close, nil
}

// Output is a file being written. If Close is not called, either because
// of an error or an interrupt, Discard must be called to remove it.
type Output struct {
	f    file.File
	name string
}

// CreateFile creates a local file or s3 path for writing, an empty name
// selects stdout.
func CreateFile(ctx context.Context, name string) (*Output, error) {
	if len(name) == 0 {
		return &Output{}, nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Output{f: f, name: name}, nil
}

// Writer returns the writer for the output.
func (o *Output) Writer(ctx context.Context) io.Writer {
	if o.f == nil {
		return os.Stdout
	}
	return o.f.Writer(ctx)
}

// Close commits the output.
func (o *Output) Close(ctx context.Context) error {
	if o.f == nil {
		return nil
	}
	if err := o.f.Close(ctx); err != nil {
		return fmt.Errorf("close %v: %v", o.name, err)
	}
	return nil
}

// Discard abandons the output, no partial output is left behind.
func (o *Output) Discard(ctx context.Context) {
	if o.f == nil {
		return
	}
	o.f.Discard(ctx)
}
