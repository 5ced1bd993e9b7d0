// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command dehuf decompresses a file created by huf to stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cosnicolaou/huffman"
	"github.com/cosnicolaou/huffman/cmd/internal/cli"
	"github.com/grailbio/base/must"
	"github.com/rs/zerolog"
	"v.io/x/lib/cmd/flagvar"
)

var commandline struct {
	ProgressBar bool `cmd:"progress,false,display a progress bar on stderr"`
	Verbose     bool `cmd:"verbose,false,verbose debug/trace information"`
}

func init() {
	must.Nil(flagvar.RegisterFlagsInStruct(flag.CommandLine, "cmd", &commandline,
		nil, nil))
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] <input>\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	logger := cli.NewLogger("dehuf", commandline.Verbose)
	if err := runner(logger, flag.Arg(0)); err != nil {
		logger.Error().Err(err).Msg("decompression failed")
		os.Exit(1)
	}
}

func runner(logger zerolog.Logger, input string) error {
	ctx := context.Background()

	rd, _, readerCleanup, err := cli.OpenFile(ctx, input)
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)

	opts := []huffman.DecompressorOption{huffman.DecompressorLogger(logger)}
	var pb *cli.ProgressBar
	if commandline.ProgressBar {
		// The progress bar needs the uncompressed size up front.
		hdr, _, err := huffman.ReadHeader(rd)
		if err != nil {
			return fmt.Errorf("%v: %w", input, err)
		}
		if _, err := rd.Seek(0, io.SeekStart); err != nil {
			return err
		}
		pb = cli.NewProgressBar(ctx, cli.ProgressWriter(true), int64(hdr.FileSize))
		opts = append(opts, huffman.DecompressorProgress(pb.Chan()))
	}

	wr := bufio.NewWriter(os.Stdout)
	err = huffman.Decompress(rd, wr, opts...)
	if pb != nil {
		pb.Finish()
	}
	if err != nil {
		return fmt.Errorf("%v: %w", input, err)
	}
	return wr.Flush()
}
