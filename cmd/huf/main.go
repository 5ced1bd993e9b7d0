// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command huf compresses a file using huffman coding.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cloudeng.io/cmdutil"
	"github.com/cosnicolaou/huffman"
	"github.com/cosnicolaou/huffman/cmd/internal/cli"
	"github.com/grailbio/base/must"
	"github.com/rs/zerolog"
	"v.io/x/lib/cmd/flagvar"
)

var commandline struct {
	ProgressBar bool `cmd:"progress,false,display a progress bar"`
	Verbose     bool `cmd:"verbose,false,verbose debug/trace information"`
	Stats       bool `cmd:"stats,false,'display the tree, the code table and the compression gain'"`
}

func init() {
	must.Nil(flagvar.RegisterFlagsInStruct(flag.CommandLine, "cmd", &commandline,
		nil, nil))
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] <input> <output>\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	logger := cli.NewLogger("huf", commandline.Verbose)
	if err := runner(logger, flag.Arg(0), flag.Arg(1)); err != nil {
		logger.Error().Err(err).Msg("compression failed")
		os.Exit(1)
	}
}

func runner(logger zerolog.Logger, input, output string) (returnErr error) {
	ctx := context.Background()

	rd, size, readerCleanup, err := cli.OpenFile(ctx, input)
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)

	out, err := cli.CreateFile(ctx, output)
	if err != nil {
		return err
	}
	cmdutil.HandleSignals(func() {
		out.Discard(ctx)
		os.Exit(1)
	}, os.Interrupt)
	defer func() {
		if returnErr != nil {
			out.Discard(ctx)
			return
		}
		returnErr = out.Close(ctx)
	}()

	opts := []huffman.CompressorOption{huffman.CompressorLogger(logger)}
	var pb *cli.ProgressBar
	if commandline.ProgressBar {
		// Both passes read the entire input.
		pb = cli.NewProgressBar(ctx, cli.ProgressWriter(false), 2*size)
		opts = append(opts, huffman.CompressorProgress(pb.Chan()))
	}
	c := huffman.NewCompressor(opts...)
	err = c.Compress(rd, out.Writer(ctx))
	if pb != nil {
		pb.Finish()
	}
	if err != nil {
		return fmt.Errorf("%v: %w", input, err)
	}
	stats := c.Stats()
	logger.Debug().
		Str("input", input).
		Str("output", output).
		Uint32("size", stats.FileSize).
		Uint64("compressed", stats.CompressedSize).
		Msg("compressed")
	if commandline.Stats {
		return stats.WriteReport(os.Stdout)
	}
	return nil
}
