// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"github.com/cosnicolaou/huffman/cmd/internal/archive"
	"github.com/cosnicolaou/huffman/cmd/internal/cli"
	"github.com/rs/zerolog"
)

func archiveDir(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*archiveFlags)
	dir, output := args[0], args[1]+".tar.gz"
	logger := cli.NewLogger("hufutil", fv.Verbose)
	if !fv.Verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	out, err := cli.CreateFile(ctx, output)
	if err != nil {
		return err
	}
	cmdutil.HandleSignals(func() {
		out.Discard(ctx)
		os.Exit(1)
	}, os.Interrupt)

	ar := archive.New(ctx, out.Writer(ctx),
		archive.Concurrency(fv.Concurrency),
		archive.Logger(logger))
	errs := errors.M{}
	errs.Append(ar.AddDir(dir))
	entries, err := ar.Finish()
	errs.Append(err)
	if err := errs.Err(); err != nil {
		out.Discard(ctx)
		return err
	}
	if err := out.Close(ctx); err != nil {
		return err
	}
	fmt.Printf("%v: %v files\n", output, len(entries))
	return nil
}
