// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"github.com/cosnicolaou/huffman"
	"github.com/cosnicolaou/huffman/cmd/internal/cli"
)

func inspectFile(ctx context.Context, wr io.Writer, name string, codes bool) error {
	rd, _, readerCleanup, err := cli.OpenFile(ctx, name)
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)
	hdr, tree, err := huffman.ReadHeader(rd)
	if err != nil {
		return fmt.Errorf("%v: %v", name, err)
	}
	leaves := make([]string, len(hdr.Leaves))
	for i, l := range hdr.Leaves {
		leaves[i] = fmt.Sprintf("%02x", l)
	}
	fmt.Fprintf(wr, "=== %v ===\n", name)
	fmt.Fprintf(wr, "File size   : %v\n", hdr.FileSize)
	fmt.Fprintf(wr, "Header size : %v\n", hdr.Size)
	fmt.Fprintf(wr, "Leaves      : %v\n", hdr.NumLeaves)
	fmt.Fprintf(wr, "Leaf order  : %v\n", strings.Join(leaves, " "))
	fmt.Fprintf(wr, "Tree shape  : %v\n", hdr.Shape)
	if !codes {
		return nil
	}
	ct := tree.Codes()
	fmt.Fprintf(wr, "%8s  %s\n", "Byte", "Code")
	for _, s := range ct.Symbols() {
		code, _ := ct.Lookup(s)
		fmt.Fprintf(wr, "%8d  %s\n", s, code)
	}
	return nil
}

func inspect(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*inspectFlags)
	ctx, cancel := context.WithCancel(ctx)
	cmdutil.HandleSignals(cancel, os.Interrupt)
	errs := errors.M{}
	for _, arg := range args {
		if ctx.Err() != nil {
			break
		}
		errs.Append(inspectFile(ctx, os.Stdout, arg, fv.Codes))
	}
	return errs.Err()
}

func statsFile(ctx context.Context, wr io.Writer, name string) error {
	rd, _, readerCleanup, err := cli.OpenFile(ctx, name)
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)
	c := huffman.NewCompressor()
	if err := c.Compress(rd, io.Discard); err != nil {
		return fmt.Errorf("%v: %v", name, err)
	}
	fmt.Fprintf(wr, "=== %v ===\n", name)
	return c.Stats().WriteReport(wr)
}

func stats(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	cmdutil.HandleSignals(cancel, os.Interrupt)
	errs := errors.M{}
	for _, arg := range args {
		if ctx.Err() != nil {
			break
		}
		errs.Append(statsFile(ctx, os.Stdout, arg))
	}
	return errs.Err()
}
