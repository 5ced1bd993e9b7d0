// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command hufutil provides commands to inspect huffman compressed files,
// report compression statistics and to create archives of compressed
// files.
package main

import (
	"context"
	"runtime"

	"cloudeng.io/cmdutil/subcmd"
)

type inspectFlags struct {
	Codes bool `subcmd:"codes,true,'display the code table'"`
}

type statsFlags struct{}

type archiveFlags struct {
	Concurrency int  `subcmd:"concurrency,4,'number of files to compress concurrently'"`
	Verbose     bool `subcmd:"verbose,false,'report every file as it is archived'"`
}

var cmdSet *subcmd.CommandSet

func init() {
	inspectFS := subcmd.NewFlagSet()
	inspectFS.MustRegisterFlagStruct(&inspectFlags{}, nil, nil)
	inspectCmd := subcmd.NewCommand("inspect", inspectFS, inspect, subcmd.AtLeastNArguments(1))
	inspectCmd.Document(`display the header of huffman compressed files.`, "<file>...")

	statsFS := subcmd.NewFlagSet()
	statsFS.MustRegisterFlagStruct(&statsFlags{}, nil, nil)
	statsCmd := subcmd.NewCommand("stats", statsFS, stats, subcmd.AtLeastNArguments(1))
	statsCmd.Document(`display the tree, code table and compression gain that compressing the specified files would achieve.`, "<file>...")

	archiveFS := subcmd.NewFlagSet()
	archiveFS.MustRegisterFlagStruct(&archiveFlags{},
		map[string]interface{}{
			"concurrency": runtime.GOMAXPROCS(-1),
		}, nil)
	archiveCmd := subcmd.NewCommand("archive", archiveFS, archiveDir, subcmd.ExactlyNumArguments(2))
	archiveCmd.Document(`compress every file in a directory and write them to <output>.tar.gz.`, "<directory> <output>")

	cmdSet = subcmd.NewCommandSet(inspectCmd, statsCmd, archiveCmd)
	cmdSet.Document(`inspect and archive huffman compressed files.`)
}

func main() {
	cmdSet.MustDispatch(context.Background())
}
