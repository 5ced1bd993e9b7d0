// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cosnicolaou/huffman"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"
)

// ProgressBar displays a progress bar driven by the updates sent on its
// channel.
type ProgressBar struct {
	ch chan huffman.Progress
	wg sync.WaitGroup
}

// ProgressWriter returns the writer to display a progress bar on: stdout
// if it is a terminal and is not being used for output, stderr otherwise.
func ProgressWriter(stdoutIsOutput bool) io.Writer {
	if !stdoutIsOutput && terminal.IsTerminal(int(os.Stdout.Fd())) {
		return os.Stdout
	}
	return os.Stderr
}

// NewProgressBar starts a progress bar on wr that completes after size
// bytes.
func NewProgressBar(ctx context.Context, wr io.Writer, size int64) *ProgressBar {
	pb := &ProgressBar{ch: make(chan huffman.Progress, 16)}
	pb.wg.Add(1)
	go func() {
		progressBar(ctx, wr, pb.ch, size)
		pb.wg.Done()
	}()
	return pb
}

// Chan returns the channel that progress updates are to be sent on.
func (pb *ProgressBar) Chan() chan<- huffman.Progress {
	return pb.ch
}

// Finish waits for the progress bar to display all outstanding updates.
func (pb *ProgressBar) Finish() {
	close(pb.ch)
	pb.wg.Wait()
}

func progressBar(ctx context.Context, wr io.Writer, ch <-chan huffman.Progress, size int64) {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(wr),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				fmt.Fprintf(wr, "\n")
				return
			}
			bar.Add(p.Bytes)
		case <-ctx.Done():
			// Keep draining so that senders never block.
			for range ch {
			}
			return
		}
	}
}
