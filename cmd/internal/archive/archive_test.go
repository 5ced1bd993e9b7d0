// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package archive_test

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cosnicolaou/huffman"
	"github.com/cosnicolaou/huffman/cmd/internal/archive"
	"github.com/cosnicolaou/huffman/internal"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
)

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	tr := tar.NewReader(gz)
	contents := map[string][]byte{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := huffman.Decompress(tr, &out); err != nil {
			t.Fatalf("%v: %v", hdr.Name, err)
		}
		contents[hdr.Name] = out.Bytes()
	}
	return contents
}

func TestArchiveDir(t *testing.T) {
	ctx := context.Background()
	tmpdir := t.TempDir()
	files := map[string][]byte{
		"hello.txt":       []byte("hello world\n"),
		"sub/random.bin":  internal.GenReproducibleRandomData(200 * 1024),
		"sub/deep/fib":    internal.GenFibonacciData(20),
		"sub/deep/skewed": internal.GenSkewedRandomData(50*1024, 8),
	}
	for name, data := range files {
		filename := filepath.Join(tmpdir, name)
		if err := os.MkdirAll(filepath.Dir(filename), 0770); err != nil {
			t.Fatal(err)
		}
		if err := internal.WriteFile(filename, data); err != nil {
			t.Fatal(err)
		}
	}
	if err := internal.WriteFile(filepath.Join(tmpdir, "empty"), nil); err != nil {
		t.Fatal(err)
	}

	for _, concurrency := range []int{1, 3, 8} {
		var buf bytes.Buffer
		ar := archive.New(ctx, &buf, archive.Concurrency(concurrency))
		if err := ar.AddDir(tmpdir); err != nil {
			t.Fatal(err)
		}
		entries, err := ar.Finish()
		if err != nil {
			t.Fatal(err)
		}
		if got, want := len(entries), len(files); got != want {
			t.Errorf("%v: got %v, want %v", concurrency, got, want)
		}
		want := map[string][]byte{}
		for name, data := range files {
			want[name+archive.Suffix] = data
		}
		if diff := cmp.Diff(want, readArchive(t, buf.Bytes())); diff != "" {
			t.Errorf("%v: mismatch (-want +got):\n%s", concurrency, diff)
		}
	}
}

func TestArchiveOrder(t *testing.T) {
	ctx := context.Background()
	tmpdir := t.TempDir()
	var names []string
	for i := 0; i < 20; i++ {
		name := strings.Repeat("x", i+1)
		data := internal.GenPredictableRandomData((20 - i) * 4096)
		if err := internal.WriteFile(filepath.Join(tmpdir, name), data); err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}
	var buf bytes.Buffer
	ar := archive.New(ctx, &buf, archive.Concurrency(4))
	for _, name := range names {
		ar.Add(filepath.Join(tmpdir, name), name)
	}
	entries, err := ar.Finish()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, strings.TrimSuffix(e.Name, archive.Suffix))
	}
	if diff := cmp.Diff(names, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArchiveErrors(t *testing.T) {
	ctx := context.Background()
	tmpdir := t.TempDir()
	good := filepath.Join(tmpdir, "good")
	if err := internal.WriteFile(good, []byte("good data")); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	ar := archive.New(ctx, &buf, archive.Concurrency(2))
	ar.Add(filepath.Join(tmpdir, "missing-1"), "missing-1")
	ar.Add(good, "good")
	ar.Add(filepath.Join(tmpdir, "missing-2"), "missing-2")
	entries, err := ar.Finish()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, name := range []string{"missing-1", "missing-2"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("%v does not mention %v", err, name)
		}
	}
	if got, want := len(entries), 1; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	contents := readArchive(t, buf.Bytes())
	if got, want := string(contents["good"+archive.Suffix]), "good data"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestArchiveSkipsSpecialFiles(t *testing.T) {
	ctx := context.Background()
	// Unix socket paths are limited in length, so avoid t.TempDir.
	tmpdir, err := os.MkdirTemp("", "ar")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpdir)
	if err := internal.WriteFile(filepath.Join(tmpdir, "a.txt"), []byte("regular file")); err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("unix", filepath.Join(tmpdir, "s.sock"))
	if err != nil {
		t.Skipf("unix sockets are not supported: %v", err)
	}
	defer ln.Close()

	var buf bytes.Buffer
	ar := archive.New(ctx, &buf, archive.Concurrency(2))
	if err := ar.AddDir(tmpdir); err != nil {
		t.Fatal(err)
	}
	entries, err := ar.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(entries), 1; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	want := map[string][]byte{"a.txt" + archive.Suffix: []byte("regular file")}
	if diff := cmp.Diff(want, readArchive(t, buf.Bytes())); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
