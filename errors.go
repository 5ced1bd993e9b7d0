// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when compressing an input that contains
	// no bytes.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrInputChanged is returned when the second pass over the input
	// does not see the same bytes that were counted by the first.
	ErrInputChanged = errors.New("huffman: input changed between passes")
)

// A StructuralError is returned when the compressed data is found to be
// syntactically invalid.
type StructuralError string

func (s StructuralError) Error() string {
	return "huffman data invalid: " + string(s)
}

// Names of the counters that can overflow.
const (
	FrequencyCounter = "frequency"
	FileSizeCounter  = "file size"
)

// OverflowError is returned when counting the input would exceed the
// maximum value a counter can represent.
type OverflowError struct {
	Counter string
	// Value is the byte whose frequency would overflow, it is only
	// meaningful for FrequencyCounter.
	Value byte
	Limit uint32
}

func (e *OverflowError) Error() string {
	if e.Counter == FrequencyCounter {
		return fmt.Sprintf("huffman: frequency of byte %#02x exceeds %v", e.Value, e.Limit)
	}
	return fmt.Sprintf("huffman: %v exceeds %v", e.Counter, e.Limit)
}

// IOError records a failed read, write or seek on the underlying stream.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "huffman: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
