// Copyright 2026 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package internal

import (
	"fmt"
	"math/rand"
	"os"
	"time"
)

// Seed for the pseudorandom generator used by GenPredictableRandomData.
const fixedRandSeed = 0x1234

var randSource rand.Source

func init() {
	randSeed := time.Now().UnixNano()
	fmt.Printf("rand seed for GenReproducibleRandomData: %v\n", randSeed)
	randSource = rand.NewSource(randSeed)
}

// GenPredictableRandomData generates random data starting with a fixed
// known seed.
func GenPredictableRandomData(size int) []byte {
	gen := rand.New(rand.NewSource(fixedRandSeed))
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(gen.Intn(256))
	}
	return out
}

// GenReproducibleRandomData uses the random # seed printed out by this
// file's init function.
func GenReproducibleRandomData(size int) []byte {
	gen := rand.New(randSource)
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(gen.Intn(256))
	}
	return out
}

// GenSkewedRandomData generates random data drawn from the first
// alphabet byte values, with each value twice as likely as the next.
func GenSkewedRandomData(size, alphabet int) []byte {
	gen := rand.New(rand.NewSource(fixedRandSeed))
	out := make([]byte, size)
	for i := range out {
		v := 0
		for v < alphabet-1 && gen.Intn(2) == 1 {
			v++
		}
		out[i] = byte(v)
	}
	return out
}

// Fibonacci returns the first n fibonacci numbers, starting 1, 1, 2.
func Fibonacci(n int) []int {
	fib := make([]int, n)
	for i := range fib {
		if i < 2 {
			fib[i] = 1
			continue
		}
		fib[i] = fib[i-1] + fib[i-2]
	}
	return fib
}

// GenFibonacciData generates data in which byte value i occurs
// Fibonacci(n)[i] times. Such frequencies produce a tree of maximum depth,
// the two least frequent values have codes of n-1 bits.
func GenFibonacciData(n int) []byte {
	var out []byte
	for i, f := range Fibonacci(n) {
		for j := 0; j < f; j++ {
			out = append(out, byte(i))
		}
	}
	return out
}

// WriteFile writes data to filename.
func WriteFile(filename string, data []byte) error {
	if err := os.WriteFile(filename, data, 0660); err != nil {
		return fmt.Errorf("write file: %v: %v", filename, err)
	}
	return nil
}

// FirstN returns at most the first n bytes of b.
func FirstN(n int, b []byte) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
