// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embeddingtest provides a deterministic embedding.Provider for tests.
package embeddingtest

import (
	"context"
	"hash/fnv"
	"strings"
	"sync/atomic"
)

// DefaultDim is the vector length produced by New(0).
const DefaultDim = 64

// Fake hashes each lower-cased word into a bucket and counts occurrences,
// so identical texts map to identical vectors and texts sharing vocabulary
// point in similar directions. Safe for concurrent use.
type Fake struct {
	dim   int
	calls atomic.Int64

	// Err, when set, is returned by every Embed call.
	Err error
}

// New returns a Fake producing dim-length vectors.
func New(dim int) *Fake {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Fake{dim: dim}
}

// Embed returns one bag-of-words vector per text.
func (f *Fake) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vector(text)
	}
	return out, nil
}

// Calls reports how many times Embed has been invoked.
func (f *Fake) Calls() int {
	return int(f.calls.Load())
}

func (f *Fake) vector(text string) []float32 {
	v := make([]float32, f.dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(w))
		v[h.Sum32()%uint32(f.dim)]++
	}
	return v
}
