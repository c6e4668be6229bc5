// Package embedding turns batches of text chunks into fixed-length vectors.
package embedding

import (
	"context"
	"errors"
)

// ErrBackend wraps transport failures and malformed responses from an
// embedding backend. A failed call returns no partial results.
var ErrBackend = errors.New("embedding: backend error")

// EmbeddingProvider is the batch embedding contract. Output vectors are
// index-aligned with the input: vector i embeds texts[i]. Callers are
// responsible for batching large inputs.
type EmbeddingProvider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension reports the backend's declared output size. Every vector in a
	// chatbot's collection must share it; a mismatch is a configuration error,
	// not something to recover from at runtime.
	Dimension() int
}
