// Package vectorstore owns per-chatbot vector collections: lazy creation,
// point upserts, and filtered similarity search.
package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrDimensionMismatch means a collection already exists with a different
	// vector size than the configured embedding backend produces. Recreating
	// it would destroy indexed data, so this is fatal to the operation.
	ErrDimensionMismatch = errors.New("vectorstore: collection vector size does not match embedding dimension")

	// ErrCollectionNotFound means the tenant has no collection at all, which
	// is distinct from a collection that exists but has no matching points.
	ErrCollectionNotFound = errors.New("vectorstore: collection not found")
)

// Point is one indexed chunk: a stable id, its embedding, and a payload
// carrying the chunk text plus the tenant/source metadata used for filtering.
// Points are written during training and only ever overwritten by id.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]interface{}
}

// Hit is a search result ordered by descending cosine similarity.
type Hit struct {
	ID      string
	Score   float64
	Payload map[string]interface{}
}

type VectorStore interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// EnsureCollection creates the collection with cosine distance if absent
	// and is a no-op when it already exists with the same vector size.
	// A size conflict returns ErrDimensionMismatch.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to topK hits whose payload matches every key/value in
	// match. Zero matching points is an empty slice, not an error.
	Search(ctx context.Context, collection string, vector []float32, topK int, match map[string]interface{}) ([]Hit, error)
}

// PointID derives a deterministic UUID from the chunk's identity, so
// re-training the same source overwrites points instead of duplicating them.
func PointID(tenantKey, source string, chunkIndex int) string {
	name := fmt.Sprintf("%s/%s#%d", tenantKey, source, chunkIndex)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
