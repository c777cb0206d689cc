// Package embedding provides text embedding with ONNX inference and caching.
package embedding

import (
	"context"
	"errors"
)

// ErrEmbeddingFailed marks failures of the underlying embedding capability
// (for example, ONNX inference errors). Callers match it with errors.Is.
var ErrEmbeddingFailed = errors.New("embedding failed")

// Embedder produces fixed-dimension vector embeddings for text. The same
// instance must be used for index build and query so that both live in the
// same vector space. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
