package contract

import (
	"context"

	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredFileChunk wraps FileChunk with its similarity score.
type ScoredFileChunk struct {
	Chunk      *entity.FileChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type FileChunkRepository interface {
	Create(ctx context.Context, chunk *entity.FileChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.FileChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns chunks with their similarity scores,
	// scoped to one conversation and filtered by threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, conversationId uuid.UUID, threshold float64) ([]*ScoredFileChunk, error)
}
