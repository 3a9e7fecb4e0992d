package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileChunk struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Document       string
	EmbeddingValue []float32
	FileName       string
	ConversationId uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
