package mapper

import (
	"time"

	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type FileChunkMapper struct{}

func NewFileChunkMapper() *FileChunkMapper {
	return &FileChunkMapper{}
}

func (m *FileChunkMapper) ToEntity(c *model.FileChunk) *entity.FileChunk {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.FileChunk{
		Id:             c.Id,
		Document:       c.Document,
		EmbeddingValue: c.EmbeddingValue.Slice(),
		FileName:       c.FileName,
		ConversationId: c.ConversationId,
		ChunkIndex:     c.ChunkIndex,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      c.DeletedAt.Valid,
	}
}

func (m *FileChunkMapper) ToModel(c *entity.FileChunk) *model.FileChunk {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.FileChunk{
		Id:             c.Id,
		Document:       c.Document,
		EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
		FileName:       c.FileName,
		ConversationId: c.ConversationId,
		ChunkIndex:     c.ChunkIndex,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *FileChunkMapper) ToEntities(chunks []*model.FileChunk) []*entity.FileChunk {
	entities := make([]*entity.FileChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *FileChunkMapper) ToModels(chunks []*entity.FileChunk) []*model.FileChunk {
	models := make([]*model.FileChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
