package implementation

import (
	"context"
	"errors"

	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/mapper"
	"invention-disclosure-be/internal/model"
	"invention-disclosure-be/internal/repository/contract"
	"invention-disclosure-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type FileChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileChunkMapper
}

func NewFileChunkRepository(db *gorm.DB) contract.FileChunkRepository {
	return &FileChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileChunkMapper(),
	}
}

func (r *FileChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FileChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.FileChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.FileChunk) error {
	models := make([]*model.FileChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *FileChunkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FileChunk{}, id).Error
}

func (r *FileChunkRepositoryImpl) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("conversation_id = ?", conversationId).Delete(&model.FileChunk{}).Error
}

func (r *FileChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileChunk, error) {
	var m model.FileChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileChunk, error) {
	var models []*model.FileChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.FileChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *FileChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.FileChunk{}).Count(&count).Error
	return count, err
}

func (r *FileChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, conversationId uuid.UUID, threshold float64) ([]*contract.ScoredFileChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) recovers the similarity.
	type result struct {
		model.FileChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("file_chunks").
		Select("file_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("conversation_id = ?", conversationId).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scoredChunks := make([]*contract.ScoredFileChunk, len(results))
	for i, res := range results {
		chunk := r.mapper.ToEntity(&res.FileChunk)
		scoredChunks[i] = &contract.ScoredFileChunk{
			Chunk:      chunk,
			Similarity: res.Similarity,
		}
	}
	return scoredChunks, nil
}
