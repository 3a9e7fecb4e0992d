package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"invention-disclosure-be/internal/dto"
	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/repository/specification"
	"invention-disclosure-be/internal/repository/unitofwork"
	"invention-disclosure-be/pkg/embedding"
	"invention-disclosure-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedFileMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing uploaded file %s for conversation %s", payload.FileName, payload.ConversationId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		log.Printf("[ERROR] Failed to get conversation %s: %v", payload.ConversationId, err)
		msg.Nack()
		return
	}
	if conversation == nil {
		log.Printf("[ERROR] Conversation not found: %s", payload.ConversationId)
		msg.Ack() // Conversation deleted? Ack.
		return
	}

	raw, err := os.ReadFile(payload.FilePath)
	if err != nil {
		log.Printf("[ERROR] Failed to read uploaded file %s: %v", payload.FilePath, err)
		msg.Ack() // File gone, retrying will not help
		return
	}
	content := string(raw)

	log.Printf("[INFO] Generating embeddings for %s (content length: %d)", payload.FileName, len(content))

	chunks := utils.SplitText(content, 1000, 100)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newChunks []*entity.FileChunk

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of %s: %v", i, payload.FileName, err)
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.FileChunk{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			FileName:       payload.FileName,
			ConversationId: payload.ConversationId,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-uploading the same file replaces its chunks.
	old, err := uow.FileChunkRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: payload.ConversationId},
		specification.ByFileName{FileName: payload.FileName},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to list old chunks: %v", err)
		msg.Nack()
		return
	}
	for _, c := range old {
		if err := uow.FileChunkRepository().Delete(ctx, c.Id); err != nil {
			log.Printf("[ERROR] Failed to delete old chunk %s: %v", c.Id, err)
			msg.Nack()
			return
		}
	}

	if len(newChunks) > 0 {
		if err := uow.FileChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			log.Printf("[ERROR] Failed to create bulk chunks: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] File processed: %d chunks for %s", len(newChunks), payload.FileName)
	msg.Ack()
}
