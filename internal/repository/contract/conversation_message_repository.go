package contract

import (
	"context"

	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationMessageRepository interface {
	Create(ctx context.Context, message *entity.ConversationMessage) error
	Update(ctx context.Context, message *entity.ConversationMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
