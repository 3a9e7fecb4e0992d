package unitofwork

import (
	"context"

	"invention-disclosure-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	ConversationMessageRepository() contract.ConversationMessageRepository
	FileChunkRepository() contract.FileChunkRepository
}
