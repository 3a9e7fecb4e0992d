package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversationID filters child records by their owning conversation.
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// ByFileName filters file chunks by their source file.
type ByFileName struct {
	FileName string
}

func (s ByFileName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_name = ?", s.FileName)
}
