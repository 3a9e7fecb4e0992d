package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationMessage struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content        string         `gorm:"type:text;not null"`
	Role           string         `gorm:"type:varchar(50);not null"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	EditMeta       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
