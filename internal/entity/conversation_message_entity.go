package entity

import (
	"time"

	"github.com/google/uuid"
)

// EditMeta records a document mutation that a chat turn produced.
type EditMeta struct {
	Section string `json:"section"`
	Applied bool   `json:"applied"`
}

type ConversationMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content        string
	Role           string
	ConversationId uuid.UUID `gorm:"type:uuid;index"`
	EditMeta       *EditMeta
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
