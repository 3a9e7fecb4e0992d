package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartConversationRequest struct {
	Title string `json:"title"`
}

type StartConversationResponse struct {
	Id       uuid.UUID `json:"id"`
	Document string    `json:"document"`
}

type SendChatRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Message        string    `json:"message" validate:"required"`
}

type EditMetaDTO struct {
	Section string `json:"section"`
	Applied bool   `json:"applied"`
}

type SendChatResponseMessage struct {
	Id        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	Role      string       `json:"role"`
	EditMeta  *EditMetaDTO `json:"edit_meta,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type SendChatResponse struct {
	ConversationId uuid.UUID                `json:"conversation_id"`
	Sent           *SendChatResponseMessage `json:"sent"`
	Reply          *SendChatResponseMessage `json:"reply"`
	Document       string                   `json:"document,omitempty"`
}

type GetHistoryResponse struct {
	Id        uuid.UUID    `json:"id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	EditMeta  *EditMetaDTO `json:"edit_meta,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type UploadFileResponse struct {
	FileName string `json:"file_name"`
	Queued   bool   `json:"queued"`
}

type SubmitDisclosureRequest struct {
	Recipient string `json:"recipient" validate:"omitempty,email"`
}

type SubmitDisclosureResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	Recipient      string    `json:"recipient"`
}

// PublishEmbedFileMessage is the payload queued when an uploaded file
// needs chunking and embedding.
type PublishEmbedFileMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"file_path"`
}
