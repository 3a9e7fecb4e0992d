package dto

import "github.com/google/uuid"

type GetDocumentResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	Document       string    `json:"document"`
}

type EditDocumentRequest struct {
	Section string `json:"section" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type EditDocumentResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	Section        string    `json:"section"`
	Document       string    `json:"document"`
}
