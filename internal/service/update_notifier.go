package service

import (
	"context"

	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/internal/websocket"
	"invention-disclosure-be/pkg/disclosure/section"
	"invention-disclosure-be/pkg/events"
	"invention-disclosure-be/pkg/nats"

	"github.com/google/uuid"
)

// UpdateNotifier fans out "document changed" signals to the event bus and to
// websocket watchers. Delivery failures are logged, never surfaced: the edit
// already landed.
type UpdateNotifier struct {
	eventPublisher *nats.Publisher
	hub            *websocket.Hub
	logger         logger.ILogger
}

func NewUpdateNotifier(eventPublisher *nats.Publisher, hub *websocket.Hub, log logger.ILogger) *UpdateNotifier {
	return &UpdateNotifier{
		eventPublisher: eventPublisher,
		hub:            hub,
		logger:         log,
	}
}

func (n *UpdateNotifier) DocumentUpdated(ctx context.Context, conversationId string, sec section.ID) {
	if n.eventPublisher != nil {
		evt := events.NewDocumentUpdated(conversationId, string(sec))
		if err := n.eventPublisher.Publish(ctx, evt); err != nil {
			n.logger.Warn("UpdateNotifier", "Failed to publish DOCUMENT_UPDATED event", map[string]interface{}{
				"conversation_id": conversationId,
				"error":           err.Error(),
			})
		}
	}

	if n.hub != nil {
		if cid, err := uuid.Parse(conversationId); err == nil {
			n.hub.Push(cid, websocket.DocumentUpdate{
				ConversationId: conversationId,
				Section:        string(sec),
			})
		}
	}
}
