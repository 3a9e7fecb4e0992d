package handler

import (
	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// DocumentUpdatesHandler upgrades clients onto the live document-update
// stream for one conversation.
type DocumentUpdatesHandler struct {
	hub    *websocket.Hub
	logger logger.ILogger
}

func NewDocumentUpdatesHandler(hub *websocket.Hub, log logger.ILogger) *DocumentUpdatesHandler {
	return &DocumentUpdatesHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *DocumentUpdatesHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/:id", h.upgradeRequired, fiberws.New(h.serveWs))
}

func (h *DocumentUpdatesHandler) upgradeRequired(c *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}
	return c.Next()
}

func (h *DocumentUpdatesHandler) serveWs(c *fiberws.Conn) {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Close()
		return
	}

	h.logger.Info("DocumentUpdatesHandler", "WS client connected", map[string]interface{}{
		"conversation_id": conversationID.String(),
	})

	websocket.ServeWs(h.hub, c, conversationID)
}
