package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"invention-disclosure-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DocumentUpdate is pushed to every client watching a conversation when a
// section of its document changes.
type DocumentUpdate struct {
	ConversationId string `json:"conversation_id"`
	Section        string `json:"section"`
}

type Hub struct {
	// Registered clients map: ConversationID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ConversationID] = append(h.clients[client.ConversationID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"conversation_id": client.ConversationID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ConversationID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ConversationID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ConversationID]) == 0 {
					delete(h.clients, client.ConversationID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"conversation_id": client.ConversationID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Push delivers a document update to every client watching the conversation,
// locally and on other instances via Redis.
func (h *Hub) Push(conversationID uuid.UUID, update DocumentUpdate) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "document_updated",
		"data": update,
	})

	// Sends happen under the read lock so a Send channel can never be
	// closed mid-delivery; the unregister handler in Run is the only
	// closer and needs the write lock first.
	h.mu.RLock()
	var stalled []*Client
	for _, client := range h.clients[conversationID] {
		select {
		case client.Send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"conversation_id": conversationID})
		h.unregister <- client
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_conversation_id": conversationID.String(),
			"message":                data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and forwards only
	// messages for conversations it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetConversationID string          `json:"target_conversation_id"`
			Message              json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		cid, err := uuid.Parse(payload.TargetConversationID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		var stalled []*Client
		for _, client := range h.clients[cid] {
			select {
			case client.Send <- payload.Message:
			default:
				stalled = append(stalled, client)
			}
		}
		h.mu.RUnlock()

		for _, client := range stalled {
			h.unregister <- client
		}
	}
}
