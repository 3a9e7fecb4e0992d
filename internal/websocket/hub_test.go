package websocket

import (
	"testing"
	"time"

	"invention-disclosure-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredClient(t *testing.T, hub *Hub, conversationID uuid.UUID, buffer int) *Client {
	t.Helper()
	client := &Client{
		Hub:            hub,
		ConversationID: conversationID,
		Send:           make(chan []byte, buffer),
	}
	hub.register <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[conversationID]) == 1
	}, time.Second, 5*time.Millisecond)

	return client
}

func TestPushDeliversToWatchers(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	conversationID := uuid.New()
	client := registeredClient(t, hub, conversationID, 4)

	hub.Push(conversationID, DocumentUpdate{
		ConversationId: conversationID.String(),
		Section:        "TITLE",
	})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), `"document_updated"`)
		assert.Contains(t, string(msg), `"TITLE"`)
	case <-time.After(time.Second):
		t.Fatal("no message delivered to watching client")
	}
}

func TestPushIgnoresOtherConversations(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	client := registeredClient(t, hub, uuid.New(), 4)

	other := uuid.New()
	hub.Push(other, DocumentUpdate{ConversationId: other.String(), Section: "PURPOSE"})

	select {
	case msg := <-client.Send:
		t.Fatalf("client received update for another conversation: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPushDropsStalledClientExactlyOnce(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	conversationID := uuid.New()
	client := registeredClient(t, hub, conversationID, 1)

	// Fill the Send buffer so every delivery attempt stalls.
	client.Send <- []byte("stall")

	update := DocumentUpdate{ConversationId: conversationID.String(), Section: "TITLE"}

	// Repeated pushes against a stalled client must unregister it without
	// crashing the hub loop.
	hub.Push(conversationID, update)
	hub.Push(conversationID, update)

	assert.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, watching := hub.clients[conversationID]
		return !watching
	}, time.Second, 5*time.Millisecond)

	// The unregister handler closed Send exactly once; after draining the
	// stalled item the channel reads as closed.
	<-client.Send
	_, open := <-client.Send
	assert.False(t, open)

	// The hub loop survived and still serves other conversations.
	fresh := uuid.New()
	replacement := registeredClient(t, hub, fresh, 4)
	hub.Push(fresh, DocumentUpdate{ConversationId: fresh.String(), Section: "PURPOSE"})

	select {
	case <-replacement.Send:
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping a stalled client")
	}
}
