package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewConversationStarted reports that a drafting session was opened and its
// working document initialized.
func NewConversationStarted(conversationId string) Event {
	return BaseEvent{
		Type: "CONVERSATION_STARTED",
		Data: map[string]interface{}{
			"conversation_id": conversationId,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentUpdated reports that a section of a working document was rewritten.
func NewDocumentUpdated(conversationId string, section string) Event {
	return BaseEvent{
		Type: "DOCUMENT_UPDATED",
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"section":         section,
		},
		OccurredAt: time.Now(),
	}
}

// NewDisclosureSubmitted reports that a finished document was mailed to the
// technology transfer office.
func NewDisclosureSubmitted(conversationId string, recipient string) Event {
	return BaseEvent{
		Type: "DISCLOSURE_SUBMITTED",
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"recipient":       recipient,
		},
		OccurredAt: time.Now(),
	}
}
