package disclosure

import (
	"context"
	"errors"
	"fmt"

	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/pkg/disclosure/docstore"
	"invention-disclosure-be/pkg/disclosure/section"
	"invention-disclosure-be/pkg/latex"
)

// Notifier receives a one-way "document changed" signal after a successful
// edit. Implementations must not fail the edit: delivery problems are theirs
// to log.
type Notifier interface {
	DocumentUpdated(ctx context.Context, conversationId string, sec section.ID)
}

// EditResult reports what was actually changed. Section carries the canonical
// id, which may differ from what the caller asked for after normalization.
type EditResult struct {
	Section  section.ID
	Document string
}

// Editor drives a raw (section, content) instruction from the assistant
// through normalize -> sanitize -> mutate -> persist. It is the single point
// where internal failures become caller-facing results; nothing below it
// panics across this boundary.
type Editor struct {
	store    *docstore.Store
	notifier Notifier
	logger   logger.ILogger
}

func NewEditor(store *docstore.Store, notifier Notifier, log logger.ILogger) *Editor {
	return &Editor{
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

// HandleEdit applies one section edit to the conversation's document.
// Unknown sections are rejected before the document is touched. The
// read-modify-write cycle runs under the store's per-conversation lock and
// either fully lands or leaves the previous document in place.
func (e *Editor) HandleEdit(ctx context.Context, conversationId, rawSection, rawContent string) (*EditResult, error) {
	id, ok := section.Normalize(rawSection)
	if !ok {
		e.logger.Warn("Editor", "Rejected edit for unknown section", map[string]interface{}{
			"conversation_id": conversationId,
			"raw_section":     rawSection,
		})
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedSection, rawSection)
	}

	escaped := latex.Escape(rawContent)

	var updated string
	err := e.store.WithLock(conversationId, func() error {
		doc, err := e.store.Load(conversationId)
		if err != nil {
			return err
		}
		next, err := ApplyEdit(doc, id, escaped)
		if err != nil {
			return err
		}
		if err := e.store.Save(conversationId, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPlaceholderNotFound) {
			// Template/document drift: worth an operator's attention, not
			// just the caller's.
			e.logger.Warn("Editor", "Placeholder missing for recognized section", map[string]interface{}{
				"conversation_id": conversationId,
				"section":         string(id),
			})
		}
		return nil, err
	}

	e.logger.Info("Editor", "Section edit applied", map[string]interface{}{
		"conversation_id": conversationId,
		"section":         string(id),
	})

	if e.notifier != nil {
		e.notifier.DocumentUpdated(ctx, conversationId, id)
	}

	return &EditResult{Section: id, Document: updated}, nil
}
