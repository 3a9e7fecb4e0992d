package disclosure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/pkg/disclosure/docstore"
	"invention-disclosure-be/pkg/disclosure/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	conversations []string
	sections      []section.ID
}

func (n *recordingNotifier) DocumentUpdated(_ context.Context, conversationId string, sec section.ID) {
	n.conversations = append(n.conversations, conversationId)
	n.sections = append(n.sections, sec)
}

func newTestEditor(t *testing.T) (*Editor, *docstore.Store, *recordingNotifier) {
	t.Helper()
	dir := t.TempDir()

	tplPath := filepath.Join(dir, "template.tex")
	require.NoError(t, os.WriteFile(tplPath, []byte(miniDoc), 0644))

	store, err := docstore.New(tplPath, tplPath, filepath.Join(dir, "documents"))
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	return NewEditor(store, notifier, logger.NewNopLogger()), store, notifier
}

func TestHandleEditAppliesAndPersists(t *testing.T) {
	editor, store, notifier := newTestEditor(t)
	require.NoError(t, store.CreateSession("conv-1"))

	res, err := editor.HandleEdit(context.Background(), "conv-1", "Título", "A & B")
	require.NoError(t, err)
	assert.Equal(t, section.Title, res.Section)

	doc, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Contains(t, doc, "% start:TITLE\nA \\& B\n% end:TITLE")

	require.Len(t, notifier.sections, 1)
	assert.Equal(t, section.Title, notifier.sections[0])
	assert.Equal(t, "conv-1", notifier.conversations[0])
}

func TestHandleEditReportsCanonicalSection(t *testing.T) {
	editor, store, _ := newTestEditor(t)
	require.NoError(t, store.CreateSession("conv-1"))

	// The assistant asked for a synonym; the result must name the id that
	// was actually written.
	res, err := editor.HandleEdit(context.Background(), "conv-1", "Objetivo", "Mejorar el proceso")
	require.NoError(t, err)
	assert.Equal(t, section.Purpose, res.Section)
}

func TestHandleEditUnknownSectionLeavesDocumentUntouched(t *testing.T) {
	editor, store, notifier := newTestEditor(t)
	require.NoError(t, store.CreateSession("conv-1"))

	before, err := store.Load("conv-1")
	require.NoError(t, err)

	_, err = editor.HandleEdit(context.Background(), "conv-1", "???", "content")
	require.ErrorIs(t, err, ErrUnrecognizedSection)

	after, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, notifier.sections)
}

func TestHandleEditPlaceholderMissingSurfaces(t *testing.T) {
	editor, store, notifier := newTestEditor(t)
	require.NoError(t, store.Save("conv-1", "stripped document"))

	_, err := editor.HandleEdit(context.Background(), "conv-1", "TITLE", "content")
	require.ErrorIs(t, err, ErrPlaceholderNotFound)

	doc, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "stripped document", doc)
	assert.Empty(t, notifier.sections)
}

func TestHandleEditOverwrite(t *testing.T) {
	editor, store, _ := newTestEditor(t)
	require.NoError(t, store.CreateSession("conv-1"))

	_, err := editor.HandleEdit(context.Background(), "conv-1", "TITLE", "A & B")
	require.NoError(t, err)
	_, err = editor.HandleEdit(context.Background(), "conv-1", "TITLE", "C % D")
	require.NoError(t, err)

	doc, err := store.Load("conv-1")
	require.NoError(t, err)
	assert.Contains(t, doc, `C \% D`)
	assert.NotContains(t, doc, `A \& B`)
}
