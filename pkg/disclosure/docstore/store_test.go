package docstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = "\\documentclass{article}\n<<TITLE>>\n<<PURPOSE>>\n"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()

	tplPath := filepath.Join(dir, "template.tex")
	require.NoError(t, os.WriteFile(tplPath, []byte(testTemplate), 0644))

	s, err := New(tplPath, filepath.Join(dir, "missing-fallback.tex"), filepath.Join(dir, "documents"))
	require.NoError(t, err)
	return s
}

func TestNewMissingTemplateIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := New(filepath.Join(dir, "a.tex"), filepath.Join(dir, "b.tex"), dir)
	assert.Error(t, err)
}

func TestNewUsesFallbackTemplate(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "fallback.tex")
	require.NoError(t, os.WriteFile(fallback, []byte(testTemplate), 0644))

	s, err := New(filepath.Join(dir, "missing.tex"), fallback, filepath.Join(dir, "documents"))
	require.NoError(t, err)
	assert.Equal(t, testTemplate, s.Template())
}

func TestLoadFallsBackToTemplateWithoutPersisting(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, testTemplate, doc)

	// The fallback must not have materialized a file.
	_, exists, err := s.Read("conv-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateSessionThenSave(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateSession("conv-1"))
	doc, exists, err := s.Read("conv-1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, testTemplate, doc)

	require.NoError(t, s.Save("conv-1", "edited"))
	doc, err = s.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "edited", doc)

	// Explicit restart resets the document (documented policy).
	require.NoError(t, s.CreateSession("conv-1"))
	doc, err = s.Load("conv-1")
	require.NoError(t, err)
	assert.Equal(t, testTemplate, doc)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateSession("conv-1"))
	require.NoError(t, s.Delete("conv-1"))
	require.NoError(t, s.Delete("conv-1"))

	_, exists, err := s.Read("conv-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("conv-1", "content"))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "conv-1.tex", entries[0].Name())
}

func TestWithLockSerializesPerConversation(t *testing.T) {
	s := newTestStore(t)

	// 50 concurrent read-modify-write cycles; with per-conversation locking
	// every appended marker survives.
	require.NoError(t, s.Save("conv-1", ""))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithLock("conv-1", func() error {
				doc, err := s.Load("conv-1")
				if err != nil {
					return err
				}
				return s.Save("conv-1", doc+"x")
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	doc, err := s.Load("conv-1")
	require.NoError(t, err)
	assert.Len(t, doc, 50)
}
