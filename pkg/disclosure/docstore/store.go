package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store owns the on-disk session documents: one UTF-8 .tex file per
// conversation, plus the immutable template they start from. No other
// component writes document bytes.
type Store struct {
	template string
	dir      string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New loads the template, trying templatePath first and fallbackPath second,
// and prepares the documents directory. A missing template is a configuration
// defect: the caller must treat the error as fatal, not per-request.
func New(templatePath, fallbackPath, dir string) (*Store, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read template %s: %w", templatePath, err)
		}
		raw, err = os.ReadFile(fallbackPath)
		if err != nil {
			return nil, fmt.Errorf("no template available (%s, fallback %s): %w", templatePath, fallbackPath, err)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create documents dir %s: %w", dir, err)
	}

	return &Store{
		template: string(raw),
		dir:      dir,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Template returns the pristine template text.
func (s *Store) Template() string {
	return s.template
}

func (s *Store) path(conversationId string) string {
	return filepath.Join(s.dir, conversationId+".tex")
}

// Load returns the current session document. When no per-conversation file
// exists yet it returns the template verbatim WITHOUT persisting it; only
// CreateSession materializes a document.
func (s *Store) Load(conversationId string) (string, error) {
	raw, err := os.ReadFile(s.path(conversationId))
	if err != nil {
		if os.IsNotExist(err) {
			return s.template, nil
		}
		return "", fmt.Errorf("load document for %s: %w", conversationId, err)
	}
	return string(raw), nil
}

// Read returns the session document and whether it exists. Unlike Load it
// does not fall back to the template; retrieval of a never-edited session is
// an empty result, not an error.
func (s *Store) Read(conversationId string) (string, bool, error) {
	raw, err := os.ReadFile(s.path(conversationId))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read document for %s: %w", conversationId, err)
	}
	return string(raw), true, nil
}

// CreateSession materializes a fresh template copy for the conversation.
// Policy: idempotent overwrite at explicit session start only. A repeated
// start resets the document; nothing else ever does.
func (s *Store) CreateSession(conversationId string) error {
	return s.Save(conversationId, s.template)
}

// Save atomically replaces the session document. The content is written to a
// temp file in the same directory and renamed over the target, so concurrent
// readers never observe a partial write.
func (s *Store) Save(conversationId, text string) error {
	tmp, err := os.CreateTemp(s.dir, conversationId+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document for %s: %w", conversationId, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document for %s: %w", conversationId, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document for %s: %w", conversationId, err)
	}

	if err := os.Rename(tmpName, s.path(conversationId)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document for %s: %w", conversationId, err)
	}
	return nil
}

// Delete removes the session document. Missing files are not an error; the
// session may have expired before any edit landed.
func (s *Store) Delete(conversationId string) error {
	if err := os.Remove(s.path(conversationId)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete document for %s: %w", conversationId, err)
	}
	return nil
}

// WithLock serializes fn against all other WithLock calls for the same
// conversation. Edits are read-modify-write cycles; without this, concurrent
// edits to one session could interleave. Different conversations proceed in
// parallel.
func (s *Store) WithLock(conversationId string, fn func() error) error {
	s.mu.Lock()
	l, ok := s.locks[conversationId]
	if !ok {
		l = &sync.Mutex{}
		s.locks[conversationId] = l
	}
	s.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn()
}
