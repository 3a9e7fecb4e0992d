package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ConversationSession is the in-memory drafting state for one open
// conversation. It exists so hot-path lookups (is this session live,
// when was it last touched) never hit the database.
type ConversationSession struct {
	ID           string
	StartedAt    time.Time
	LastActivity time.Time
}

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, expired sessions purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Create(conversationId string) *ConversationSession {
	now := time.Now()
	session := &ConversationSession{
		ID:           conversationId,
		StartedAt:    now,
		LastActivity: now,
	}
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
	return session
}

func (r *SessionRepository) Get(conversationId string) (*ConversationSession, bool) {
	if x, found := r.cache.Get(conversationId); found {
		return x.(*ConversationSession), true
	}
	return nil, false
}

// Touch refreshes activity and expiration for a live session.
func (r *SessionRepository) Touch(conversationId string) {
	if session, found := r.Get(conversationId); found {
		session.LastActivity = time.Now()
		r.cache.Set(session.ID, session, cache.DefaultExpiration)
	}
}

func (r *SessionRepository) Delete(conversationId string) {
	r.cache.Delete(conversationId)
}
