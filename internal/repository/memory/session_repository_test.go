package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	repo := NewSessionRepository()

	created := repo.Create("conv-1")
	assert.Equal(t, "conv-1", created.ID)

	got, found := repo.Get("conv-1")
	assert.True(t, found)
	assert.Equal(t, created.ID, got.ID)
}

func TestSessionRepositoryGetMissing(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get("unknown")
	assert.False(t, found)
}

func TestSessionRepositoryTouch(t *testing.T) {
	repo := NewSessionRepository()

	session := repo.Create("conv-2")
	before := session.LastActivity

	time.Sleep(5 * time.Millisecond)
	repo.Touch("conv-2")

	got, found := repo.Get("conv-2")
	assert.True(t, found)
	assert.True(t, got.LastActivity.After(before))
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()

	repo.Create("conv-3")
	repo.Delete("conv-3")

	_, found := repo.Get("conv-3")
	assert.False(t, found)
}
