package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"invention-disclosure-be/internal/dto"
	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/internal/repository/contract"
	"invention-disclosure-be/internal/repository/memory"
	"invention-disclosure-be/internal/repository/specification"
	"invention-disclosure-be/internal/repository/unitofwork"
	"invention-disclosure-be/pkg/disclosure"
	"invention-disclosure-be/pkg/disclosure/docstore"
	"invention-disclosure-be/pkg/embedding"
	"invention-disclosure-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stand-ins for the GORM-backed repositories.

type memConversationRepo struct {
	conversations map[uuid.UUID]*entity.Conversation
}

func (r *memConversationRepo) Create(_ context.Context, c *entity.Conversation) error {
	r.conversations[c.Id] = c
	return nil
}

func (r *memConversationRepo) Update(_ context.Context, c *entity.Conversation) error {
	r.conversations[c.Id] = c
	return nil
}

func (r *memConversationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.conversations, id)
	return nil
}

func (r *memConversationRepo) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	return r.Delete(ctx, id)
}

func (r *memConversationRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if c, found := r.conversations[byID.ID]; found {
				return c, nil
			}
		}
	}
	return nil, nil
}

func (r *memConversationRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Conversation, error) {
	out := make([]*entity.Conversation, 0, len(r.conversations))
	for _, c := range r.conversations {
		out = append(out, c)
	}
	return out, nil
}

func (r *memConversationRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.conversations)), nil
}

type memMessageRepo struct {
	messages []*entity.ConversationMessage
}

func (r *memMessageRepo) Create(_ context.Context, m *entity.ConversationMessage) error {
	r.messages = append(r.messages, m)
	return nil
}

func (r *memMessageRepo) Update(_ context.Context, _ *entity.ConversationMessage) error {
	return nil
}

func (r *memMessageRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (r *memMessageRepo) DeleteByConversationId(_ context.Context, conversationId uuid.UUID) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ConversationId != conversationId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *memMessageRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.ConversationMessage, error) {
	return nil, nil
}

func (r *memMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	var conversationId uuid.UUID
	for _, spec := range specs {
		if byConv, ok := spec.(specification.ByConversationID); ok {
			conversationId = byConv.ConversationID
		}
	}
	var out []*entity.ConversationMessage
	for _, m := range r.messages {
		if m.ConversationId == conversationId {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

type memChunkRepo struct{}

func (r *memChunkRepo) Create(_ context.Context, _ *entity.FileChunk) error { return nil }

func (r *memChunkRepo) CreateBulk(_ context.Context, _ []*entity.FileChunk) error { return nil }

func (r *memChunkRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *memChunkRepo) DeleteByConversationId(_ context.Context, _ uuid.UUID) error {
	return nil
}
func (r *memChunkRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.FileChunk, error) {
	return nil, nil
}
func (r *memChunkRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.FileChunk, error) {
	return nil, nil
}
func (r *memChunkRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *memChunkRepo) SearchSimilarWithScore(_ context.Context, _ []float32, _ int, _ uuid.UUID, _ float64) ([]*contract.ScoredFileChunk, error) {
	return nil, nil
}

type memUnitOfWork struct {
	convRepo  *memConversationRepo
	msgRepo   *memMessageRepo
	chunkRepo *memChunkRepo
}

func (u *memUnitOfWork) Begin(_ context.Context) error { return nil }

func (u *memUnitOfWork) Commit() error { return nil }

func (u *memUnitOfWork) Rollback() error { return nil }
func (u *memUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return u.convRepo
}
func (u *memUnitOfWork) ConversationMessageRepository() contract.ConversationMessageRepository {
	return u.msgRepo
}
func (u *memUnitOfWork) FileChunkRepository() contract.FileChunkRepository {
	return u.chunkRepo
}

type memUowFactory struct {
	uow *memUnitOfWork
}

func (f *memUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// stubLLM answers with a fixed reply after a short delay, like a real model
// round trip.
type stubLLM struct {
	reply string
	delay time.Duration
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	time.Sleep(s.delay)
	return s.reply, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type stubEmbedding struct{}

func (s *stubEmbedding) Generate(_ string, _ string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{}, nil
}

type stubPublisher struct{}

func (s *stubPublisher) Publish(_ context.Context, _ []byte) error { return nil }

func newTestConversationService(t *testing.T, llmProvider llm.LLMProvider) (IConversationService, *memUnitOfWork) {
	t.Helper()
	dir := t.TempDir()

	tplPath := filepath.Join(dir, "template.tex")
	require.NoError(t, os.WriteFile(tplPath, []byte("<<TITLE>>\n<<PURPOSE>>\n"), 0644))

	store, err := docstore.New(tplPath, tplPath, filepath.Join(dir, "documents"))
	require.NoError(t, err)

	uow := &memUnitOfWork{
		convRepo:  &memConversationRepo{conversations: map[uuid.UUID]*entity.Conversation{}},
		msgRepo:   &memMessageRepo{},
		chunkRepo: &memChunkRepo{},
	}

	svc := NewConversationService(
		&memUowFactory{uow: uow},
		llmProvider,
		&stubEmbedding{},
		memory.NewSessionRepository(),
		&stubPublisher{},
		disclosure.NewEditor(store, nil, logger.NewNopLogger()),
		store,
		nil,
		logger.NewNopLogger(),
	)
	return svc, uow
}

func TestSendChatTimestampsFollowWallClock(t *testing.T) {
	svc, uow := newTestConversationService(t, &stubLLM{
		reply: "Cuéntame más sobre tu invención.",
		delay: 5 * time.Millisecond,
	})

	started, err := svc.Start(context.Background(), &dto.StartConversationRequest{Title: "Prueba"})
	require.NoError(t, err)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		ConversationId: started.Id,
		Message:        "Es un sensor nuevo",
	})
	require.NoError(t, err)

	// The reply is stamped when it is persisted, not projected into the
	// future; history ordering by created_at still holds.
	assert.True(t, resp.Reply.CreatedAt.After(resp.Sent.CreatedAt))
	assert.False(t, resp.Reply.CreatedAt.After(time.Now()))

	messages, err := uow.msgRepo.FindAll(context.Background(),
		specification.ByConversationID{ConversationID: started.Id})
	require.NoError(t, err)
	require.Len(t, messages, 3) // greeting, user turn, model turn
	last := messages[len(messages)-1]
	assert.Equal(t, resp.Reply.Id, last.Id)
	assert.False(t, last.CreatedAt.Before(messages[len(messages)-2].CreatedAt))
}
