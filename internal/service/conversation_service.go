package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"invention-disclosure-be/internal/constant"
	"invention-disclosure-be/internal/dto"
	"invention-disclosure-be/internal/entity"
	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/internal/repository/memory"
	"invention-disclosure-be/internal/repository/specification"
	"invention-disclosure-be/internal/repository/unitofwork"
	"invention-disclosure-be/pkg/assistant"
	"invention-disclosure-be/pkg/disclosure"
	"invention-disclosure-be/pkg/disclosure/docstore"
	"invention-disclosure-be/pkg/disclosure/section"
	"invention-disclosure-be/pkg/embedding"
	"invention-disclosure-be/pkg/events"
	"invention-disclosure-be/pkg/llm"
	"invention-disclosure-be/pkg/nats"

	"github.com/google/uuid"
)

// Retrieval settings for grounding replies in uploaded material.
const (
	retrievalLimit     = 4
	retrievalThreshold = 0.3
)

var allowedUploadExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".tex": true,
}

type IConversationService interface {
	Start(ctx context.Context, request *dto.StartConversationRequest) (*dto.StartConversationResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, conversationId uuid.UUID) ([]*dto.GetHistoryResponse, error)
	QueueFileEmbedding(ctx context.Context, conversationId uuid.UUID, fileName string, filePath string) (*dto.UploadFileResponse, error)
	End(ctx context.Context, conversationId uuid.UUID) error
}

type conversationService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	sessionRepo       *memory.SessionRepository
	publisherService  IPublisherService
	editor            *disclosure.Editor
	store             *docstore.Store
	eventPublisher    *nats.Publisher
	logger            logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	sessionRepo *memory.SessionRepository,
	publisherService IPublisherService,
	editor *disclosure.Editor,
	store *docstore.Store,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		sessionRepo:       sessionRepo,
		publisherService:  publisherService,
		editor:            editor,
		store:             store,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

// Start opens a drafting session: a conversation row, a greeting turn and a
// fresh working document reset to the template.
func (cs *conversationService) Start(ctx context.Context, request *dto.StartConversationRequest) (*dto.StartConversationResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	title := request.Title
	if title == "" {
		title = "Divulgación sin título"
	}

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     title,
		CreatedAt: now,
	}

	greeting := entity.ConversationMessage{
		Id:             uuid.New(),
		Content:        constant.ConversationGreeting,
		Role:           constant.ChatMessageRoleModel,
		ConversationId: conversation.Id,
		CreatedAt:      now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}

	// An explicit start always resets the working document, even if a file
	// for this id already exists.
	if err := cs.store.CreateSession(conversation.Id.String()); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.sessionRepo.Create(conversation.Id.String())

	if cs.eventPublisher != nil {
		evt := events.NewConversationStarted(conversation.Id.String())
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ConversationService", "Failed to publish CONVERSATION_STARTED event", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	cs.logger.Info("ConversationService", "Conversation started", map[string]interface{}{
		"conversation_id": conversation.Id.String(),
	})

	return &dto.StartConversationResponse{
		Id:       conversation.Id,
		Document: cs.store.Template(),
	}, nil
}

// SendChat runs one assistant turn: persist the user message, ground the
// reply in uploaded material, let the model answer, and apply any document
// edit the model requested.
func (cs *conversationService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: request.ConversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	history, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: request.ConversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	userMessage := entity.ConversationMessage{
		Id:             uuid.New(),
		Content:        request.Message,
		Role:           constant.ChatMessageRoleUser,
		ConversationId: request.ConversationId,
		CreatedAt:      now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	contextText := cs.retrieveContext(ctx, uow, request.ConversationId, request.Message)

	reply, err := cs.llmProvider.Chat(ctx, cs.buildPrompt(contextText, history, request.Message))
	if err != nil {
		return nil, err
	}

	replyContent := reply
	var editMeta *entity.EditMeta
	var updatedDocument string

	if action, ok := assistant.ParseAction(reply); ok {
		replyContent, editMeta, updatedDocument = cs.applyAction(ctx, request.ConversationId, action)
	}

	modelMessage := entity.ConversationMessage{
		Id:             uuid.New(),
		Content:        replyContent,
		Role:           constant.ChatMessageRoleModel,
		ConversationId: request.ConversationId,
		EditMeta:       editMeta,
		CreatedAt:      time.Now(),
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &modelMessage); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.sessionRepo.Touch(request.ConversationId.String())

	return &dto.SendChatResponse{
		ConversationId: request.ConversationId,
		Sent:           toResponseMessage(&userMessage),
		Reply:          toResponseMessage(&modelMessage),
		Document:       updatedDocument,
	}, nil
}

// applyAction executes a modify_document instruction and renders the
// user-facing confirmation or rejection.
func (cs *conversationService) applyAction(ctx context.Context, conversationId uuid.UUID, action *assistant.Action) (string, *entity.EditMeta, string) {
	result, err := cs.editor.HandleEdit(ctx, conversationId.String(), action.Section, action.Content)
	if err != nil {
		switch {
		case errors.Is(err, disclosure.ErrUnrecognizedSection):
			return fmt.Sprintf(constant.EditUnknownSection, action.Section, sectionNames()),
				&entity.EditMeta{Section: action.Section, Applied: false}, ""
		case errors.Is(err, disclosure.ErrPlaceholderNotFound):
			return fmt.Sprintf(constant.EditPlaceholderBroken, action.Section),
				&entity.EditMeta{Section: action.Section, Applied: false}, ""
		default:
			cs.logger.Error("ConversationService", "Document edit failed", map[string]interface{}{
				"conversation_id": conversationId.String(),
				"section":         action.Section,
				"error":           err.Error(),
			})
			return fmt.Sprintf(constant.EditPlaceholderBroken, action.Section),
				&entity.EditMeta{Section: action.Section, Applied: false}, ""
		}
	}

	return fmt.Sprintf(constant.EditAppliedReply, string(result.Section)),
		&entity.EditMeta{Section: string(result.Section), Applied: true},
		result.Document
}

// retrieveContext pulls the closest uploaded chunks for this conversation.
// Retrieval failures degrade to an ungrounded reply rather than failing the
// turn.
func (cs *conversationService) retrieveContext(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, query string) string {
	res, err := cs.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		cs.logger.Warn("ConversationService", "Query embedding failed", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
		return ""
	}

	scored, err := uow.FileChunkRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, retrievalLimit, conversationId, retrievalThreshold)
	if err != nil {
		cs.logger.Warn("ConversationService", "Chunk retrieval failed", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
		return ""
	}

	if len(scored) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, sc := range scored {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[%s]\n%s", sc.Chunk.FileName, sc.Chunk.Document))
	}
	return sb.String()
}

func (cs *conversationService) buildPrompt(contextText string, history []*entity.ConversationMessage, userMessage string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: assistant.BuildSystemPrompt(contextText),
	})
	for _, msg := range history {
		messages = append(messages, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: userMessage,
	})
	return messages
}

func (cs *conversationService) GetHistory(ctx context.Context, conversationId uuid.UUID) ([]*dto.GetHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, &dto.GetHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			EditMeta:  toEditMetaDTO(msg.EditMeta),
			CreatedAt: msg.CreatedAt,
		})
	}

	return resp, nil
}

// QueueFileEmbedding validates an uploaded file and hands it to the ingest
// worker for chunking and embedding.
func (cs *conversationService) QueueFileEmbedding(ctx context.Context, conversationId uuid.UUID, fileName string, filePath string) (*dto.UploadFileResponse, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedUploadExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	payload := dto.PublishEmbedFileMessage{
		ConversationId: conversationId,
		FileName:       fileName,
		FilePath:       filePath,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := cs.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	cs.sessionRepo.Touch(conversationId.String())

	return &dto.UploadFileResponse{
		FileName: fileName,
		Queued:   true,
	}, nil
}

// End closes a session: the conversation and its children are soft deleted,
// the cached session and the working document are discarded.
func (cs *conversationService) End(ctx context.Context, conversationId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationMessageRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.FileChunkRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.sessionRepo.Delete(conversationId.String())

	if err := cs.store.Delete(conversationId.String()); err != nil {
		cs.logger.Warn("ConversationService", "Failed to remove working document", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
	}

	return nil
}

func toResponseMessage(msg *entity.ConversationMessage) *dto.SendChatResponseMessage {
	return &dto.SendChatResponseMessage{
		Id:        msg.Id,
		Content:   msg.Content,
		Role:      msg.Role,
		EditMeta:  toEditMetaDTO(msg.EditMeta),
		CreatedAt: msg.CreatedAt,
	}
}

func toEditMetaDTO(meta *entity.EditMeta) *dto.EditMetaDTO {
	if meta == nil {
		return nil
	}
	return &dto.EditMetaDTO{
		Section: meta.Section,
		Applied: meta.Applied,
	}
}

func sectionNames() string {
	ids := section.All()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
