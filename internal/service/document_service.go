package service

import (
	"context"

	"invention-disclosure-be/internal/dto"
	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/internal/pkg/mailer"
	"invention-disclosure-be/internal/repository/specification"
	"invention-disclosure-be/internal/repository/unitofwork"
	"invention-disclosure-be/pkg/disclosure"
	"invention-disclosure-be/pkg/disclosure/docstore"
	"invention-disclosure-be/pkg/events"
	"invention-disclosure-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	GetDocument(ctx context.Context, conversationId uuid.UUID) (*dto.GetDocumentResponse, error)
	EditDocument(ctx context.Context, conversationId uuid.UUID, request *dto.EditDocumentRequest) (*dto.EditDocumentResponse, error)
	Submit(ctx context.Context, conversationId uuid.UUID, request *dto.SubmitDisclosureRequest) (*dto.SubmitDisclosureResponse, error)
}

type documentService struct {
	uowFactory     unitofwork.RepositoryFactory
	store          *docstore.Store
	editor         *disclosure.Editor
	emailService   mailer.IEmailService
	eventPublisher *nats.Publisher
	officeEmail    string
	logger         logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	store *docstore.Store,
	editor *disclosure.Editor,
	emailService mailer.IEmailService,
	eventPublisher *nats.Publisher,
	officeEmail string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:     uowFactory,
		store:          store,
		editor:         editor,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		officeEmail:    officeEmail,
		logger:         log,
	}
}

// GetDocument returns the current working document. A session that never
// produced a document yields an empty string, not an error.
func (ds *documentService) GetDocument(ctx context.Context, conversationId uuid.UUID) (*dto.GetDocumentResponse, error) {
	document, exists, err := ds.store.Read(conversationId.String())
	if err != nil {
		return nil, err
	}
	if !exists {
		document = ""
	}

	return &dto.GetDocumentResponse{
		ConversationId: conversationId,
		Document:       document,
	}, nil
}

// EditDocument applies a direct section edit, bypassing the assistant.
func (ds *documentService) EditDocument(ctx context.Context, conversationId uuid.UUID, request *dto.EditDocumentRequest) (*dto.EditDocumentResponse, error) {
	result, err := ds.editor.HandleEdit(ctx, conversationId.String(), request.Section, request.Content)
	if err != nil {
		return nil, err
	}

	return &dto.EditDocumentResponse{
		ConversationId: conversationId,
		Section:        string(result.Section),
		Document:       result.Document,
	}, nil
}

// Submit mails the finished document to the technology transfer office.
func (ds *documentService) Submit(ctx context.Context, conversationId uuid.UUID, request *dto.SubmitDisclosureRequest) (*dto.SubmitDisclosureResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	recipient := request.Recipient
	if recipient == "" {
		recipient = ds.officeEmail
	}
	if recipient == "" {
		return nil, ErrNoRecipient
	}

	// A never-edited session still submits the pristine template.
	document, err := ds.store.Load(conversationId.String())
	if err != nil {
		return nil, err
	}

	if err := ds.emailService.SendDisclosure(recipient, conversationId.String(), conversation.Title, document); err != nil {
		return nil, err
	}

	if ds.eventPublisher != nil {
		evt := events.NewDisclosureSubmitted(conversationId.String(), recipient)
		if err := ds.eventPublisher.Publish(ctx, evt); err != nil {
			ds.logger.Warn("DocumentService", "Failed to publish DISCLOSURE_SUBMITTED event", map[string]interface{}{
				"conversation_id": conversationId.String(),
				"error":           err.Error(),
			})
		}
	}

	ds.logger.Info("DocumentService", "Disclosure submitted", map[string]interface{}{
		"conversation_id": conversationId.String(),
		"recipient":       recipient,
	})

	return &dto.SubmitDisclosureResponse{
		ConversationId: conversationId,
		Recipient:      recipient,
	}, nil
}
