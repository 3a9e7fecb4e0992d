package bootstrap

import (
	"context"
	"log"
	"os"

	"invention-disclosure-be/internal/config"
	"invention-disclosure-be/internal/controller"
	"invention-disclosure-be/internal/handler"
	"invention-disclosure-be/internal/pkg/logger"
	"invention-disclosure-be/internal/pkg/mailer"
	"invention-disclosure-be/internal/repository/memory"
	"invention-disclosure-be/internal/repository/unitofwork"
	"invention-disclosure-be/internal/service"
	"invention-disclosure-be/internal/websocket"
	"invention-disclosure-be/pkg/disclosure"
	"invention-disclosure-be/pkg/disclosure/docstore"
	"invention-disclosure-be/pkg/embedding"
	"invention-disclosure-be/pkg/llm/factory"

	pktNats "invention-disclosure-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	DocumentController     controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	DocumentUpdatesHandler *handler.DocumentUpdatesHandler
	WebSocketHub           *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Document Store
	if err := os.MkdirAll(cfg.Disclosure.UploadsDir, 0755); err != nil {
		log.Fatalf("[FATAL] Failed to create uploads dir: %v", err)
	}
	docStore, err := docstore.New(
		cfg.Disclosure.TemplatePath,
		cfg.Disclosure.FallbackTemplatePath,
		cfg.Disclosure.DocumentsDir,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize document store: %v", err)
	}
	if err := disclosure.VerifyTemplate(docStore.Template()); err != nil {
		log.Fatalf("[FATAL] Document template is invalid: %v", err)
	}

	// 4. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 6. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/document_updates.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 7. Services
	updateNotifier := service.NewUpdateNotifier(natsPub, wsHub, sysLogger)
	editor := disclosure.NewEditor(docStore, updateNotifier, sysLogger)

	publisherService := service.NewPublisherService(cfg.Keys.EmbedFileTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedFileTopic,
		uowFactory,
		embeddingProvider,
	)

	conversationService := service.NewConversationService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		sessionRepo,
		publisherService,
		editor,
		docStore,
		natsPub,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		docStore,
		editor,
		emailService,
		natsPub,
		cfg.Disclosure.OfficeEmail,
		sysLogger,
	)

	// 8. Controllers & Handlers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService, documentService, cfg.Disclosure.UploadsDir),
		DocumentController:     controller.NewDocumentController(documentService),
		DocumentUpdatesHandler: handler.NewDocumentUpdatesHandler(wsHub, wsLogger),
		ConsumerService:        consumerService,
		WebSocketHub:           wsHub,
	}
}
