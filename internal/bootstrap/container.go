package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/controller"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/implementation"
	"ai-docchat-be/internal/repository/memory"
	redisrepo "ai-docchat-be/internal/repository/redis"
	"ai-docchat-be/internal/service"
	"ai-docchat-be/pkg/contentstore"
	"ai-docchat-be/pkg/extract"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/factory"
	pktNats "ai-docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour

	// Reference ledger: redis when available, in-process otherwise.
	var referenceRepo contract.ReferenceRepository
	if cfg.Session.Store == "memory" {
		referenceRepo = memory.NewReferenceRepository(sessionTTL)
		log.Printf("[INFO] Using Reference Store: MEMORY")
	} else {
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
		referenceRepo = redisrepo.NewReferenceRepository(rdb, sessionTTL)
		log.Printf("[INFO] Using Reference Store: REDIS")
	}

	// Content store over postgres
	blobRepo := implementation.NewBlobRepository(db)
	blobStore := contentstore.New(blobRepo)

	ingestionLog := implementation.NewIngestionLogRepository(db)

	// Initialize LLM Providers based on Config. Every backend with an API key
	// is constructed up front so chat requests can switch between them.
	defaultProvider, err := factory.Resolve(cfg.Llm.Provider)
	if err != nil {
		log.Fatalf("[FATAL] Failed to resolve LLM Provider: %v", err)
	}

	apiKeys := map[string]string{
		"anthropic": cfg.Llm.AnthropicAPIKey,
		"openai":    cfg.Llm.OpenAIAPIKey,
		"gemini":    cfg.Llm.GeminiAPIKey,
	}

	retryCfg := llm.RetryConfig{
		MaxAttempts: cfg.Llm.MaxAttempts,
		BaseDelay:   time.Duration(cfg.Llm.BaseDelaySeconds) * time.Second,
		Multiplier:  cfg.Llm.BackoffMultiplier,
		MaxDelay:    time.Duration(cfg.Llm.MaxDelaySeconds) * time.Second,
	}

	providers := make(map[string]llm.LLMProvider, len(apiKeys))
	for name, key := range apiKeys {
		if key == "" && name != defaultProvider {
			continue
		}
		// LLM_MODEL names a model for the default backend only. The other
		// backends keep their built-in defaults.
		model := ""
		if name == defaultProvider {
			model = cfg.Llm.Model
		}
		provider, err := factory.NewLLMProvider(name, factory.Config{
			APIKey: key,
			Model:  model,
			Retry:  retryCfg,
		})
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider %s: %v", name, err)
		}
		providers[name] = provider
	}
	log.Printf("[INFO] Default LLM Provider: %s (%s), %d configured", defaultProvider, cfg.Llm.Model, len(providers))

	// 3. Services
	documentService := service.NewDocumentService(
		extract.NewPlainTextExtractor(),
		blobStore,
		referenceRepo,
		pubSub,
		natsPub,
		sysLogger,
		cfg.Context.MaxUploadMB*1024*1024,
	)

	chatService := service.NewChatService(
		referenceRepo,
		blobStore,
		providers,
		defaultProvider,
		sysLogger,
		cfg.Context.CharBudget,
	)

	adminService := service.NewAdminService(ingestionLog, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		service.TopicDocumentIngested,
		ingestionLog,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		AdminController:    controller.NewAdminController(adminService, documentService),

		ConsumerService: consumerService,
	}
}
