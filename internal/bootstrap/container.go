package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/config"
	"github.com/Fordjour12/monthly-zen-sub002/internal/controller"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/lock"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/memory"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/unitofwork"
	"github.com/Fordjour12/monthly-zen-sub002/internal/service"
	"github.com/Fordjour12/monthly-zen-sub002/pkg/llm/factory"
	plannerEvents "github.com/Fordjour12/monthly-zen-sub002/pkg/planner/events"

	pktNats "github.com/Fordjour12/monthly-zen-sub002/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QuotaController controller.IQuotaController
	PlanController  controller.IPlanController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IGenerationConsumerService
	SweeperService  service.ISweeperService

	// Exposed for the sweeper CLI
	DraftService service.DraftService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
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

	rolloverLocker := lock.NewRedisLocker(rdb)
	inflightRepo := memory.NewInflightRepository()
	eventPublisher := plannerEvents.NewNatsPublisher(natsPub, sysLogger)

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Planner.GenerateTopic)

	quotaService := service.NewQuotaService(uowFactory, rolloverLocker, eventPublisher, sysLogger)
	draftService := service.NewDraftService(uowFactory, eventPublisher, sysLogger)
	jobService := service.NewGenerationJobService(uowFactory)

	generationService := service.NewGenerationService(
		quotaService,
		jobService,
		publisherService,
		inflightRepo,
		sysLogger,
	)

	consumerService := service.NewGenerationConsumerService(
		pubSub,
		cfg.Planner.GenerateTopic,
		jobService,
		draftService,
		llmProvider,
		inflightRepo,
		eventPublisher,
		sysLogger,
		cfg.Planner.DraftTTLHours,
	)

	sweeperService := service.NewSweeperService(
		draftService,
		time.Duration(cfg.Planner.SweepIntervalMin)*time.Minute,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		QuotaController: controller.NewQuotaController(quotaService),
		PlanController:  controller.NewPlanController(generationService, draftService, jobService),

		ConsumerService: consumerService,
		SweeperService:  sweeperService,
		DraftService:    draftService,
	}
}
