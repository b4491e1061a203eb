package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-thinkspace-be/internal/config"
	"ai-thinkspace-be/internal/controller"
	"ai-thinkspace-be/internal/handler"
	"ai-thinkspace-be/internal/pkg/autosave"
	"ai-thinkspace-be/internal/pkg/logger"
	"ai-thinkspace-be/internal/repository/memory"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"
	"ai-thinkspace-be/internal/service"
	"ai-thinkspace-be/internal/websocket"
	"ai-thinkspace-be/pkg/events"
	"ai-thinkspace-be/pkg/generation/httpapi"

	pktNats "ai-thinkspace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WorkspaceController  controller.IWorkspaceController
	SessionController    controller.ISessionController
	GenerationController controller.IGenerationController
	SelectionController  controller.ISelectionController
	ToolkitController    controller.IToolkitController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	NoticeService   *service.NoticeService

	// Autosave (Exposed so shutdown can flush pending writes)
	Coalescer *autosave.Coalescer

	// WebSockets & Notices
	NoticeHandler *handler.NoticeHandler
	WebSocketHub  *websocket.Hub
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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notices.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Generation provider
	provider := httpapi.NewHTTPProvider(
		cfg.Generation.Endpoint,
		cfg.Generation.APIKey,
		cfg.Generation.Model,
		cfg.Generation.Timeout,
	)
	log.Printf("[INFO] Using generation endpoint: %s (model %s)", cfg.Generation.Endpoint, cfg.Generation.Model)

	inflightRepo := memory.NewInflightRepository()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.RevisionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.RevisionTopic,
		uowFactory,
	)

	selectionService := service.NewSelectionService(rdb)
	workspaceService := service.NewWorkspaceService(uowFactory, selectionService, natsPub)
	sessionService := service.NewSessionService(uowFactory, publisherService, selectionService)
	contextService := service.NewContextService(uowFactory)
	generationService := service.NewGenerationService(
		uowFactory,
		contextService,
		sessionService,
		provider,
		inflightRepo,
		natsPub,
		sysLogger,
	)

	// Autosave coalescer. Failures are surfaced as notices; the owner is
	// resolved from the session since the write path carries no user.
	coalescer := autosave.NewCoalescer(
		cfg.Autosave.DebounceInterval,
		sessionService.ApplyStepWrite,
		func(key autosave.Key, content string, writeErr error) {
			if natsPub == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			uow := uowFactory.NewUnitOfWork(ctx)
			session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: key.SessionID})
			if err != nil || session == nil {
				return
			}
			_ = natsPub.Publish(ctx, events.NewAutosaveFailed(session.UserId, key.SessionID, key.StepNumber))
		},
		sysLogger,
	)

	noticeService := service.NewNoticeService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		noticeService.Start()
	}

	// 4. Controllers
	workspaceController := controller.NewWorkspaceController(workspaceService)
	sessionController := controller.NewSessionController(sessionService, coalescer)
	generationController := controller.NewGenerationController(generationService, coalescer)
	selectionController := controller.NewSelectionController(selectionService)
	toolkitController := controller.NewToolkitController()

	noticeHandler := handler.NewNoticeHandler(wsHub, wsLogger)

	return &Container{
		WorkspaceController:  workspaceController,
		SessionController:    sessionController,
		GenerationController: generationController,
		SelectionController:  selectionController,
		ToolkitController:    toolkitController,
		ConsumerService:      consumerService,
		NoticeService:        noticeService,
		Coalescer:            coalescer,
		NoticeHandler:        noticeHandler,
		WebSocketHub:         wsHub,
	}
}
