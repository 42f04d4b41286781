package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rescue-dispatch/internal/api/http"
	"github.com/spec-kit/rescue-dispatch/internal/api/http/handlers"
	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/commands"
	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/events"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
	"github.com/spec-kit/rescue-dispatch/internal/remote"
	"github.com/spec-kit/rescue-dispatch/internal/scanner"
	"github.com/spec-kit/rescue-dispatch/internal/service"
	"github.com/spec-kit/rescue-dispatch/internal/starsystems"
	"github.com/spec-kit/rescue-dispatch/internal/syncer"
	"github.com/spec-kit/rescue-dispatch/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	caseClient := remote.NewClient(cfg.CaseAPI, logger)
	systemsClient := starsystems.NewClient(cfg.SystemsAPI, logger)
	systems := starsystems.NewCachedLookup(systemsClient, redisClient, cfg.SystemsAPI.CacheTTL(), logger, metrics)

	rescueBoard := board.New()
	engine := syncer.New(caseClient, dispatcher, logger, metrics, cfg.Chat.DrillMode)

	rescueService := service.NewRescueService(service.RescueServiceDeps{
		Board:      rescueBoard,
		Syncer:     engine,
		Remote:     caseClient,
		Systems:    systems,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Config:     cfg,
	})

	transport := chat.NewWebhookTransport(cfg.Chat.GatewayURL, logger)
	prep := worker.NewPrepTracker(cfg.Board.PrepTimeout(), transport, logger)
	registerEventHandlers(dispatcher, rescueBoard, prep, logger)

	messageScanner := scanner.New(scanner.ScannerDeps{
		Board:     rescueBoard,
		Service:   rescueService,
		Transport: transport,
		Prep:      prep,
		Logger:    logger,
		Metrics:   metrics,
		Config:    cfg,
	})
	commandRouter := commands.NewRouter(commands.RouterDeps{
		Board:     rescueBoard,
		Service:   rescueService,
		Transport: transport,
		Prep:      prep,
		Logger:    logger,
		Config:    cfg,
	})

	if restored, err := rescueService.RestoreBoard(ctx); err != nil {
		logger.Warn("board restore failed, starting empty", zap.Error(err))
	} else if restored > 0 {
		logger.Info("restored open cases from case service", zap.Int("cases", restored))
	}

	idleSweep := worker.NewIdleSweep(rescueBoard, rescueService, cfg.Board.IdleWindow(), time.Minute, logger)
	idleSweep.Start(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 30*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redisClient, rescueBoard),
		Rescues:  handlers.NewRescuesHandler(rescueBoard, metrics),
		Messages: handlers.NewMessagesHandler(messageScanner, commandRouter),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if !engine.Drain(10 * time.Second) {
		logger.Warn("shutdown with unsynced cases still queued")
	}
	_ = app.Shutdown()
}

// registerEventHandlers wires cross-cutting reactions to case events: the
// prep reminder follows case creation, and closed cases release their
// reminder state.
func registerEventHandlers(dispatcher events.Dispatcher, rescueBoard *board.Board, prep *worker.PrepTracker, logger *zap.Logger) {
	dispatcher.Subscribe(events.EventRescueCreated, func(ctx context.Context, event events.Event) error {
		if rescue, ok := rescueBoard.FindByID(event.RescueID); ok {
			prep.Begin(rescue)
		}
		return nil
	})
	dispatcher.Subscribe(events.EventRescueStatusChanged, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.RescueStatusChangedPayload)
		if ok && payload.NewStatus == domain.RescueStatusClosed {
			prep.Stop(event.RescueID)
		}
		return nil
	})
	dispatcher.Subscribe(events.EventRescueSyncFailed, func(ctx context.Context, event events.Event) error {
		logger.Warn("case is out of sync with the case service",
			zap.Int("handle", event.Handle),
			zap.String("rescue", event.RescueID.String()))
		return nil
	})
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
