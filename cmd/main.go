package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"visitor-insights-service/internal/chat"
	"visitor-insights-service/internal/config"
	"visitor-insights-service/internal/controller"
	"visitor-insights-service/internal/db"
	httpserver "visitor-insights-service/internal/http"
	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
	"visitor-insights-service/internal/scheduler"
	"visitor-insights-service/internal/service"
	"visitor-insights-service/internal/session"
	syncpkg "visitor-insights-service/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	eventRepo := repository.NewEventRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	enquiryRepo := repository.NewEnquiryRepository(pool)
	suggestionRepo := repository.NewSuggestionRepository(pool)

	sessions := session.NewRegistry(cfg.SessionTimeout)
	worker := service.NewBatchEventWorker(eventRepo, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)
	tracker := service.NewAnalytics(sessions, worker, cfg.Production())
	dispatcher := service.NewDispatcher(notificationRepo, tracker, cfg.NotifyRecipient)
	reporter := service.NewReporter(eventRepo, dispatcher)
	optimizer := service.NewContentOptimizer(eventRepo, suggestionRepo, tracker, cfg.OptimizerLookback, cfg.OptimizerInterval)
	leads := service.NewLeadService(bookingRepo, enquiryRepo, dispatcher, tracker)

	coordinator := syncpkg.NewCoordinator(tracker, reporter, optimizer, cfg.ReportDebounce)
	listener := syncpkg.NewListener(pool, coordinator)
	go listener.Run(ctx)

	reportScheduler := scheduler.NewReportScheduler(coordinator)
	if cfg.Production() {
		reportScheduler.Start()
		optimizer.Start()
	} else {
		// Dev builds log state transitions instead of running schedulers.
		coordinator.Subscribe(func(state model.SyncState) {
			log.Printf("[INFO] sync state: %s (last sync %s)", state.Status, state.LastSync.Format("15:04:05"))
		})
	}

	responder := chat.NewResponder(enquiryRepo, dispatcher, tracker)

	eventController := controller.NewEventController(tracker)
	leadController := controller.NewLeadController(leads)
	chatController := controller.NewChatController(responder)
	syncController := controller.NewSyncController(coordinator)

	server := httpserver.NewServer(cfg, eventController, leadController, chatController, syncController)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", cfg.HTTPPort)
		errCh <- server.Listen(cfg.HTTPPort)
	}()

	select {
	case <-ctx.Done():
		log.Println("shutting down")
	case err := <-errCh:
		log.Printf("server stopped: %v", err)
	}

	if err := server.Shutdown(); err != nil {
		log.Printf("[ERROR] server shutdown: %v", err)
	}
	reportScheduler.Stop()
	optimizer.Stop()
	worker.Shutdown()
}
