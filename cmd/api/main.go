package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	"github.com/BruksfildServices01/braids-scheduler/internal/config"
	"github.com/BruksfildServices01/braids-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/braids-scheduler/internal/messaging"
	"github.com/BruksfildServices01/braids-scheduler/internal/retention"
	"github.com/BruksfildServices01/braids-scheduler/internal/routes"
	"github.com/BruksfildServices01/braids-scheduler/internal/slotlock"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := timezone.NewSystemClock(cfg.Timezone)

	// ======================================================
	// 🔒 LOCKS
	// ======================================================
	var (
		locker    slotlock.Locker = slotlock.NewLocal()
		storeOpts []state.Option
	)
	if cfg.LockDriver == "redis" {
		client, err := storage.OpenRedis(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to open redis lock: %v", err)
		}
		defer client.Close()
		locker = slotlock.NewRedis(client, cfg.StoragePrefix+"lock:", cfg.LockTTL)
		// other instances write to the same storage
		storeOpts = append(storeOpts, state.WithSharedLock(locker))
	}

	// ======================================================
	// 💾 STATE
	// ======================================================
	st, closeStorage, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Printf("closing storage: %v", err)
		}
	}()

	defaults := state.Empty()
	if cfg.SeedDemoData {
		tomorrow := clock.Now().AddDate(0, 0, 1).Format(timezone.DateLayout)
		defaults = state.DemoSeed(tomorrow)
	}

	store := state.NewStore(st, cfg.StoragePrefix, storeOpts...)
	if err := store.Hydrate(ctx, defaults); err != nil {
		log.Fatalf("failed to load state: %v", err)
	}

	// ======================================================
	// ✉️ MESSAGES
	// ======================================================
	tmpl := messaging.Template{SalonName: cfg.SalonName}

	var generator messaging.Generator
	if cfg.MessageServiceURL != "" {
		generator = messaging.NewHTTPGenerator(
			cfg.MessageServiceURL,
			cfg.MessageServiceKey,
			cfg.SalonName,
			&http.Client{Timeout: cfg.MessageTimeout},
		)
	}
	messages := messaging.NewResilient(generator, tmpl, cfg.MessageTimeout)

	var notifier messaging.Notifier = messaging.LogNotifier{}
	if cfg.TwilioEnabled() {
		notifier = messaging.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}
	outbox := messaging.NewOutbox(notifier, 100, 10*time.Second)
	defer outbox.Close()

	auditDispatcher := audit.NewDispatcher(audit.New(os.Stdout))
	defer auditDispatcher.Close()

	// ======================================================
	// ⏰ RETENTION
	// ======================================================
	retentionJob := retention.NewJob(store, messages, outbox, clock, cfg.RetentionDays)
	scheduler, err := retentionJob.Schedule(cfg.RetentionCron, clock.Location())
	if err != nil {
		log.Fatalf("invalid RETENTION_CRON %q: %v", cfg.RetentionCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()

	if err := routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Store:     store,
		Clock:     clock,
		Locker:    locker,
		Audit:     auditDispatcher,
		Messages:  messages,
		Outbox:    outbox,
		Retention: retentionJob,
	}); err != nil {
		log.Fatalf("failed to register routes: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
