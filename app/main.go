package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inboxfolio/inboxfolio/app/api"
	"github.com/inboxfolio/inboxfolio/app/cfg"
	"github.com/inboxfolio/inboxfolio/app/database"
	"github.com/inboxfolio/inboxfolio/app/email"
	"github.com/inboxfolio/inboxfolio/app/seed"
	"github.com/inboxfolio/inboxfolio/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting Inboxfolio server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	emailRepo := database.NewEmailRepository(db)
	ingestor := email.NewIngestor(emailRepo)

	taskScheduler := tasks.NewScheduler()
	taskScheduler.Start()
	defer taskScheduler.Stop()

	if err := seedIfEmpty(appCfg.SeedsFile, emailRepo, ingestor, taskScheduler); err != nil {
		slog.Warn("Seeding skipped", "error", err)
	}

	handler := api.NewHandler(emailRepo, ingestor)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Task scheduler is stopped via defer
	slog.Info("Inboxfolio server shutdown complete")
}

// seedIfEmpty enqueues one ingestion task per sample email, but only when
// the store holds no records at all, mirroring a first boot.
func seedIfEmpty(path string, repo database.EmailRepository, ingestor *email.Ingestor, scheduler tasks.TaskSchedulerInterface) error {
	count, err := repo.GetEmailCount()
	if err != nil {
		return fmt.Errorf("failed to check email count: %w", err)
	}
	if count > 0 {
		return nil
	}

	payloads, err := seed.Load(path)
	if err != nil {
		return err
	}
	if len(payloads) == 0 {
		return nil
	}

	slog.Info("Empty database, seeding sample emails", "count", len(payloads))
	for _, payload := range payloads {
		if err := scheduler.EnqueueTask(tasks.NewSeedEmailTask(payload, ingestor)); err != nil {
			return fmt.Errorf("failed to enqueue seed task: %w", err)
		}
	}

	return nil
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
