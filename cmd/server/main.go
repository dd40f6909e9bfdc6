// Command server wires the congregation record-keeping API: PostgreSQL
// stores, the derivation engine, spreadsheet import, document rendering and
// the audit outbox drain. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secretario/internal/activity"
	"secretario/internal/attendance"
	"secretario/internal/audit"
	"secretario/internal/auth"
	"secretario/internal/derive"
	"secretario/internal/documents"
	"secretario/internal/importer"
	"secretario/internal/maintenance"
	"secretario/internal/platform/config"
	"secretario/internal/platform/httpserver"
	"secretario/internal/platform/logger"
	"secretario/internal/platform/metrics"
	"secretario/internal/platform/postgres"
	"secretario/internal/platform/redis"
	"secretario/internal/publisher"
	"secretario/internal/reference"
	"secretario/internal/report"
	"secretario/internal/settings"
	httptransport "secretario/internal/transport/http"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	cache, err := redis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	m := metrics.New()

	exceptions, err := activity.ParseExceptions(cfg.NoteSuppressions)
	if err != nil {
		return err
	}

	refStore := reference.NewPostgresStore(db)
	if err := refStore.SeedDefaults(ctx); err != nil {
		return err
	}

	publisherStore := publisher.NewPostgresStore(db)
	reportStore := report.NewPostgresStore(db)
	attendanceStore := attendance.NewPostgresStore(db)
	settingsStore := settings.NewPostgresStore(db)
	auditStore := audit.NewPostgresStore(db)
	userStore := auth.NewPostgresStore(db)

	recorder := audit.NewRecorder(auditStore, log)

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, "secretario")
	authService := auth.NewService(userStore, jwtService, log)
	if err := authService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	settingsService := settings.NewService(settingsStore, cache, config.SettingsCacheTTL, log)
	publisherService := publisher.NewService(publisherStore)
	reportService := report.NewService(reportStore, publisherStore, recorder)
	attendanceService := attendance.NewService(attendanceStore)
	deriveService := derive.NewService(reportStore, publisherStore, attendanceStore, settingsService, exceptions, m)
	importService := importer.NewService(db, publisherStore, reportStore, m, log)
	documentsService := documents.NewService(m, log)
	maintenanceService := maintenance.NewService(reportStore, attendanceStore, recorder, m, log)

	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		if err := kafka.EnsureTopic(ctx); err != nil {
			return err
		}
		worker := audit.NewWorker(auditStore, kafka, log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
	} else {
		log.Warn("kafka brokers not configured, audit events stay in the outbox")
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:    log,
		Metrics:   m,
		Validator: jwtService,
		Auth:      auth.NewHandler(authService, log),
		Secretary: []httptransport.Registrar{
			publisher.NewHandler(publisherService, log),
			report.NewHandler(reportService, log),
			attendance.NewHandler(attendanceService, log),
			derive.NewHandler(deriveService, log),
			documents.NewHandler(deriveService, documentsService, log),
			importer.NewHandler(importService, log),
			settings.NewHandler(settingsService, log),
			reference.NewHandler(refStore),
		},
		Admin: []httptransport.Registrar{
			maintenance.NewHandler(maintenanceService, log),
		},
		HealthPing: db.Ping,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
