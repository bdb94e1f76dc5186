package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	boothservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service"
	boothpostgres "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/adapters/postgres"
	boothapp "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/application"
	boothworkers "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/application/workers"
	registryservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service"
	registrypostgres "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/adapters/postgres"
	resultsservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service"
	resultspostgres "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/adapters/postgres"
	resultsentities "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/entities"
	votingengine "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine"
	votingpostgres "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/adapters/postgres"
	authservice "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service"
	authpostgres "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/adapters/postgres"
	auditservice "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service"
	auditpostgres "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/adapters/postgres"
	"github.com/Masterbarreto/Api-Urna/internal/platform/config"
	"github.com/Masterbarreto/Api-Urna/internal/platform/db"
	"github.com/Masterbarreto/Api-Urna/internal/platform/httpserver"
	"github.com/Masterbarreto/Api-Urna/internal/platform/realtime"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	sweeper      boothworkers.StalenessSweeper
	sweepEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	auditRepo := auditpostgres.NewRepository(pg.DB, logger)
	auditModule := auditservice.NewModule(auditservice.Dependencies{
		Log:    auditRepo,
		Clock:  auditpostgres.SystemClock{},
		IDGen:  auditpostgres.UUIDGenerator{},
		Logger: logger,
	})
	recorder := auditModule.Recorder

	hub := realtime.NewHub(logger)

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Elections:  votingRepo,
		Voters:     votingRepo,
		Candidates: votingRepo,
		Ledger:     votingRepo,
		Notifier:   realtime.Notifier{Hub: hub},
		Auditor:    recorder,
		Clock:      votingpostgres.SystemClock{},
		IDGen:      votingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	registryRepo := registrypostgres.NewRepository(pg.DB, logger)
	registryModule := registryservice.NewModule(registryservice.Dependencies{
		Elections:  registryRepo,
		Candidates: registryRepo,
		Voters:     registryRepo,
		Auditor:    recorder,
		Clock:      registrypostgres.SystemClock{},
		IDGen:      registrypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	boothRepo := boothpostgres.NewRepository(pg.DB, logger)
	boothModule := boothservice.NewModule(boothservice.Dependencies{
		Booths:       boothRepo,
		Auditor:      recorder,
		Clock:        boothpostgres.SystemClock{},
		IDGen:        boothpostgres.UUIDGenerator{},
		OnlineWithin: cfg.BoothOnlineWithin,
		OfflineAfter: cfg.BoothOfflineAfter,
		Logger:       logger,
	})

	resultsRepo := resultspostgres.NewRepository(pg.DB, logger)
	resultsModule := resultsservice.NewModule(resultsservice.Dependencies{
		Reader: resultsRepo,
		Fleet:  fleetReader{booths: boothModule.Service},
		Clock:  resultspostgres.SystemClock{},
		Logger: logger,
	})

	authRepo := authpostgres.NewRepository(pg.DB, logger)
	authModule := authservice.NewModule(authservice.Dependencies{
		Users:    authRepo,
		Auditor:  recorder,
		Clock:    authpostgres.SystemClock{},
		IDGen:    authpostgres.UUIDGenerator{},
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.JWTTTL,
		Logger:   logger,
	})

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := authModule.Service.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			_ = pg.Close()
			return nil, err
		}
	}

	server := httpserver.New(httpserver.Modules{
		Voting:   votingModule,
		Registry: registryModule,
		Booths:   boothModule,
		Results:  resultsModule,
		Auth:     authModule,
		Audit:    auditModule,
		Hub:      hub,
	}, httpserver.Options{
		Addr:          normalizeAddr(cfg.HTTPPort),
		EnableSwagger: cfg.EnableSwagger,
		Logger:        logger,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	boothRepo := boothpostgres.NewRepository(pg.DB, logger)
	boothModule := boothservice.NewModule(boothservice.Dependencies{
		Booths:       boothRepo,
		Clock:        boothpostgres.SystemClock{},
		IDGen:        boothpostgres.UUIDGenerator{},
		OnlineWithin: cfg.BoothOnlineWithin,
		OfflineAfter: cfg.BoothOfflineAfter,
		Logger:       logger,
	})

	return &WorkerApp{
		postgres:     pg,
		sweeper:      boothModule.Sweeper,
		sweepEnabled: cfg.EnableBoothSweep,
		pollInterval: cfg.SweepInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.sweepEnabled {
		w.logger.Info("booth sweep disabled, worker idle",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.sweeper.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// fleetReader bridges the booth module's fleet summary into the results
// module's dashboard port.
type fleetReader struct {
	booths boothapp.Service
}

func (f fleetReader) FleetStatus(ctx context.Context) (resultsentities.FleetStatus, error) {
	summary, err := f.booths.FleetSummary(ctx)
	if err != nil {
		return resultsentities.FleetStatus{}, err
	}
	return resultsentities.FleetStatus{
		Total:   summary.Total,
		Online:  summary.Online,
		Warning: summary.Warning,
		Offline: summary.Offline,
	}, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
