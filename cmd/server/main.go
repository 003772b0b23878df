package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpadapter "fleetsim/internal/adapter/http"
	metricsinmem "fleetsim/internal/adapter/metrics/inmemory"
	gormrepo "fleetsim/internal/adapter/repo/gorm"
	"fleetsim/internal/adapter/repo/memory"
	"fleetsim/internal/adapter/stream"
	"fleetsim/internal/app/fleetview"
	"fleetsim/internal/app/ports"
	"fleetsim/internal/app/simulate"
	"fleetsim/internal/config"
	"fleetsim/internal/domain/fleet"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	repo, tx := mustBuildStore(cfg, logger)
	mustSeed(repo, logger)

	hub := stream.NewHub(logger)
	kpi := metricsinmem.NewRecorder()

	scheduler := simulate.New(simulate.Config{
		Repo:             repo,
		Tx:               tx,
		Clock:            fleet.NewSimClock(nil),
		Logger:           logger,
		Metrics:          kpi,
		Stream:           hub,
		Interval:         cfg.TickInterval,
		StoreTimeout:     cfg.StoreTimeout,
		WriteConcurrency: cfg.WriteConcurrency,
	})
	if err := scheduler.Start(context.Background()); err != nil {
		logger.Error("load fleet", "err", err)
		os.Exit(1)
	}
	go func() {
		if err := scheduler.Run(context.Background()); err != nil && err != context.Canceled {
			logger.Error("scheduler stopped", "err", err)
		}
	}()

	if cfg.StreamAddr != "" {
		go serveStream(cfg.StreamAddr, hub, logger)
	}

	h := httpadapter.Handler{
		FleetUC: fleetview.UseCase{Repo: repo, Snapshots: scheduler},
		Sim:     scheduler,
		KPI:     kpi,
		Logger:  logger,
	}

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	logger.Info("fleetsim server listening", "addr", cfg.HTTPAddr, "tick_interval", cfg.TickInterval.String())
	s.Spin()
}

func mustBuildStore(cfg config.Config, logger *slog.Logger) (ports.FleetRepository, ports.TxManager) {
	if cfg.DBDSN == "" {
		logger.Info("FLEETSIM_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return memory.NewFleetRepo(store), memory.NewTxManager()
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		logger.Error("open postgres", "err", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}
	return gormrepo.NewFleetRepo(db), gormrepo.NewTxManager(db)
}

func mustSeed(repo ports.FleetRepository, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.SeedFleet(ctx, fleet.DemoFleet(time.Now())); err != nil {
		logger.Error("seed fleet", "err", err)
		os.Exit(1)
	}
}

func serveStream(addr string, hub *stream.Hub, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/boats/stream", hub)

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // long-lived websocket writes
	}
	logger.Info("snapshot stream listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("stream server stopped", "err", err)
	}
}
