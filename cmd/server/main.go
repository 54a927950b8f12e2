package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathwise/backend/internal/assessment"
	"github.com/pathwise/backend/internal/curriculum"
	"github.com/pathwise/backend/internal/mastery"
	"github.com/pathwise/backend/internal/platform/cache"
	"github.com/pathwise/backend/internal/platform/config"
	"github.com/pathwise/backend/internal/platform/database"
	"github.com/pathwise/backend/internal/recommend"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	loader, err := curriculum.NewLoader(cfg.CurriculumPath)
	if err != nil {
		slog.Error("failed to load curriculum", "error", err)
		os.Exit(1)
	}
	dag, err := loader.BuildGraph()
	if err != nil {
		slog.Error("failed to build prerequisite graph", "error", err)
		os.Exit(1)
	}

	var (
		masteryStore  mastery.Store
		responseStore assessment.ResponseStore
		db            *database.DB
	)
	if cfg.Database.URL != "" {
		db, err = database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		masteryStore, err = mastery.NewPostgresStore(db.Pool)
		if err != nil {
			slog.Error("failed to create mastery store", "error", err)
			os.Exit(1)
		}
		responseStore, err = assessment.NewPostgresResponseStore(db.Pool)
		if err != nil {
			slog.Error("failed to create response store", "error", err)
			os.Exit(1)
		}
		slog.Info("using postgres stores")
	} else {
		masteryStore = mastery.NewMemoryStore()
		responseStore = assessment.NewMemoryResponseStore()
		slog.Info("using in-memory stores")
	}

	var (
		recCache  recommend.CacheStore
		cacheConn *cache.Cache
	)
	freshness := time.Duration(cfg.Engine.FreshnessHours) * time.Hour
	if cfg.Cache.URL != "" {
		cacheConn, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Error("failed to connect to cache", "error", err)
			os.Exit(1)
		}
		defer cacheConn.Close()
		recCache, err = recommend.NewRedisCache(cacheConn.Client, freshness)
		if err != nil {
			slog.Error("failed to create recommendation cache", "error", err)
			os.Exit(1)
		}
		slog.Info("using redis recommendation cache")
	}

	engine := recommend.NewEngine(dag, cfg.Engine.MasteryThreshold)
	recommender := recommend.NewRecommender(recommend.RecommenderConfig{
		Engine:          engine,
		Mastery:         masteryStore,
		Cache:           recCache,
		FreshnessWindow: freshness,
	})

	srv := newServer(serverConfig{
		graph:       dag,
		recommender: recommender,
		mastery:     masteryStore,
		responses:   responseStore,
		threshold:   cfg.Engine.MasteryThreshold,
		db:          db,
		cache:       cacheConn,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.mux(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "topics", dag.Len())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
