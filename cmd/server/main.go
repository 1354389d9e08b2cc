package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/config"
	httpDelivery "github.com/pantrychef/backend/internal/delivery/http"
	"github.com/pantrychef/backend/internal/domain"
	"github.com/pantrychef/backend/internal/infrastructure/cache"
	"github.com/pantrychef/backend/internal/infrastructure/llm"
	"github.com/pantrychef/backend/internal/infrastructure/logger"
	"github.com/pantrychef/backend/internal/infrastructure/metrics"
	"github.com/pantrychef/backend/internal/infrastructure/pantrystore"
	"github.com/pantrychef/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: !cfg.Server.IsProduction(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting PantryChef backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Type),
		zap.String("cache", cfg.Cache.Type),
		zap.Bool("llm_enabled", cfg.LLM.Enabled))

	ctx := context.Background()

	// Initialize infrastructure dependencies
	store, closeStore, err := newPantryStore(cfg)
	if err != nil {
		zlog.Fatal("failed to open pantry store", zap.Error(err))
	}
	defer closeStore.Close()

	suggestionCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		zlog.Fatal("failed to initialise cache", zap.Error(err))
	}
	defer closeCache.Close()

	var client domain.SuggestionClient
	if cfg.LLM.Enabled {
		client = llm.NewClient(llm.Config{
			APIKey:            cfg.LLM.APIKey,
			BaseURL:           cfg.LLM.BaseURL,
			Model:             cfg.LLM.Model,
			MaxTokens:         cfg.LLM.MaxTokens,
			Temperature:       cfg.LLM.Temperature,
			RequestsPerMinute: cfg.LLM.RequestsPerMinute,
			HTTPTimeout:       cfg.LLM.HTTPTimeout,
		}, zlog.Named("llm"))
		zlog.Info("suggestion service configured",
			zap.String("base_url", cfg.LLM.BaseURL),
			zap.String("model", cfg.LLM.Model))
	} else {
		zlog.Warn("suggestion service disabled, using rule-based fallbacks only")
	}

	recorder := metrics.New()

	// Initialize usecase layer
	pantryService := usecase.NewPantryService(store, client, suggestionCache, recorder, zlog, usecase.PantryServiceConfig{
		Substitution: usecase.SubstitutionConfig{
			Policy: usecase.RetryPolicy{
				Attempts:    cfg.Suggestion.Attempts,
				Timeout:     cfg.Suggestion.Timeout,
				TimeoutStep: cfg.Suggestion.TimeoutStep,
				Backoff:     cfg.Suggestion.Backoff,
			},
			CacheTTL: cfg.Cache.TTL,
		},
		Classification: usecase.RetryPolicy{
			Attempts: 1,
			Timeout:  cfg.Suggestion.ClassifyTimeout,
		},
		Deduction: usecase.DeductionConfig{
			DeleteWhenEmpty: cfg.Store.DeleteWhenEmpty,
		},
	})

	handler := httpDelivery.NewHandler(pantryService, zlog.Named("http"))
	router := httpDelivery.SetupRouter(cfg, handler, zlog.Named("access"), recorder)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newPantryStore(cfg *config.Config) (domain.PantryRepository, io.Closer, error) {
	switch cfg.Store.Type {
	case "sqlite":
		store, err := pantrystore.OpenSQLite(cfg.Store.SQLitePath, !cfg.Server.IsProduction() && cfg.Log.Level == "debug")
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return pantrystore.NewMemoryStore(), nopCloser{}, nil
	}
}

func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, io.Closer, error) {
	switch cfg.Cache.Type {
	case "redis":
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		redisCache, err := cache.NewRedisCache(pingCtx, cfg.Cache.RedisURL, cfg.Cache.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, redisCache, nil
	default:
		memoryCache := cache.NewMemoryCache(10 * time.Minute)
		return memoryCache, memoryCache, nil
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
