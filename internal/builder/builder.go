// Package builder assembles the application from configuration.
package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/promptform/promptform/internal/api"
	"github.com/promptform/promptform/internal/api/forms"
	"github.com/promptform/promptform/internal/config"
	"github.com/promptform/promptform/pkg/classify"
	"github.com/promptform/promptform/pkg/classify/gemini"
	"github.com/promptform/promptform/pkg/render"
	"github.com/promptform/promptform/pkg/renderers/vanilla"
	"github.com/promptform/promptform/pkg/session"
)

// Build wires configuration, logging, the classifier, the session store and
// the HTTP server into a runnable App.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("building application",
		zap.String("server_addr", cfg.ServerAddr),
		zap.Bool("generator_enabled", cfg.GeneratorEnabled),
	)

	classifierOptions := []classify.Option{
		classify.WithLogger(logger),
		classify.WithTimeout(cfg.GeneratorTimeout),
	}
	if cfg.GeneratorEnabled {
		generator, err := gemini.New(ctx, cfg.GeminiAPIKey, gemini.WithModel(cfg.GeminiModel))
		if err != nil {
			return nil, fmt.Errorf("create gemini generator: %w", err)
		}
		classifierOptions = append(classifierOptions, classify.WithGenerator(generator))
		logger.Info("external generator enabled")
	}

	classifier, err := classify.New(classifierOptions...)
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}

	store := session.NewStore(cfg.SessionTTL)

	registry := render.NewRegistry()
	registry.MustRegister(vanilla.New())
	renderer, err := registry.Get(cfg.RendererName)
	if err != nil {
		return nil, fmt.Errorf("resolve renderer %q (have %v): %w", cfg.RendererName, registry.List(), err)
	}

	handler := forms.NewHandler(classifier, store, renderer, cfg.GeneratorEnabled, logger)
	router := api.SetupRouter(handler, logger)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("application built successfully")

	return &App{
		server: server,
		logger: logger,
	}, nil
}
