package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/gratitudenest/gratitude-service/internal/assist"
	"github.com/gratitudenest/gratitude-service/internal/auth"
	"github.com/gratitudenest/gratitude-service/internal/challenge"
	"github.com/gratitudenest/gratitude-service/internal/config"
	"github.com/gratitudenest/gratitude-service/internal/httpapi"
	"github.com/gratitudenest/gratitude-service/internal/logging"
	"github.com/gratitudenest/gratitude-service/internal/server"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("gratitude-service")

	repo, cleanup, err := newRepository(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("repository init error: %w", err))
	}
	defer cleanup()

	challengeService := challenge.NewService(repo)

	assistant, err := assist.NewGeminiAssistant(ctx, assist.AssistantConfig{
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		UseVertex:       cfg.LLM.UseVertex,
		Project:         cfg.GCPProjectID,
		Location:        cfg.LLM.Location,
	})
	if err != nil {
		logger.Warn("falling back to template assistant", slog.String("reason", err.Error()))
		assistant = assist.NewTemplateAssistant()
	} else {
		defer assistant.Close()
	}

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     cfg.Auth.Mode,
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	router := server.NewRouter("gratitude-service", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))

			httpapi.RegisterRoutes(r, challengeService, logger)
			httpapi.RegisterInsightsRoutes(r, challengeService)
			httpapi.RegisterAssistRoutes(r, challengeService, assistant, logger)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func newRepository(ctx context.Context, cfg config.Config) (challenge.Repository, func(), error) {
	switch cfg.DataStore {
	case config.DataStoreFirestore:
		if cfg.Firestore.EmulatorHost != "" {
			if err := os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.Firestore.EmulatorHost); err != nil {
				return nil, nil, fmt.Errorf("set FIRESTORE_EMULATOR_HOST: %w", err)
			}
		}

		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}

		repo := challenge.NewFirestoreRepository(client)
		cleanup := func() {
			_ = client.Close()
		}
		return repo, cleanup, nil
	default:
		repo := challenge.NewMemoryRepository()
		return repo, func() {}, nil
	}
}
