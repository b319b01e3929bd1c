package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medley-labs/medley/internal/adapters/accounts"
	"github.com/medley-labs/medley/internal/adapters/memory"
	"github.com/medley-labs/medley/internal/adapters/openai"
	"github.com/medley-labs/medley/internal/adapters/rest"
	"github.com/medley-labs/medley/internal/adapters/spotify"
	"github.com/medley-labs/medley/internal/adapters/sqlite"
	"github.com/medley-labs/medley/internal/config"
	"github.com/medley-labs/medley/internal/core/services"
	"github.com/medley-labs/medley/internal/worker"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// 1. Configuration (Environment Variables)
	// Crash early if required config is missing.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on the environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Build History Adapter
	history, err := sqlite.NewAdapter(cfg.HistoryDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize build history database")
	}
	defer history.Close()

	// -- Catalog and Accounts Adapters
	catalog := spotify.NewClient(nil, cfg.SpotifyAPIBaseURL)
	tokens := accounts.New(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL)
	sessions := memory.NewSessionStore()

	// -- Completion Adapter
	completions := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// 3. Initialize Core Logic (The Driver)
	// Dependency Injection: the compiler guarantees each adapter satisfies
	// its port.
	guard := services.NewGuard(sessions, tokens)
	resolver := services.NewResolver(catalog)
	assembler := services.NewAssembler(catalog, resolver, cfg.PlaylistBaseURL)
	harvester := services.NewHarvester(catalog, assembler)

	pool := worker.NewPool(history, 100)
	pool.Start(1)
	defer pool.Stop()

	chat := services.NewChat(guard, completions, completions, assembler, harvester, pool)

	// 4. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(chat, sessions, tokens, history)

	// 5. Start the Server
	log.Info().Str("addr", cfg.Addr()).Msg("🎶 Medley API is running")

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
