package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory-buttons/internal/config"
	"github.com/robalobadob/memory-buttons/internal/httpserver"
	"github.com/robalobadob/memory-buttons/internal/i18n"
	"github.com/robalobadob/memory-buttons/internal/session"
	"github.com/robalobadob/memory-buttons/internal/store"
)

const drainWait = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("memory-buttons exited")
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	cfg := config.Load()
	setupLogging(cfg)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load message catalogs: %w", err)
	}

	sessions := session.NewManager(&session.Config{
		Store:     st,
		DailySalt: cfg.DailySalt,
		Game: session.GameConfig{
			ShuffleRounds:     cfg.ShuffleRounds,
			ShuffleDisplay:    cfg.ShuffleDisplay,
			MemorizePerButton: cfg.MemorizePerButton,
			ButtonWidth:       cfg.ButtonWidth,
			ButtonHeight:      cfg.ButtonHeight,
			MaxButtons:        cfg.MaxButtons,
		},
	})
	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Store:    st,
		Sessions: sessions,
		I18n:     bundle,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), drainWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("starting memory-buttons")
	serveErr := srv.Start(":" + cfg.Port)
	if serveErr != nil {
		// Sessions hang off the server's base context; stop them here too.
		stop()
		_ = srv.Shutdown(context.Background())
	}

	// Websocket sessions are hijacked, so the HTTP shutdown doesn't wait
	// for them. Their last round must be saved before the store closes.
	drainCtx, cancel := context.WithTimeout(context.Background(), drainWait)
	defer cancel()
	if err := sessions.Wait(drainCtx); err != nil {
		log.Warn().Err(err).Int("open", sessions.Active()).Msg("sessions still open at exit")
	}
	if serveErr != nil {
		return fmt.Errorf("serve: %w", serveErr)
	}
	log.Info().Msg("server stopped")
	return nil
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openStore uses SQLite when DB_PATH is set and keeps rounds in memory otherwise.
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.DBPath == "" {
		log.Warn().Msg("DB_PATH not set; rounds and accounts are kept in memory")
		return store.NewMemoryStore(), nil
	}
	log.Info().Str("path", cfg.DBPath).Msg("opening sqlite store")
	return store.OpenSQLite(cfg.DBPath)
}
