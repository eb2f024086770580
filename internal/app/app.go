package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"memepop/internal/config"
	session_h "memepop/internal/http-server/handler/session"
	site_h "memepop/internal/http-server/handler/site"
	"memepop/internal/http-server/router"
	"memepop/internal/preset"
	"memepop/internal/usecase/editor"
	"memepop/internal/usecase/render"
	"memepop/internal/worker"

	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg     *config.Config
	server  *http.Server
	logger  *zlog.Zerolog
	editor  *editor.Editor
	janitor *worker.Janitor
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	// A broken preset is a programming error; refuse to serve it.
	store, err := preset.New(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset: %w", err)
	}

	renderer, err := render.NewRenderer(cfg.Render.MaxWidth, cfg.Render.MaxPixels, cfg.Render.JPEGQuality, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	editorUsecase := editor.NewEditor(store, logger, cfg.Editor.MaxSessions)

	h := &router.Handler{
		SiteHandler:    site_h.NewSiteHandler(store, logger, cfg.Server.StaticDir != ""),
		SessionHandler: session_h.NewSessionHandler(editorUsecase, renderer, logger, cfg.Render.MaxUploadSize),
		StaticDir:      cfg.Server.StaticDir,
	}

	mux := router.SetupRouter(h)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info().
		Str("profile", store.Profile()).
		Int("texts", len(store.Texts())).
		Bool("overlay", store.OverlayEnabled()).
		Msg("Preset loaded")

	return &App{
		cfg:     cfg,
		server:  server,
		logger:  logger,
		editor:  editorUsecase,
		janitor: worker.NewJanitor(editorUsecase, logger, cfg.Editor.SessionTTL, cfg.Editor.SweepInterval),
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Str("addr", a.cfg.Server.Addr).Str("env", a.cfg.Env).Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	a.janitor.Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		cancel()
		a.janitor.Wait()
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		a.janitor.Wait()

		a.logger.Info().Int("open_sessions", a.editor.Count()).Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
