// CLAUDE:SUMMARY Entry point for the nonogram retrieval HTTP service — chi router, browser manager lifecycle.
// Command nonoserve serves nonogram puzzles fetched on demand from
// webpbn.com and nonograms.org, converted to NON or XML.
//
// Usage:
//
//	nonoserve                        # listen on :8080 (or $PORT)
//	nonoserve -config nonoserve.yaml # listen/timeouts/browser from YAML
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nonogram-ai/nonogram-downloader/internal/browser"
	"github.com/nonogram-ai/nonogram-downloader/nonorg"
	"github.com/nonogram-ai/nonogram-downloader/retrieve"
	"github.com/nonogram-ai/nonogram-downloader/webpbn"
)

func main() {
	configPath := flag.String("config", "", "path to nonoserve.yaml config file")
	logLevel := flag.String("log-level", env("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath); err != nil {
		logger.Error("nonoserve: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath string) error {
	cfg := defaultConfig()
	if configPath != "" {
		loaded, err := LoadConfigFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Process-wide Chrome: started once, shut down with the server.
	mgr := browser.NewManager(browser.Config{
		RemoteURL:        cfg.Browser.Remote,
		RecycleInterval:  cfg.Browser.RecycleInterval,
		ResourceBlocking: cfg.Browser.ResourceBlocking,
		Headless:         cfg.Browser.Headless,
		Logger:           logger,
	})
	if err := mgr.Start(ctx); err != nil {
		return err
	}
	defer mgr.Close()

	svc := retrieve.New(
		webpbn.New(webpbn.Config{
			BaseURL: cfg.Webpbn.BaseURL,
			Timeout: cfg.Webpbn.Timeout,
			Logger:  logger,
		}),
		nonorg.New(nonorg.Config{
			Manager:         mgr,
			BaseURL:         cfg.Nonorg.BaseURL,
			NavigateTimeout: cfg.Nonorg.NavigateTimeout,
			DataTimeout:     cfg.Nonorg.DataTimeout,
			RevealTimeout:   cfg.Nonorg.RevealTimeout,
			Logger:          logger,
		}),
		logger,
	)

	srv := &server{svc: svc, requestTimeout: cfg.RequestTimeout, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	srv.routes(r)

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("nonoserve: listening", "addr", cfg.Listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("nonoserve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
