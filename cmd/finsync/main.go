package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/finsyncpro/finsync-cli/internal/config"
	"github.com/finsyncpro/finsync-cli/internal/gateway"
	"github.com/finsyncpro/finsync-cli/internal/state"
	"github.com/finsyncpro/finsync-cli/internal/ui"
	"github.com/finsyncpro/finsync-cli/internal/web"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	serveMode  = flag.Bool("serve", false, "Serve the chat page locally and proxy /api to the backend")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if *serveMode {
		runServe(cfg, logger)
		return
	}
	runChat(cfg, logger)
}

func runChat(cfg *config.Config, logger *zap.Logger) {
	client := gateway.New(cfg.API.BaseURL, cfg.API.Timeout())

	chat := state.NewChatSession(client, logger)
	registry := state.NewDocumentRegistry(client, logger, cfg.UI.ProgressGrace())

	ctx := context.Background()

	// Best-effort initial document fetch; the backend may not be up yet
	registry.Refresh(ctx)

	tty := isatty.IsTerminal(os.Stdout.Fd())
	tw := ui.NewTypewriter(os.Stdout, cfg.UI.TypewriterSpeed(), cfg.UI.TypewriterVariance(), tty)

	repl := ui.NewREPL(chat, registry, client, tw, cfg.Upload.MaxFileSizeBytes(), os.Stdin, os.Stdout)
	if err := repl.Run(ctx); err != nil {
		logger.Fatal("REPL terminated", zap.Error(err))
	}
}

func runServe(cfg *config.Config, logger *zap.Logger) {
	server, err := web.New(cfg.API.BaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize web server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting FinSync local server",
			zap.String("address", cfg.Address()),
			zap.String("backend", cfg.API.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
