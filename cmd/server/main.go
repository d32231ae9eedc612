package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/franzego/slackrelay/internal/config"
	"github.com/franzego/slackrelay/internal/handlers"
	"github.com/franzego/slackrelay/internal/logging"
	"github.com/franzego/slackrelay/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer logger.Sync()

	if !cfg.Log.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	slackClient := services.NewSlackClient(cfg.Slack)
	messageHandler := handlers.NewMessageHandler(slackClient, logger)
	healthHandler := handlers.NewHealthHandler(slackClient)
	router := handlers.NewRouter(messageHandler, healthHandler, logger)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logger.Infow("Server running", "url", "http://localhost:"+cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server stopped unexpectedly", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Infow("Received shutdown signal, gracefully shutting down...", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
