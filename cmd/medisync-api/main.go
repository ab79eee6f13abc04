package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/common/logger"
	"github.com/arjunishere-e/medisync/internal/config"
	httpapi "github.com/arjunishere-e/medisync/internal/http"
	"github.com/arjunishere-e/medisync/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "medisync-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	ctx := context.Background()
	app, err := service.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create clinical service",
			zap.Error(err),
		)
	}
	defer app.Close()

	handler := httpapi.NewClinicalHandler(app.Clinical, log)
	server := service.NewServer(cfg.HTTP.Addr, httpapi.NewRouter(handler, log), log)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down",
			zap.String("signal", sig.String()),
		)
	case err := <-serverErrChan:
		log.Error("HTTP server error",
			zap.Error(err),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop HTTP server", zap.Error(err))
	}
	log.Info("Medisync API stopped")
}
