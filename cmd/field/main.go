package main

// @title Pudu Field Gateway API
// @version 1.0.0
// @description Gateway local para el mapa de Reciclaje Pudu. Mantiene el estado del cliente (puntos, filtro, modo de vista, sesion de edicion, notificaciones) y lo sincroniza contra el recurso remoto /api/puntos/.

// @host localhost:8080
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/orekiez/pudu-field/docs"
	"github.com/orekiez/pudu-field/internal/config"
	httpDelivery "github.com/orekiez/pudu-field/internal/delivery/http"
	"github.com/orekiez/pudu-field/internal/delivery/http/handler"
	"github.com/orekiez/pudu-field/internal/infrastructure/puntosapi"
	"github.com/orekiez/pudu-field/internal/notify"
	"github.com/orekiez/pudu-field/internal/pkg/logger"
	"github.com/orekiez/pudu-field/internal/presentation"
	"github.com/orekiez/pudu-field/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Pudu Field Gateway")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("puntos_api", cfg.Remote.BaseURL),
	)

	// 3. Remote store client
	puntoRepo := puntosapi.NewClient(&cfg.Remote, log)

	// 4. Notification channel
	notifier := notify.New(cfg.Notify.TTL, log)

	// 5. Use cases
	viewUC := usecase.NewViewStateUseCase(puntoRepo, log)
	sessionUC := usecase.NewEditSessionUseCase(puntoRepo, viewUC, notifier, log)
	markerCatalog := presentation.NewMarkerCatalog()

	log.Info("Use cases initialized")

	// 6. Initial load. A failure leaves an empty collection; the page
	// can trigger a manual reload.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.RequestTimeout)
	if err := viewUC.Reload(ctx); err != nil {
		log.Warn("Initial load failed, starting with empty collection", zap.Error(err))
		notifier.Publish(notify.LevelWarning, "No se pudieron cargar los puntos")
	}
	cancel()

	// 7. HTTP handlers
	stateHandler := handler.NewStateHandler(viewUC, sessionUC, notifier, markerCatalog, log)
	sessionHandler := handler.NewSessionHandler(sessionUC, viewUC, log)
	locationHandler := handler.NewLocationHandler(viewUC, cfg.Map, log)

	log.Info("HTTP handlers initialized")

	// 8. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		stateHandler,
		sessionHandler,
		locationHandler,
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
