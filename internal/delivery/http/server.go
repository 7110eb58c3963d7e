package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/orekiez/pudu-field/internal/config"
	"github.com/orekiez/pudu-field/internal/delivery/http/handler"
	"github.com/orekiez/pudu-field/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP server on top of Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	stateHandler    *handler.StateHandler
	sessionHandler  *handler.SessionHandler
	locationHandler *handler.LocationHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	stateHandler *handler.StateHandler,
	sessionHandler *handler.SessionHandler,
	locationHandler *handler.LocationHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Pudu Field Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		stateHandler:    stateHandler,
		sessionHandler:  sessionHandler,
		locationHandler: locationHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// View state
	api.Get("/state", s.stateHandler.GetState)
	api.Get("/state/markers", s.stateHandler.GetMarkers)
	api.Put("/state/filter", s.stateHandler.SetFilter)
	api.Put("/state/mode", s.stateHandler.SetMode)
	api.Post("/state/reload", s.stateHandler.Reload)
	api.Post("/state/notification/dismiss", s.stateHandler.DismissNotification)

	// Edit session
	api.Post("/session/create", s.sessionHandler.BeginCreate)
	api.Post("/session/edit", s.sessionHandler.BeginEdit)
	api.Patch("/session/draft", s.sessionHandler.PatchDraft)
	api.Post("/session/save", s.sessionHandler.Save)
	api.Post("/session/delete", s.sessionHandler.RequestDelete)
	api.Post("/session/delete/confirm", s.sessionHandler.ConfirmDelete)
	api.Post("/session/delete/decline", s.sessionHandler.DeclineDelete)
	api.Post("/session/cancel", s.sessionHandler.Cancel)

	// Device position and page bootstrap
	api.Put("/location", s.locationHandler.ReportLocation)
	api.Get("/config/map", s.locationHandler.GetMapConfig)
}

// Start - run the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
