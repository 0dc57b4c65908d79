package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	v1 "github.com/falcomnl/api-controller/internal/api/rest/v1"
	"github.com/falcomnl/api-controller/internal/infrastructure/persistence"
	"github.com/falcomnl/api-controller/internal/pkg/config"
	"github.com/falcomnl/api-controller/internal/pkg/logger"
	"github.com/falcomnl/api-controller/pkg/controller"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// App is the wired API service.
type App struct {
	cfg    *config.AppConfig
	log    logger.Logger
	db     *gorm.DB
	engine *gin.Engine
	routes []controller.Route
}

// New opens the database, migrates the models and sets up the router.
func New(cfg *config.AppConfig, log logger.Logger) (*App, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db, v1.Models()...); err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	a := &App{cfg: cfg, log: log, db: db}
	if err := a.setupRouter(); err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}
	return a, nil
}

func (a *App) setupRouter() error {
	gin.SetMode(a.cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	deps := v1.Dependencies{
		DB:          a.db,
		Logger:      a.log,
		LogRequests: a.cfg.LogAPI,
	}
	if a.cfg.Auth.Enabled {
		deps.Authorizer = controller.NewBearerAuthorizer(a.cfg.Auth.JWTSecret, controller.AbilityPolicy)
	}

	routes, err := v1.SetupRoutes(r, a.cfg.Server.BasePath, deps)
	if err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	a.engine = r
	a.routes = routes
	return nil
}

// Handler returns the HTTP handler of the service.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Routes lists the registered resource routes.
func (a *App) Routes() []controller.Route {
	return a.routes
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.log.Info("Starting server on port ", a.cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		a.log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info("Server stopped gracefully")
	return nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return persistence.CloseDB(a.db)
}
