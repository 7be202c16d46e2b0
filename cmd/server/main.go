// Command server exposes the signup form validation endpoint.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"signup-form/internal/config"
	"signup-form/internal/docs"
	httpHandler "signup-form/internal/handler/http"
	"signup-form/internal/service"
	"signup-form/pkg/logger"
)

func main() {
	// ========================================================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================================================
	// Defaults, then the YAML file named by CONFIG_FILE, then environment
	// variables. The same binary runs in every environment.
	// ========================================================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.App.LogLevel)
	appLogger.Info("Starting signup form server",
		"environment", cfg.App.Environment,
		"port", cfg.Server.Port,
	)

	// ========================================================================
	// STEP 2: WIRE DEPENDENCIES
	// ========================================================================
	// Dependencies are wired by hand: Service → Handler → Router.
	// Validation is stateless, so there is no pool or connection to close
	// on exit and one service instance serves every request.
	// ========================================================================
	formService := service.NewFormService(appLogger)
	handler := httpHandler.NewHandler(formService, appLogger.Logger, cfg.Form.MaxBodyBytes)

	apiDoc, err := docs.Build(context.Background(), httpHandler.FormPath, httpHandler.HealthPath)
	if err != nil {
		log.Fatalf("Failed to build OpenAPI document: %v", err)
	}

	mux, err := httpHandler.NewRouter(handler, httpHandler.RouterOptions{
		OpenAPI:       apiDoc,
		EnableMetrics: cfg.App.EnableMetrics,
	})
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// ========================================================================
	// STEP 3: APPLY MIDDLEWARE CHAIN
	// ========================================================================
	// EXECUTION ORDER (outside-in):
	// Request → Recovery → Logging → RequestID → CORS → Metrics → Timeout → Handler
	//
	// - Recovery is outermost so a panic anywhere below becomes a 500.
	// - Logging wraps RequestID so the logged line can include the ID.
	// - Timeout is innermost so the 503 it writes is still logged and counted.
	// ========================================================================
	middlewares := []func(http.Handler) http.Handler{
		httpHandler.RecoveryMiddleware(appLogger.Logger),
		httpHandler.LoggingMiddleware(appLogger.Logger),
		httpHandler.RequestIDMiddleware,
		httpHandler.CORSMiddleware,
	}
	if cfg.App.EnableMetrics {
		middlewares = append(middlewares, httpHandler.MetricsMiddleware)
	}
	middlewares = append(middlewares, httpHandler.TimeoutMiddleware(cfg.Form.RequestTimeout))
	finalHandler := httpHandler.Chain(middlewares...)(mux)

	// Read/Write/Idle timeouts stop slow clients from holding connections
	// open; they are separate from the per-request handler timeout above.
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// ========================================================================
	// STEP 4: START SERVER AND WAIT FOR SHUTDOWN SIGNAL
	// ========================================================================
	// ListenAndServe blocks, so it runs in a goroutine while main waits for
	// SIGINT/SIGTERM. Shutdown stops accepting connections and waits for
	// in-flight requests up to SERVER_SHUTDOWN_TIMEOUT.
	// ========================================================================
	go func() {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited gracefully")
}
