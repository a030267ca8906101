package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"spam-detection-service/internal/adapters/primary/http/handlers"
	"spam-detection-service/internal/adapters/primary/http/middleware"
	"spam-detection-service/internal/adapters/secondary/sklearn"
	"spam-detection-service/internal/config"
	"spam-detection-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Model artifacts must load before anything listens; a failure here exits.
	engine, err := sklearn.Load(sklearn.Paths{
		Vectorizer: cfg.Model.VectorizerPath,
		Classifier: cfg.Model.ClassifierPath,
	})
	if err != nil {
		log.Fatalf("load model artifacts: %v", err)
	}

	info := engine.Info()
	log.WithFields(log.Fields{
		"vectorizer":      info.VectorizerType,
		"vocabulary_size": info.VocabularySize,
		"ngram_range":     info.NgramRange,
		"classifier":      info.ClassifierType,
		"classes":         info.Classes,
	}).Info("model artifacts loaded")

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Core Services (Application Layer)
	spamSvc := services.NewSpamService(engine)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(spamSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging("/ping"), middleware.Recovery(), middleware.CORS())

	h.RegisterRoutes(router.Group("/"))

	// Start server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
