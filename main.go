package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harshgoy877/travdif-bot-backend/api"
	"github.com/harshgoy877/travdif-bot-backend/config"
	"github.com/harshgoy877/travdif-bot-backend/domain"
	"github.com/harshgoy877/travdif-bot-backend/knowledge"
	"github.com/harshgoy877/travdif-bot-backend/metrics"
	"github.com/harshgoy877/travdif-bot-backend/openai"
	"github.com/harshgoy877/travdif-bot-backend/policy"
	"github.com/harshgoy877/travdif-bot-backend/prompt"
	"github.com/harshgoy877/travdif-bot-backend/relay"
	"github.com/harshgoy877/travdif-bot-backend/session"
	"github.com/harshgoy877/travdif-bot-backend/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting travdif concierge...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Relay mode: %s", cfg.RelayMode)
	log.Printf("Model: %s", cfg.Model)
	log.Printf("Base URL: %s", cfg.PublicBaseURL)

	// Load knowledge
	kn := knowledge.Load(cfg.KnowledgePath)
	if kn.FromFile() {
		log.Printf("Knowledge loaded from %s (%d chars)", cfg.KnowledgePath, kn.Len())
	} else {
		log.Printf("WARN: knowledge file %s not readable, using fallback (%d chars)", cfg.KnowledgePath, kn.Len())
	}

	// Initialize transcript store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.AllowListPolicy(cfg.AllowedModels))
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize metrics and shared model handle
	m := metrics.New()
	activeModel := relay.NewActiveModel(cfg.Model)
	prompts := prompt.NewBuilder(kn, cfg.SupportContact)

	// Initialize the relay for the configured mode
	var vendorRelay relay.Relay
	switch cfg.RelayMode {
	case string(domain.ModeGemini):
		vendorRelay, err = relay.NewGeminiRelay(ctx, cfg.GeminiAPIKey, prompts, activeModel)
		if err != nil {
			log.Fatalf("Failed to initialize gemini relay: %v", err)
		}
	case string(domain.ModeAssistant):
		if cfg.AssistantID == "" {
			log.Fatalf("OPENAI_ASSISTANT_ID is required in assistant mode")
		}
		client := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout)
		registry := session.NewRegistry(cfg.SessionCap)
		vendorRelay = relay.NewAssistantRelay(client, registry, prompts, kn, cfg.AssistantID, cfg.PollInterval, cfg.PollAttempts)
	default:
		client := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout)
		vendorRelay = relay.NewCompletionRelay(client, prompts, activeModel)
	}

	// Initialize handler
	h := api.NewHandler(cfg, vendorRelay, prompts, kn, m, db, policyEngine, activeModel)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins,
		}))
	} else {
		e.Use(middleware.CORS())
	}

	// Register routes
	h.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Concierge started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	snap := m.Snapshot()
	log.Printf("Shutting down: served %d requests, estimated cost $%.6f", snap.TotalRequests, snap.EstimatedTotalCost)

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Concierge stopped")
}
