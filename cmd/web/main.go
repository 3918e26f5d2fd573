package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-optimizer/internal/config"
	"alfredoptarigan/resume-optimizer/internal/server"
	"alfredoptarigan/resume-optimizer/internal/services"
	"alfredoptarigan/resume-optimizer/internal/workflow"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	analyzerService := services.NewAnalyzerService(cfg.AnalyzeEndpoint(), cfg.Analyzer.Timeout)
	log.Printf("✅ Analysis backend: %s\n", cfg.AnalyzeEndpoint())

	flow := workflow.NewFlow(storageService, pdfParser, analyzerService)

	registry := services.NewSessionRegistry(flow, cfg.Session.TTL, cfg.Session.SweepInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	registry.Start(ctx)

	app := server.NewWebApp(server.WebOptions{
		Flow:          flow,
		Registry:      registry,
		SessionTTL:    cfg.Session.TTL,
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		BodyLimit:     cfg.Server.BodyLimit,
		Secure:        !cfg.IsDevelopment(),
	})
	log.Println("✅ Handlers initialized")

	if cfg.Storage.MaxUploadSize <= 0 {
		log.Println("⚠️  No upload size cap configured; the page still advertises 10MB")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	registry.Stop()
}
