package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-optimizer/internal/config"
	"alfredoptarigan/resume-optimizer/internal/server"
	"alfredoptarigan/resume-optimizer/internal/services"
)

func main() {
	cfg := config.Load()

	app := server.NewStubApp(services.NewPDFParserService(), cfg.Server.BodyLimit)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down stub backend...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Stub backend forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Stub.Port)
	log.Printf("🧪 Stub analysis backend starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start stub backend: %v", err)
	}
}
