package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/worapolk/sensor-collect-server/internal/config"
	"github.com/worapolk/sensor-collect-server/internal/httpapi"
	"github.com/worapolk/sensor-collect-server/internal/ingest"
	"github.com/worapolk/sensor-collect-server/internal/upload"
	"github.com/worapolk/sensor-collect-server/internal/version"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.FromEnv()
	log.Printf("Starting %s", version.String())
	log.Printf("Collected data directory: %s", cfg.DataDir)

	stats := ingest.NewStats()
	writer := ingest.NewWriter(cfg.DataDir, stats)
	store := upload.NewStore(cfg.HistoryLimit)

	handler := httpapi.NewHandler(writer, store, stats, cfg.MaxBodyMB*1024*1024)

	var limiter *httpapi.Limiter
	if cfg.RatePerMin > 0 {
		limiter = httpapi.NewLimiter(cfg.RatePerMin, cfg.RateBurst)
		log.Printf("Rate limit: %d uploads/min per client (burst %d)", cfg.RatePerMin, cfg.RateBurst)
	}

	router := httpapi.SetupRouter(handler, limiter)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// Session uploads carry dozens of embedded frames over slow phone
		// uplinks, so the read timeout is generous.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Printf("Server stopped. Totals: %s", stats)
}
