/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the statutory payment engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (defaults -> YAML file -> STATUTORY_* env vars)
  3. Load the statutory rate table (built-in rates + optional YAML file)
  4. Initialize the SQLite store
  5. Create the API handler and router
  6. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Optional YAML config file ($STATUTORY_CONFIG also works)

CONFIG KEYS (file or env):
  port        HTTP server port (default: 8080)
  db_path     SQLite database path (default: statutory.db, ":memory:" ok)
  rates_file  Optional YAML statutory rate table for new tax years

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  # Built-in rates, file database
  ./server

  # Rates for a new tax year without a redeploy
  STATUTORY_RATES_FILE=./rates-2026-27.yaml ./server

SEE ALSO:
  - config/config.go: Configuration layering
  - api/server.go: Router configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/statutory-engine/api"
	"github.com/warp/statutory-engine/config"
	"github.com/warp/statutory-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "YAML config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rates, err := config.LoadRates(cfg.RatesFile)
	if err != nil {
		log.Fatalf("Failed to load statutory rates: %v", err)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(rates, store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Statutory engine listening on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
