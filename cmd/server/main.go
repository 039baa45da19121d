/*
main.go - Application entry point

PURPOSE:
  Starts the portal server: both the devotional portal API and the HR
  console API on one listener. Handles configuration, backend selection,
  and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (optional .env file, then environment)
  2. Open the storage backend (backend.go)
  3. Create API handler and router
  4. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -env    Path of an optional .env file (default: .env)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (SHUTDOWN_TIMEOUT)
  3. Close the storage backend
  4. Exit

EXAMPLES:
  # Fixture data, no database
  ./server

  # SQLite file, seeded on first start
  STORAGE_BACKEND=sql DATABASE_URL=./data/portal.db ./server

  # Quran content from the upstream API
  STORAGE_BACKEND=proxy ./server

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/portal/api"
	"github.com/warp/portal/config"
)

func main() {
	envFile := flag.String("env", ".env", "Path of an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	store, closeStore, err := openStorage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Backend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("Closing storage: %v", err)
		}
	}()

	handler := api.NewHandler(store, api.WithBcryptCost(cfg.BcryptCost))
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s (%s storage)", cfg.Addr(), cfg.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
