/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the small-business engine server. Handles
  configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse flags
  2. Open SQLite store (auto-migrates schema)
  3. Seed demo data on first run (empty catalog)
  4. Wire the transaction engine and HTTP handlers
  5. Start the server with graceful shutdown

CONFIGURATION:
  Flags take their defaults from the environment (.env supported):
    -port    PORT      HTTP server port (default 8080)
    -db      DB_PATH   SQLite database path (default pyme.db;
                       use ":memory:" for in-memory)
             TAX_RATE  Flat tax multiplier (default 0.19)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain active requests
  (30s timeout), close the database, exit.

EXAMPLES:
  ./server -db="./data/pyme.db"
  ./server -db=":memory:" -port=3000
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
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/pyme/commerce-engine/api"
	"github.com/pyme/commerce-engine/commerce"
	"github.com/pyme/commerce-engine/store/sqlite"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "pyme.db"), "SQLite database path")
	flag.Parse()

	taxRate := commerce.DefaultTaxRate
	if v := os.Getenv("TAX_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("Invalid TAX_RATE %q: %v", v, err)
		}
		taxRate = rate
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Seed the demo dataset on first run so the dashboard has data.
	ctx := context.Background()
	empty, err := store.IsEmpty(ctx)
	if err != nil {
		log.Fatalf("Failed to inspect database: %v", err)
	}
	if empty {
		if err := api.SeedDemo(ctx, store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("Seeded demo data")
	}

	engine := commerce.NewEngine(store, commerce.WithTaxRate(taxRate))
	handler := api.NewHandler(store, engine)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
