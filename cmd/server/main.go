/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave approval server. Handles configuration,
  dependency injection, and graceful shutdown.

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: leaveflow.db)
           Use ":memory:" for an in-memory database
  -secret  Session token signing key; falls back to LEAVEFLOW_SECRET,
           then to a dev-only default

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/leaveflow.db"

  # Run with in-memory database on another port
  ./server -port=3000 -db=":memory:"
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

	"github.com/campus/leaveflow/api"
	"github.com/campus/leaveflow/app"
	"github.com/campus/leaveflow/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "leaveflow.db", "SQLite database path")
	secret := flag.String("secret", "", "session token signing key")
	flag.Parse()

	key := *secret
	if key == "" {
		key = os.Getenv("LEAVEFLOW_SECRET")
	}
	if key == "" {
		key = "leaveflow-dev-secret"
		log.Println("WARNING: using default dev session secret; set -secret or LEAVEFLOW_SECRET")
	}

	// Initialize storage
	st, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	// Application state restores its snapshots from storage on startup.
	a := app.New(app.Config{Store: st})

	handler := api.NewHandler(a, key)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	// Start server in background
	go func() {
		log.Printf("Leave approval server listening on :%d (db: %s)", *port, *dbPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
