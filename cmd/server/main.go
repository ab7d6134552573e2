package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nkrishang/invoicepad/internal/config"
	"github.com/nkrishang/invoicepad/internal/db"
	"github.com/nkrishang/invoicepad/internal/draft"
	"github.com/nkrishang/invoicepad/internal/notify"
	"github.com/nkrishang/invoicepad/internal/server"
	"github.com/nkrishang/invoicepad/internal/session"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}
	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)

	store := draft.NewStore(dbConn)
	sess := session.New(store, notify.NewCenter())
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(dbConn, sess)}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	// Flush any edit still waiting out the debounce window.
	if err := sess.Close(); err != nil {
		log.Printf("Final draft save failed: %v", err)
	}
	log.Println("Server gracefully stopped")
}
