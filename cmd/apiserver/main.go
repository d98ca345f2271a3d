// Package main runs the bingo companion REST API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jdelacruz/bingo-companion/internal/api"
	"github.com/jdelacruz/bingo-companion/internal/config"
	"github.com/jdelacruz/bingo-companion/internal/events"
	"github.com/jdelacruz/bingo-companion/internal/feed"
	"github.com/jdelacruz/bingo-companion/internal/game"
	"github.com/jdelacruz/bingo-companion/internal/storage"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	dbPath      = flag.String("db-path", "", "Database path (default: ~/.bingo-companion/bingo.db)")
	feedPath    = flag.String("feed", "", "Called-number feed file to tail (overrides config)")
	feedSession = flag.String("feed-session", "", "Session ID the feed applies numbers to")
)

func main() {
	flag.Parse()

	fmt.Println("Bingo Companion - REST API Server")
	fmt.Println("=================================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *feedPath != "" {
		cfg.Feed.FilePath = *feedPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	finalDBPath := cfg.Database.Path
	if finalDBPath == "" {
		finalDBPath, err = config.DefaultDatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(finalDBPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	fmt.Printf("Database: %s\n", finalDBPath)

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	if timeout, err := cfg.GetBusyTimeout(); err == nil {
		dbConfig.BusyTimeout = timeout
	}
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	dispatcher := events.NewDispatcher()
	service := game.NewService(
		repository.NewCardRepository(db.Conn()),
		repository.NewPatternRepository(db.Conn()),
		repository.NewSessionRepository(db.Conn()),
		dispatcher,
	)
	service.SetClosestLimit(cfg.Analysis.ClosestLimit)

	ctx := context.Background()
	if err := service.EnsureBuiltinPatterns(ctx); err != nil {
		log.Fatalf("Failed to seed builtin patterns: %v", err)
	}

	server := api.NewServer(&api.Config{Port: cfg.Server.Port}, service)
	dispatcher.Register(server.NewHubObserver())

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	// Optionally tail an external feed of called numbers
	var watcher *feed.Watcher
	if cfg.Feed.FilePath != "" {
		if *feedSession == "" {
			log.Fatal("A feed file requires -feed-session")
		}
		watcher = feed.NewWatcher(cfg.Feed.FilePath, *feedSession, service, cfg.Feed.RateRPS)
		go func() {
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("Feed watcher stopped: %v", err)
			}
		}()
		fmt.Printf("Feed: %s -> session %s\n", cfg.Feed.FilePath, *feedSession)
	}

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	if watcher != nil {
		watcher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}
