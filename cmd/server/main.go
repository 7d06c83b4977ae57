package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/ucalc/internal/infrastructure/config"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Server port")
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Server host")
	flag.StringVar(&cfg.Catalog.Dir, "units-dir", cfg.Catalog.Dir, "Directory of extra unit definitions")
	flag.StringVar(&cfg.Catalog.URL, "units-url", cfg.Catalog.URL, "URL of an extra unit definition document")
	flag.StringVar(&cfg.Session.StorePath, "store", cfg.Session.StorePath, "Session snapshot directory (empty keeps snapshots in memory)")
	flag.DurationVar(&cfg.Session.MaxIdle, "max-idle", cfg.Session.MaxIdle, "Close sessions idle for longer than this")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development logging")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
