// Package main serves the TaskFlow JSON API.
// It shares todo.Service and the SQLite store with the desktop app and CLI,
// so the business logic lives in one place.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MihkelHunter/taskflow/internal/config"
	"github.com/MihkelHunter/taskflow/internal/httpapi"
	"github.com/MihkelHunter/taskflow/internal/logging"
	"github.com/MihkelHunter/taskflow/internal/store"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config.toml")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)

	st, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	svc := todo.NewService(st, todo.WithLogger(logger))
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           httpapi.New(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Web.Addr, "db", cfg.Storage.Path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
