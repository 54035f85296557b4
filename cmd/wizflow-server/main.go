// Package main is the entry point for the wizflow Control Session server:
// a long-running WebSocket host, Redis-backed, fronting one Registry
// shared by every connection.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Hemant2A2/Wizflow/internal/adapters/blueprint"
	"github.com/Hemant2A2/Wizflow/internal/adapters/logger"
	"github.com/Hemant2A2/Wizflow/internal/adapters/rediscache"
	"github.com/Hemant2A2/Wizflow/internal/adapters/wsforward"
	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/build"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Best-effort: WIZFLOW_REDIS_ADDR/SENDER_EMAIL/APP_PASSWORD may already
	// be set by the environment (CI, systemd) with no .env file present.
	_ = godotenv.Load()

	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("wizflow-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", ":8080", "HTTP listen address")
	path := fs.String("path", "/ws", "WebSocket endpoint path")
	showVersion := fs.Bool("version", false, "Print the application version")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		_, _ = fmt.Fprintf(os.Stdout, "wizflow-server version %s\n", build.Version)
		return 0
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.New()

	redisAddr := os.Getenv(rediscache.EnvRedisAddr)
	if redisAddr == "" {
		redisAddr = rediscache.DefaultAddr
	}
	registry, bus := app.NewServerRegistry(redisAddr, log)
	loader := blueprint.NewLoader(log)

	mux := http.NewServeMux()
	mux.Handle(*path, wsforward.NewHandler(registry, bus, loader, log))

	srv := &http.Server{Addr: *addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err)
			return 1
		}
		return 0
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error(err)
			return 1
		}
		return 0
	}
}
