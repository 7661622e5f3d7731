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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lead-digest/internal/api"
	"lead-digest/internal/config"
	"lead-digest/internal/digest"
	"lead-digest/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file (default $LEAD_DIGEST_CONFIG)")
	flag.Parse()

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	l := logger.NewWithOptions(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer l.Close()

	// The home page is read once; a missing file is a startup error.
	page, err := os.ReadFile(cfg.Server.StaticPage)
	if err != nil {
		l.Errorf("read static page: %v", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	svc := digest.NewFromConfig(cfg, l)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(svc, page, l),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		l.Infof("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}
