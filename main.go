package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scamgraph/feature"
	"scamgraph/graph"
	"scamgraph/risk"
	"scamgraph/server"
	"scamgraph/typosquat"
)

func main() {
	cfg := LoadConfig()

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	}
	slog.SetDefault(slog.New(handler))

	var extractor feature.Extractor
	if cfg.Synthetic {
		slog.Info("synthetic extraction mode enabled, no live lookups will be made")
		extractor = &feature.SyntheticExtractor{}
	} else {
		extractor = feature.NewLiveExtractor(cfg.DNSServer, feature.NewContentProbe())
	}

	srv := server.New(
		extractor,
		risk.NewDefaultEngine(),
		graph.NewStore(),
		typosquat.NewDNSResolver(cfg.DNSServer),
		typosquat.Options{},
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("scamgraph listening", "port", cfg.Port, "synthetic", cfg.Synthetic)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
