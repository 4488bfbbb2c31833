// Command devproxy is the development front door: relay traffic under
// /api/ixc goes to tenant hosts, everything else to the front-end dev server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ixcbridge/internal/platform/config"
	"ixcbridge/internal/platform/httpserver"
	"ixcbridge/internal/platform/logger"
	"ixcbridge/internal/proxy"
	httptransport "ixcbridge/internal/transport/http"
	"ixcbridge/pkg/platform/middleware/request"
)

func main() {
	if err := run(); err != nil {
		slog.Error("devproxy exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.LogLevel)

	devServer, err := url.Parse(cfg.Server.DevUpstream)
	if err != nil {
		return fmt.Errorf("DEV_UPSTREAM_URL: %w", err)
	}

	relay := proxy.New(proxy.WithLogger(log))
	handler := relay.Intercept(httptransport.RelayPrefix, httputil.NewSingleHostReverseProxy(devServer))
	handler = request.Logger(log)(handler)
	handler = request.Recovery(log)(handler)
	handler = request.RequestID(handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg.Server.Addr, handler)
	serverErr := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting devproxy",
			"addr", cfg.Server.Addr,
			"dev_upstream", devServer.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
