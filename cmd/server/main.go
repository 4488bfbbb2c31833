package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ixcbridge/internal/bulksync"
	syncmetrics "ixcbridge/internal/bulksync/metrics"
	cataloghandler "ixcbridge/internal/catalog/handler"
	catalogstore "ixcbridge/internal/catalog/store"
	inventoryhandler "ixcbridge/internal/inventory/handler"
	inventoryservice "ixcbridge/internal/inventory/service"
	inventorystore "ixcbridge/internal/inventory/store"
	jwttoken "ixcbridge/internal/jwt_token"
	"ixcbridge/internal/monitor"
	monitorhandler "ixcbridge/internal/monitor/handler"
	monitormetrics "ixcbridge/internal/monitor/metrics"
	"ixcbridge/internal/platform/config"
	"ixcbridge/internal/platform/events"
	"ixcbridge/internal/platform/feed"
	"ixcbridge/internal/platform/httpserver"
	"ixcbridge/internal/platform/logger"
	"ixcbridge/internal/platform/metrics"
	"ixcbridge/internal/platform/postgres"
	"ixcbridge/internal/platform/redis"
	"ixcbridge/internal/proxy"
	proxymetrics "ixcbridge/internal/proxy/metrics"
	"ixcbridge/internal/reconcile"
	reconcilemetrics "ixcbridge/internal/reconcile/metrics"
	"ixcbridge/internal/tenant"
	tenantmetrics "ixcbridge/internal/tenant/metrics"
	tenantservice "ixcbridge/internal/tenant/service"
	tenantstore "ixcbridge/internal/tenant/store"
	httptransport "ixcbridge/internal/transport/http"
	"ixcbridge/internal/upstream"
	upstreammetrics "ixcbridge/internal/upstream/metrics"
	id "ixcbridge/pkg/domain"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("ixcbridge exited", "error", err)
		os.Exit(1)
	}
}

// stores groups the persistence backends chosen at startup.
type stores struct {
	tenants     tenantservice.Store
	catalog     catalogStore
	inventory   inventoryservice.Store
	inventoryTx inventoryservice.StoreTx
	tx          tenantservice.Transactor
}

// catalogStore is the union of catalog operations the components use.
type catalogStore interface {
	bulksync.CatalogWriter
	reconcile.CatalogLookup
	tenantservice.CatalogCleaner
	cataloghandler.Lister
}

func newStores(db *sql.DB) *stores {
	if db == nil {
		inventory := inventorystore.NewInMemory()
		return &stores{
			tenants:     tenantstore.NewInMemory(),
			catalog:     catalogstore.NewInMemory(),
			inventory:   inventory,
			inventoryTx: inventoryservice.NewLockedTx(inventory),
		}
	}
	inventory := inventorystore.NewPostgres(db)
	return &stores{
		tenants:     tenantstore.NewPostgres(db),
		catalog:     catalogstore.NewPostgres(db),
		inventory:   inventory,
		inventoryTx: newInventoryPostgresTx(db, inventory),
		tx:          postgres.Transactor{DB: db},
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httptransport.HealthCheck{}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		checks["postgres"] = db.PingContext
		log.InfoContext(ctx, "using postgres stores")
	} else {
		log.WarnContext(ctx, "DATABASE_URL not set, using in-memory stores")
	}
	st := newStores(db)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var locker *redis.Locker
	if redisClient != nil {
		defer redisClient.Close()
		locker = redis.NewLocker(redisClient, cfg.Monitor.LockTTL)
		checks["redis"] = redisClient.Health
	}

	publisher, err := events.New(cfg.Kafka, log)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.Replicas); err != nil {
			log.WarnContext(ctx, "could not ensure alert topic", "topic", publisher.Topic(), "error", err)
		}
	}

	hub := feed.NewHub(log)
	go hub.Run(ctx)

	upstreamClient, err := upstream.New(cfg.Upstream.RelayBase,
		upstream.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.RequestTimeout}),
		upstream.WithLogger(log),
		upstream.WithMetrics(upstreammetrics.New()),
	)
	if err != nil {
		return fmt.Errorf("upstream client: %w", err)
	}

	orchestrator := bulksync.New(upstreamClient, st.catalog,
		bulksync.WithLogger(log),
		bulksync.WithMetrics(syncmetrics.New()),
	)
	jobs := bulksync.NewJobs(orchestrator, log)

	inventoryService := inventoryservice.New(st.inventory,
		inventoryservice.WithTx(st.inventoryTx),
		inventoryservice.WithLogger(log),
	)

	tenantOpts := []tenantservice.Option{
		tenantservice.WithConnectionTester(upstreamClient),
		tenantservice.WithSyncRunner(jobs),
		tenantservice.WithLogger(log),
		tenantservice.WithMetrics(tenantmetrics.New()),
	}
	if st.tx != nil {
		tenantOpts = append(tenantOpts, tenantservice.WithTransactor(st.tx))
	}
	tenantService := tenant.NewService(st.tenants, st.catalog, tenantOpts...)

	resolverOpts := []reconcile.Option{
		reconcile.WithConcurrency(cfg.Monitor.Concurrency),
		reconcile.WithLogger(log),
		reconcile.WithMetrics(reconcilemetrics.New()),
	}
	if cfg.Monitor.CorrectLinks {
		resolverOpts = append(resolverOpts, reconcile.WithLinkCorrector(inventoryService))
	}
	resolver := reconcile.New(st.catalog, upstreamClient, resolverOpts...)

	monitorOwner, err := monitorAccount(cfg.Monitor.AccountID)
	if err != nil {
		return err
	}
	monitorOpts := []monitor.Option{
		monitor.WithSchedule(cfg.Monitor.WarmUp, cfg.Monitor.Interval),
		monitor.WithFeed(hub),
		monitor.WithLogger(log),
		monitor.WithMetrics(monitormetrics.New()),
	}
	if locker != nil {
		monitorOpts = append(monitorOpts, monitor.WithLocker(locker))
	}
	if publisher != nil {
		monitorOpts = append(monitorOpts, monitor.WithPublisher(publisher))
	}
	contractMonitor := monitor.New(
		monitor.NewAccountTenants(tenantService, monitorOwner),
		jobs,
		inventoryService,
		resolver,
		monitorOpts...,
	)

	relay := proxy.New(proxy.WithLogger(log), proxy.WithMetrics(proxymetrics.New()))
	router := httptransport.NewRouter(httptransport.Config{
		Logger:    log,
		Metrics:   metrics.New(),
		Validator: jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer)),
		Relay:     relay.Mount(httptransport.RelayPrefix),
		Checks:    checks,
		Handlers: []httptransport.Registrar{
			tenant.NewHandler(tenantService, log),
			cataloghandler.New(st.catalog, tenantService, log),
			inventoryhandler.New(inventoryService, log),
			monitorhandler.New(contractMonitor, hub, log),
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router)
	serverErr := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting ixcbridge", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	if cfg.Monitor.Enabled {
		if monitorOwner.IsNil() {
			log.WarnContext(ctx, "MONITOR_ACCOUNT_ID not set, contract monitor will find no tenant")
		}
		contractMonitor.Start(ctx)
	}

	select {
	case <-ctx.Done():
		log.InfoContext(ctx, "shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			contractMonitor.Stop()
			return fmt.Errorf("http server: %w", err)
		}
	}

	contractMonitor.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "graceful shutdown failed", "error", err)
	}
	waitFor(shutdownCtx, log, contractMonitor.Wait, jobs.Wait)
	log.InfoContext(shutdownCtx, "shutdown complete")
	return nil
}

// monitorAccount parses MONITOR_ACCOUNT_ID; empty leaves the monitor unbound.
func monitorAccount(raw string) (id.AccountID, error) {
	if raw == "" {
		return id.AccountID{}, nil
	}
	owner, err := id.ParseAccountID(raw)
	if err != nil {
		return id.AccountID{}, fmt.Errorf("MONITOR_ACCOUNT_ID: %w", err)
	}
	return owner, nil
}

// waitFor blocks until every wait returns or ctx expires.
func waitFor(ctx context.Context, log *slog.Logger, waits ...func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, wait := range waits {
			wait()
		}
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.WarnContext(ctx, "background work still running at shutdown")
	}
}
