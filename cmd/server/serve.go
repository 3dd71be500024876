package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	jwttoken "provider-registry/internal/jwt_token"
	"provider-registry/internal/platform/config"
	"provider-registry/internal/platform/httpserver"
	"provider-registry/internal/platform/kafka"
	"provider-registry/internal/platform/logger"
	platformmetrics "provider-registry/internal/platform/metrics"
	"provider-registry/internal/platform/postgres"
	redisclient "provider-registry/internal/platform/redis"
	"provider-registry/internal/provider/cache"
	"provider-registry/internal/provider/clock"
	"provider-registry/internal/provider/handler"
	providermetrics "provider-registry/internal/provider/metrics"
	"provider-registry/internal/provider/service"
	"provider-registry/internal/provider/store"
	httptransport "provider-registry/internal/transport/http"
	audit "provider-registry/pkg/platform/audit"
	"provider-registry/pkg/platform/audit/outbox"
	"provider-registry/pkg/platform/audit/publisher"
	auditmemory "provider-registry/pkg/platform/audit/store/memory"
	auditpostgres "provider-registry/pkg/platform/audit/store/postgres"
	"provider-registry/pkg/platform/circuit"
	txcontext "provider-registry/pkg/platform/tx"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the registry HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, os.Stdout)
		},
	}
}

// registryStore is what the wiring needs from every storage backend.
type registryStore interface {
	service.ProviderStore
	providermetrics.ActiveCounter
}

// backend is the storage-dependent half of the wiring.
type backend struct {
	store registryStore
	clock service.Clock
	tx    service.StoreTx
	audit audit.Store
	// transactionalAudit is set when audit writes join the store transaction.
	transactionalAudit bool
	db                 *sql.DB
	health             []httptransport.HealthCheck
}

func serve(ctx context.Context, cfg config.Config, out io.Writer) error {
	log := logger.New(cfg.Server.LogLevel, cfg.IsDev(), out)
	slog.SetDefault(log)

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	if be.db != nil {
		defer be.db.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	auditPublisher := publisher.NewPublisher(be.audit, publisher.WithLogger(log))
	defer auditPublisher.Close()

	registryMetrics := providermetrics.New(registry)
	registryMetrics.TrackActiveProviders(be.store)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(registryMetrics),
		service.WithAuditPublisher(auditPublisher),
		service.WithTxTimeout(cfg.Server.TxTimeout),
	}
	if be.tx != nil {
		opts = append(opts, service.WithTx(be.tx))
	}
	if be.transactionalAudit {
		opts = append(opts, service.WithTransactionalAudit())
	}

	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		defer rc.Close()
		breaker := circuit.New("provider-cache", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2))
		opts = append(opts, service.WithCache(cache.New(rc.Client,
			cache.WithTTL(cfg.Redis.CacheTTL),
			cache.WithLogger(log),
			cache.WithBreaker(breaker),
		)))
		be.health = append(be.health, httptransport.HealthCheck{Name: "redis", Check: rc.Health})
	}

	svc, err := service.New(be.store, be.clock, opts...)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	providerHandler := handler.New(svc, log, jwttoken.NewJWTServiceAdapter(jwtService))

	g, gctx := errgroup.WithContext(ctx)

	if len(cfg.Kafka.Brokers) > 0 {
		relay, health, closeKafka, err := openRelay(gctx, cfg, be.db, log)
		if err != nil {
			return err
		}
		defer closeKafka()
		be.health = append(be.health, health)
		g.Go(func() error { return relay.Run(gctx) })
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:       log,
		Metrics:      platformmetrics.New(registry),
		Providers:    providerHandler,
		HealthChecks: be.health,
	})
	srv := httpserver.New(cfg.Server.Addr, router, log)

	g.Go(func() error {
		log.Info("starting provider registry",
			"addr", cfg.Server.Addr,
			"storage", cfg.Storage.Driver,
			"cache", rc != nil,
			"audit_relay", len(cfg.Kafka.Brokers) > 0,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.MigratePostgres(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		runner := txcontext.NewRunner(db, txcontext.WithLockStatement(store.WriterLockStatement))
		return &backend{
			store:              store.NewPostgresStore(db),
			clock:              clock.NewSequence(db, "provider_logical_time"),
			tx:                 newSQLStoreTx(runner, cfg.Server.TxTimeout),
			audit:              auditpostgres.New(db),
			transactionalAudit: true,
			db:                 db,
			health:             []httptransport.HealthCheck{{Name: "postgres", Check: db.PingContext}},
		}, nil

	case config.DriverSQLite:
		db, err := store.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		st := store.NewSQLiteStore(db)
		last, err := st.MaxLogicalTime(ctx)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &backend{
			store:  st,
			clock:  clock.NewLogicalAt(last),
			tx:     newSQLStoreTx(txcontext.NewRunner(db), cfg.Server.TxTimeout),
			audit:  auditmemory.NewInMemoryStore(),
			db:     db,
			health: []httptransport.HealthCheck{{Name: "sqlite", Check: db.PingContext}},
		}, nil

	default:
		return &backend{
			store: store.NewInMemoryStore(),
			clock: clock.NewLogical(),
			audit: auditmemory.NewInMemoryStore(),
		}, nil
	}
}

func openRelay(ctx context.Context, cfg config.Config, db *sql.DB, log *slog.Logger) (*outbox.Relay, httptransport.HealthCheck, func(), error) {
	client, err := kafka.NewClient(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, httptransport.HealthCheck{}, nil, fmt.Errorf("kafka client: %w", err)
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.Kafka.AuditTopic, 1, 1); err != nil {
		client.Close()
		return nil, httptransport.HealthCheck{}, nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	producer := kafka.NewProducer(client, cfg.Kafka.AuditTopic)
	relay := outbox.NewRelay(db, producer, log, outbox.WithInterval(cfg.Kafka.PollInterval))
	return relay, httptransport.HealthCheck{Name: "kafka", Check: producer.Health}, client.Close, nil
}
