// Package app wires configuration into stores, services and the router.
// The server and the admin CLI share it so both see the same backends.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"counsel/internal/audit"
	auditkafka "counsel/internal/audit/store/kafka"
	auditmemory "counsel/internal/audit/store/memory"
	auditpostgres "counsel/internal/audit/store/postgres"
	casehandler "counsel/internal/cases/handler"
	caseservice "counsel/internal/cases/service"
	casestore "counsel/internal/cases/store"
	identityhandler "counsel/internal/identity/handler"
	identityservice "counsel/internal/identity/service"
	identitystore "counsel/internal/identity/store"
	jwttoken "counsel/internal/jwt_token"
	"counsel/internal/platform/config"
	platformmetrics "counsel/internal/platform/metrics"
	"counsel/internal/platform/postgres"
	platformredis "counsel/internal/platform/redis"
	practicehandler "counsel/internal/practice/handler"
	practiceservice "counsel/internal/practice/service"
	practicestore "counsel/internal/practice/store"
	ratelimitmetrics "counsel/internal/ratelimit/metrics"
	ratelimitmw "counsel/internal/ratelimit/middleware"
	"counsel/internal/ratelimit/store/bucket"
	"counsel/internal/representation/adapters"
	reprhandler "counsel/internal/representation/handler"
	reprmetrics "counsel/internal/representation/metrics"
	"counsel/internal/representation/service"
	"counsel/internal/representation/store/ledger"
	httptransport "counsel/internal/transport/http"
)

// auditBuffer bounds the events queued ahead of a slow sink.
const auditBuffer = 256

type identityStore interface {
	identityservice.Store
	identitystore.Writer
}

type caseStore interface {
	caseservice.Store
	casestore.Writer
}

type practiceStore interface {
	practiceservice.Store
	practicestore.Writer
}

// App holds the wired components. Close releases them in reverse order.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB    *sql.DB
	Redis *platformredis.Client

	Identity  *identityservice.Service
	Cases     *caseservice.Service
	Practice  *practiceservice.Service
	Ledger    *service.Ledger
	Projector *service.Projector
	Processor *service.Processor
	Audit     *audit.Publisher

	identityStore identityStore
	caseStore     caseStore
	practiceStore practiceStore
	limiter       ratelimitmw.Limiter
	kafka         *kgo.Client
}

// New opens the configured backends and builds the services. Metrics
// register with reg; pass nil to skip metrics.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) (_ *App, err error) {
	a := &App{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if cfg.Database.URL != "" {
		if a.DB, err = postgres.Open(ctx, cfg.Database); err != nil {
			return nil, err
		}
		a.identityStore = identitystore.NewPostgres(a.DB)
		a.caseStore = casestore.NewPostgres(a.DB)
		a.practiceStore = practicestore.NewPostgres(a.DB)
	} else {
		a.identityStore = identitystore.NewInMemory()
		a.caseStore = casestore.NewInMemory()
		a.practiceStore = practicestore.NewInMemory()
	}

	if cfg.Ledger.Backend == config.BackendRedis ||
		(cfg.RateLimit.Enabled() && cfg.RateLimit.Backend == config.BackendRedis) {
		if a.Redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
			return nil, err
		}
	}

	ledgerStore, err := a.openLedger()
	if err != nil {
		return nil, err
	}
	if cfg.RateLimit.Enabled() {
		if cfg.RateLimit.Backend == config.BackendRedis {
			a.limiter = bucket.NewRedisBucketStore(a.Redis.Client)
		} else {
			a.limiter = bucket.NewInMemoryBucketStore()
		}
	}
	sink, err := a.openAuditSink()
	if err != nil {
		return nil, err
	}
	a.Audit = audit.NewPublisher(sink, audit.WithLogger(logger), audit.WithAsyncBuffer(auditBuffer))

	var m *reprmetrics.Metrics
	if reg != nil {
		m = reprmetrics.New(reg)
	}

	a.Identity = identityservice.New(a.identityStore, identityservice.WithLogger(logger))
	a.Cases = caseservice.New(a.caseStore, caseservice.WithLogger(logger))
	a.Practice = practiceservice.New(a.practiceStore, a.Identity, practiceservice.WithLogger(logger))
	identityPort := adapters.NewIdentityAdapter(a.Identity)
	casePort := adapters.NewCaseAdapter(a.Cases)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithAuditor(a.Audit),
		service.WithStoreTimeout(cfg.Ledger.StoreTimeout),
		service.WithLookupConcurrency(cfg.Ledger.LookupConcurrency),
	}
	if a.Ledger, err = service.NewLedger(ledgerStore, identityPort, casePort, opts...); err != nil {
		return nil, err
	}
	if a.Projector, err = service.NewProjector(a.Ledger, identityPort, opts...); err != nil {
		return nil, err
	}
	if a.Processor, err = service.NewProcessor(a.Ledger, casePort, opts...); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) openLedger() (service.LedgerStore, error) {
	switch a.Config.Ledger.Backend {
	case config.BackendPostgres:
		if a.DB == nil {
			return nil, errors.New("postgres ledger requires database.url")
		}
		return ledger.NewPostgres(a.DB), nil
	case config.BackendRedis:
		return ledger.NewRedis(a.Redis.Client), nil
	default:
		return ledger.NewInMemory(), nil
	}
}

func (a *App) openAuditSink() (audit.Sink, error) {
	switch a.Config.Audit.Sink {
	case config.BackendPostgres:
		if a.DB == nil {
			return nil, errors.New("postgres audit sink requires database.url")
		}
		return auditpostgres.New(a.DB), nil
	case config.BackendKafka:
		sink, client, err := auditkafka.New(a.Config.Audit.KafkaBrokers, a.Config.Audit.KafkaTopic)
		if err != nil {
			return nil, err
		}
		a.kafka = client
		return sink, nil
	default:
		return auditmemory.New(), nil
	}
}

// Migrate applies the schema when Postgres is configured.
func (a *App) Migrate(ctx context.Context) ([]string, error) {
	if a.DB == nil {
		return nil, nil
	}
	return postgres.Migrate(ctx, a.DB)
}

// SeedDemo writes the demo prisoner, lawyers, cases and the first lawyer's
// practice records.
func (a *App) SeedDemo(ctx context.Context) error {
	if err := identitystore.SeedDemo(ctx, a.identityStore); err != nil {
		return fmt.Errorf("seed people: %w", err)
	}
	if err := casestore.SeedDemo(ctx, a.caseStore, identitystore.DemoPrisonerID); err != nil {
		return fmt.Errorf("seed cases: %w", err)
	}
	cases, err := a.caseStore.ListByPrisoner(ctx, identitystore.DemoPrisonerID)
	if err != nil {
		return fmt.Errorf("seed practice records: %w", err)
	}
	if len(cases) == 0 {
		return errors.New("seed practice records: demo prisoner has no case")
	}
	if err := practicestore.SeedDemo(ctx, a.practiceStore, identitystore.DemoLawyerID, identitystore.DemoPrisonerID, cases[0].ID); err != nil {
		return fmt.Errorf("seed practice records: %w", err)
	}
	return nil
}

// Router builds the HTTP surface. Bearer auth is enabled when a signing key
// is configured.
func (a *App) Router(reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	cfg := httptransport.RouterConfig{
		Logger:         a.Logger,
		Gatherer:       gatherer,
		RequestTimeout: a.Config.Server.RequestTimeout,
		Public:         []httptransport.Registrar{identityhandler.New(a.Identity, a.Logger)},
		Protected: []httptransport.Registrar{
			casehandler.New(a.Cases, a.Logger),
			practicehandler.New(a.Practice, a.Logger),
			reprhandler.New(a.Ledger, a.Projector, a.Processor, a.Logger),
		},
		Health: map[string]httptransport.HealthCheck{},
	}
	var limiterMetrics *ratelimitmetrics.Metrics
	if reg != nil {
		cfg.Metrics = platformmetrics.New(reg)
		limiterMetrics = ratelimitmetrics.New(reg)
	}
	if a.limiter != nil {
		rl := a.Config.RateLimit
		cfg.RateLimit = ratelimitmw.New(a.limiter, rl.Requests, rl.Window,
			ratelimitmw.WithLogger(a.Logger),
			ratelimitmw.WithMetrics(limiterMetrics),
		).RateLimit
	}
	if a.Config.Auth.Enabled() {
		tokens := jwttoken.NewService(a.Config.Auth.SigningKey, a.Config.Auth.Issuer)
		cfg.Validator = jwttoken.NewMiddlewareAdapter(tokens)
	}
	if a.DB != nil {
		cfg.Health["postgres"] = a.DB.PingContext
	}
	if a.Redis != nil {
		cfg.Health["redis"] = a.Redis.Health
	}
	return httptransport.NewRouter(cfg)
}

func (a *App) Close() {
	if a.Audit != nil {
		a.Audit.Close()
	}
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
