package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/ImCuriosity/competition-recommendation/external/supabase"
	"github.com/ImCuriosity/competition-recommendation/internal/config"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
	"github.com/ImCuriosity/competition-recommendation/internal/infrastructure/repository/memory"
	"github.com/ImCuriosity/competition-recommendation/internal/infrastructure/repository/postgres"
	"github.com/ImCuriosity/competition-recommendation/internal/interfaces/httpapi"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/cache"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/logging"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/resilience"
	"github.com/ImCuriosity/competition-recommendation/internal/usecase"
)

// NewHTTPServer wires the selected storage backend into the HTTP API.
// The returned cleanup releases backend resources and is safe to call
// after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	competitionRepo, profileRepo, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	catalogSvc := usecase.NewCatalogService(competitionRepo, cfg.CatalogPageSize, cfg.NormalizeWorkers, store, logger)
	recommendationSvc := usecase.NewRecommendationService(profileRepo, competitionRepo, cfg.CatalogPageSize, logger)

	handler := httpapi.NewHandler(catalogSvc, recommendationSvc, httpapi.ServiceInfo{
		StoreBackend: cfg.StoreBackend,
		Version:      cfg.ServiceVersion,
	}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, httpapi.BodyCapture{
		Enabled:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		MaxBytes: cfg.UptraceRequestBodyMaxBytes,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	logger.Info("http server wired",
		"store_backend", cfg.StoreBackend,
		"cache_enabled", cfg.CacheEnabled,
		"page_size", cfg.CatalogPageSize,
	)

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (competition.Repository, profile.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memory.NewCompetitionRepository(memory.SeedCompetitions()),
			memory.NewProfileRepository(memory.SeedProfiles()),
			noop, nil

	case config.StorePostgres:
		db, err := connectPostgres(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewCompetitionRepository(db),
			postgres.NewProfileRepository(db),
			db.Close, nil

	case config.StoreSupabase:
		client := supabase.NewClient(supabase.ClientConfig{
			BaseURL: cfg.SupabaseURL,
			Key:     cfg.SupabaseKey,
			Timeout: cfg.SupabaseTimeout,
			Logger:  logger,
			Breaker: resilience.BreakerSettings{
				Enabled:    cfg.SupabaseCircuitEnabled,
				TripAfter:  cfg.SupabaseCircuitFailureCount,
				Cooldown:   cfg.SupabaseCircuitOpenTimeout,
				ProbeQuota: cfg.SupabaseCircuitHalfOpenMaxReq,
			},
		})
		return supabase.NewCompetitionRepository(client),
			supabase.NewProfileRepository(client),
			noop, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

func connectPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
