package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/fplarchive/pipeline/external/fplapi"
	"github.com/fplarchive/pipeline/internal/config"
	"github.com/fplarchive/pipeline/internal/infrastructure/repository/postgres"
	"github.com/fplarchive/pipeline/internal/platform/logging"
	"github.com/fplarchive/pipeline/internal/platform/resilience"
	"github.com/fplarchive/pipeline/internal/usecase"
)

// App holds the wired dependencies for one pipeline process.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	DB       *sqlx.DB
	Pipeline *usecase.PipelineService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	client := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:     cfg.FPLBaseURL,
		Timeout:     cfg.FPLTimeout,
		Concurrency: cfg.FetchConcurrency,
		Retry: fplapi.RetryPolicy{
			MaxAttempts: cfg.FPLMaxRetries,
			BaseDelay:   cfg.FPLRetryBaseDelay,
		},
		Logger: logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	pipeline := usecase.NewPipelineService(
		client,
		postgres.NewSeasonRepository(db),
		postgres.NewGameweekRepository(db),
		postgres.NewTeamRepository(db),
		postgres.NewPlayerSnapshotRepository(db),
		postgres.NewFutureFixtureRepository(db),
		postgres.NewGwHistoryRepository(db),
		logger,
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Pipeline: pipeline,
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
