package app

import (
	"fmt"
	"net/http"

	"github.com/acitysports/sports-backend/internal/config"
	"github.com/acitysports/sports-backend/internal/infrastructure/cms"
	"github.com/acitysports/sports-backend/internal/infrastructure/repository/postgres"
	"github.com/acitysports/sports-backend/internal/interfaces/httpapi"
	idgen "github.com/acitysports/sports-backend/internal/platform/id"
	"github.com/acitysports/sports-backend/internal/platform/logging"
	"github.com/acitysports/sports-backend/internal/platform/resilience"
	"github.com/acitysports/sports-backend/internal/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dbURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return db, nil
}

func NewHTTPServer(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sportRepo := postgres.NewSportRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	cmsClient := cms.NewClient(cms.ClientConfig{
		ProjectID:  cfg.SanityProjectID,
		Dataset:    cfg.SanityDataset,
		APIVersion: cfg.SanityAPIVersion,
		Token:      cfg.SanityToken,
		Timeout:    cfg.SanityTimeout,
		MaxRetries: cfg.SanityMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitSettings{
			FailureThreshold: cfg.SanityCircuitFailureCount,
			Cooldown:         cfg.SanityCircuitOpenTimeout,
			HalfOpenProbes:   cfg.SanityCircuitHalfOpenMaxReq,
		},
	})

	sportSvc := usecase.NewSportService(sportRepo, idgen.NewRandomGenerator())
	seasonSvc := usecase.NewSeasonService(seasonRepo, cmsClient, logger)
	teamSvc := usecase.NewTeamService(teamRepo, sportSvc)
	playerSvc := usecase.NewPlayerService(playerRepo, sportSvc)
	matchSvc := usecase.NewMatchService(matchRepo, seasonSvc, logger)

	dispatcher := usecase.NewDefaultWebhookDispatcher(teamSvc, playerSvc, seasonSvc, matchSvc, logger)
	resyncSvc := usecase.NewResyncService(cmsClient, dispatcher, cfg.ResyncMaxWorkers, logger)

	handler := httpapi.NewHandler(sportSvc, seasonSvc, teamSvc, playerSvc, matchSvc, dispatcher, resyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalSyncToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
