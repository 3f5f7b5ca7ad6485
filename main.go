package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amund211/slumber/internal/adapters/cache"
	"github.com/Amund211/slumber/internal/adapters/database"
	"github.com/Amund211/slumber/internal/adapters/sessionrepository"
	"github.com/Amund211/slumber/internal/app"
	"github.com/Amund211/slumber/internal/config"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/irregularity"
	"github.com/Amund211/slumber/internal/logging"
	"github.com/Amund211/slumber/internal/ports"
	"github.com/Amund211/slumber/internal/reporting"
	"github.com/Amund211/slumber/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "golang.org/x/crypto/x509roots/fallback"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "slumber.app"
const STAGING_DOMAIN_SUFFIX = "slumber-staging.pages.dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instanceID := uuid.New().String()
	logger := logging.NewRootLogger(os.Stdout, "").With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger = logging.NewRootLogger(os.Stdout, config.GCPProjectID()).With("instanceID", instanceID)
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if config.OTelEnabled() {
		shutdownOTel, err := telemetry.SetupOTelSDK(ctx, telemetry.ServiceName)
		if err != nil {
			fail("Failed to set up OpenTelemetry", "error", err.Error())
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(shutdownCtx); err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	var sessionRepo sessionrepository.SessionRepository
	logger.Info("Initializing database connection")
	db, err := database.NewCloudsqlPostgresDatabase(config)
	switch {
	case err == nil:
		logger.Info("Initialized database connection")

		repositorySchemaName := database.GetSchemaName(!config.IsProduction())

		err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, repositorySchemaName)
		if err != nil {
			fail("Failed to migrate database", "error", err.Error())
		}

		sessionRepo = sessionrepository.NewPostgres(db, repositorySchemaName)
		logger.Info("Initialized SessionRepository")
	case config.IsDevelopment():
		logger.Warn("Failed to connect to database. Falling back to in-memory SessionRepository", "error", err.Error())
		sessionRepo = sessionrepository.NewInMemory()
	default:
		fail("Failed to initialize database connection", "error", err.Error())
	}

	reportCache := cache.NewTTLCache[domain.RegularityReport](config.ReportCacheTTL())

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX, STAGING_DOMAIN_SUFFIX)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	storeSessions := app.BuildStoreSessions(sessionRepo)
	getRegularityReport := app.BuildGetRegularityReport(sessionRepo, reportCache, irregularity.DefaultWeights)
	getRecordIrregularity := app.BuildGetRecordIrregularity(sessionRepo)
	getDayVectors := app.BuildGetDayVectors(sessionRepo)

	mux := http.NewServeMux()

	mux.HandleFunc(
		"OPTIONS /v1/sessions",
		ports.BuildCORSHandler(allowedOrigins),
	)
	mux.HandleFunc(
		"POST /v1/sessions",
		ports.MakeStoreSessionsHandler(
			storeSessions,
			ports.DefaultRateLimits,
			allowedOrigins,
			logger.With("port", "sessions"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc(
		"OPTIONS /v1/regularity",
		ports.BuildCORSHandler(allowedOrigins),
	)
	mux.HandleFunc(
		"POST /v1/regularity",
		ports.MakeGetRegularityReportHandler(
			getRegularityReport,
			config.DefaultUseUTC(),
			ports.DefaultRateLimits,
			allowedOrigins,
			logger.With("port", "regularity"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc(
		"OPTIONS /v1/regularity/record",
		ports.BuildCORSHandler(allowedOrigins),
	)
	mux.HandleFunc(
		"POST /v1/regularity/record",
		ports.MakeGetRecordIrregularityHandler(
			getRecordIrregularity,
			ports.DefaultRateLimits,
			allowedOrigins,
			logger.With("port", "record"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc(
		"OPTIONS /v1/dayvectors",
		ports.BuildCORSHandler(allowedOrigins),
	)
	mux.HandleFunc(
		"POST /v1/dayvectors",
		ports.MakeGetDayVectorsHandler(
			getDayVectors,
			config.DefaultUseUTC(),
			ports.DefaultRateLimits,
			allowedOrigins,
			logger.With("port", "dayvectors"),
			sentryMiddleware,
		),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port()),
		Handler:           otelhttp.NewHandler(mux, "slumber"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err.Error())
		}
	}()

	logger.Info("Init complete")
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
