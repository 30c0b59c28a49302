package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kontorly/worksearch/internal/api/handlers"
	"github.com/kontorly/worksearch/internal/config"
	"github.com/kontorly/worksearch/internal/jobs"
	"github.com/kontorly/worksearch/internal/msgraph"
	"github.com/kontorly/worksearch/internal/provider"
	"github.com/kontorly/worksearch/internal/repository"
	"github.com/kontorly/worksearch/internal/server"
	"github.com/kontorly/worksearch/internal/service"
	"github.com/kontorly/worksearch/internal/spelling"
	"github.com/kontorly/worksearch/internal/telemetry"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the search API server",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if !cfg.HasGraph() {
		return fmt.Errorf("graph credentials not configured: WORKSEARCH_GRAPH_TENANT_ID, WORKSEARCH_GRAPH_CLIENT_ID and WORKSEARCH_GRAPH_CLIENT_SECRET required")
	}
	graph := msgraph.NewClient(ctx, msgraph.Config{
		TenantID:     cfg.GraphTenantID,
		ClientID:     cfg.GraphClientID,
		ClientSecret: cfg.GraphClientSecret,
		BaseURL:      cfg.GraphBaseURL,
	})

	dict := spelling.DefaultDictionary()
	if cfg.DictionaryPath != "" {
		overrides, err := spelling.LoadDictionaryFile(cfg.DictionaryPath)
		if err != nil {
			return fmt.Errorf("failed to load dictionary overrides: %w", err)
		}
		dict = dict.Merge(overrides)
		log.Printf("loaded dictionary overrides from %s", cfg.DictionaryPath)
	}

	workspaceRepo := repository.NewWorkspaceResourceRepository(pool)
	searchLogRepo := repository.NewSearchLogRepository(pool)

	filesProvider := provider.NewFilesProvider(graph)
	emailProvider := provider.NewEmailProvider(graph)
	teamsProvider := provider.NewTeamsProvider(graph, cfg.TeamsCacheTTL)

	searchSvc := service.NewSearchService(service.SearchServiceConfig{
		Providers:       []provider.SearchProvider{filesProvider, emailProvider, teamsProvider},
		Files:           filesProvider,
		Workspaces:      workspaceRepo,
		Corrector:       spelling.NewCorrector(dict),
		Logs:            searchLogRepo,
		ProviderTimeout: cfg.ProviderTimeout,
	})

	retention := jobs.NewWorker(jobs.NewRetentionProcessor(searchLogRepo, cfg.SearchLogMaxAge), cfg.RetentionInterval)
	go retention.Start(ctx)

	router := server.NewRouter(server.RouterConfig{
		ServiceKey:       cfg.ServiceKey,
		SearchHandler:    handlers.NewSearchHandler(searchSvc),
		WorkspaceHandler: handlers.NewWorkspaceHandler(workspaceRepo),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	retention.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	switch {
	case err == migrate.ErrNilVersion:
		log.Println("migrations: database is up to date (no migrations applied)")
	case dirty:
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	default:
		log.Printf("migrations: database at version %d", version)
	}

	return nil
}
