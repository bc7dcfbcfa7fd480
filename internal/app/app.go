package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"PetitionRouter/internal/analysis"
	"PetitionRouter/internal/config"
	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/infrastructure/httpapi"
	"PetitionRouter/internal/infrastructure/scheduler"
	"PetitionRouter/internal/infrastructure/storage"
	"PetitionRouter/internal/infrastructure/webhook"
	"PetitionRouter/internal/logging"
	"PetitionRouter/internal/nlp/classify"
	"PetitionRouter/internal/ports"
	"PetitionRouter/internal/usecase"
)

// Application wires config to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *sql.DB
	store   *storage.Store
	server  *httpapi.Server
	sweeper *usecase.Sweeper
}

// New builds a runnable application instance. Classifier training failure
// aborts construction: the service cannot run without a fitted model.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	analyzer, err := analysis.New(analysis.Config{UseStemming: cfg.Analysis.UseStemming})
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	db, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := storage.NewStore(db, cfg.Database.Driver)

	var alerts ports.AlertSink
	if cfg.Alerts.WebhookURL != "" {
		alerts = webhook.NewAlertSink(cfg.Alerts.WebhookURL)
	}

	service := usecase.NewService(usecase.ServiceDeps{
		Analyzer:      analyzer,
		Petitions:     store.Petitions,
		Departments:   store.Departments,
		Notifications: store.Notifications,
		Alerts:        alerts,
		Logger:        baseLogger.With("component", "service"),
	})

	escalator := usecase.NewEscalator(store.Petitions, store.Notifications, alerts,
		cfg.Escalation.MaxAge.Std(), baseLogger.With("component", "escalation"))
	sweeper := usecase.NewSweeper(scheduler.NewIntervalScheduler(cfg.Escalation.Interval.Std()), escalator)

	server := httpapi.NewServer(service, baseLogger.With("component", "http"))

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		db:      db,
		store:   store,
		server:  server,
		sweeper: sweeper,
	}, nil
}

// Run migrates the schema, seeds departments, starts the escalation sweep
// and serves HTTP until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := storage.Migrate(ctx, a.db, a.cfg.Database.Driver); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := a.store.Departments.Seed(ctx, seedDepartments()); err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}

	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("start escalation sweep: %w", err)
	}
	defer func() { _ = a.sweeper.Stop(context.Background()) }()

	httpServer := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.server.Router(a.cfg.Server.CORSOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}

	return nil
}

// seedDepartments derives the department roster from the category labels so
// routing lookups always resolve.
func seedDepartments() []domain.Department {
	now := time.Now().UTC()
	departments := make([]domain.Department, 0, classify.NumCategories)
	for _, category := range classify.Categories() {
		name := category.String()
		slug := strings.ReplaceAll(strings.ToLower(name), " ", ".")
		departments = append(departments, domain.Department{
			Name:        name,
			Description: fmt.Sprintf("Handles %s grievances", strings.ToLower(name)),
			Email:       slug + "@civic.local",
			CreatedAt:   now,
		})
	}
	return departments
}
