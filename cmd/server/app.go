package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/openlot/dealership-api/internal/config"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/platform/postgres"
	"github.com/openlot/dealership-api/internal/service"
	"github.com/openlot/dealership-api/internal/service/auth"
	"github.com/openlot/dealership-api/internal/store"
)

// application holds the shared dependencies of the server: configuration,
// logger, database handle, stores and services.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	carStore      store.CarStore
	customerStore store.CustomerStore
	employeeStore store.EmployeeStore
	serviceStore  store.ServiceStore

	saleService *service.SaleService

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
}

// newApplication loads configuration, sets up logging, connects to the
// database, applies pending migrations and wires the stores and services.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	carStore := postgres.NewPostgresCarStore(db, appLogger)
	saleStore := postgres.NewPostgresSaleStore(db, appLogger)

	return &application{
		config:         cfg,
		logger:         appLogger,
		db:             db,
		carStore:       carStore,
		customerStore:  postgres.NewPostgresCustomerStore(db, appLogger),
		employeeStore:  postgres.NewPostgresEmployeeStore(db, appLogger),
		serviceStore:   postgres.NewPostgresServiceStore(db, appLogger),
		saleService:    service.NewSaleService(saleStore, carStore, appLogger),
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
