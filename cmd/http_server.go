package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finito-app/expense-tracker/internal"
	"github.com/finito-app/expense-tracker/internal/expense"
	expenseMongo "github.com/finito-app/expense-tracker/internal/expense/mongo"
	expensePostgres "github.com/finito-app/expense-tracker/internal/expense/postgres"
	"github.com/finito-app/expense-tracker/internal/transport/rest"
	"github.com/finito-app/expense-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	Logger *slog.Logger
	Router *chi.Mux

	Repository expense.Repository
	Health     *rest.HealthHandler

	// whichever backend is active owns one of these
	MongoClient *mongo.Client
	DB          *sqlx.DB
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	controller := expense.NewController(deps.Repository, deps.Logger)
	handler := expense.NewHandler(controller)
	rest.RegisterAllRoutes(deps.Router, handler, deps.Health, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr, "storage", deps.Config.Storage.Driver)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		closeStorage(ctx, deps)
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.App.Env, config.Logging.Level)
	lg := logger.L()

	deps := &Dependencies{
		Config: config,
		Logger: lg,
		Router: chi.NewRouter(),
	}

	if err := initStorage(config, lg, deps); err != nil {
		return nil, err
	}

	return deps, nil
}

// initStorage wires the repository backend selected by configuration.
// The connection handle lives here for the process lifetime; the core
// only depends on a connected repository being injected.
func initStorage(cfg *internal.Config, lg *slog.Logger, deps *Dependencies) error {
	switch cfg.Storage.Driver {
	case internal.StorageDriverMongo:
		ctx, cancel := internal.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return fmt.Errorf("failed to ping mongodb: %w", err)
		}

		db := client.Database(cfg.Mongo.Database)
		deps.MongoClient = client
		deps.Repository = expenseMongo.NewExpenseRepository(db, lg)
		deps.Health = rest.NewHealthHandler("mongodb", func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		})

	case internal.StorageDriverPostgres:
		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to open gorm connection: %w", err)
		}

		deps.DB = db
		deps.Repository = expensePostgres.NewExpenseRepository(gormDB, lg)
		deps.Health = rest.NewHealthHandler("postgres", func(ctx context.Context) error {
			return db.PingContext(ctx)
		})

	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	return nil
}

// initDB opens the relational connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

func closeStorage(ctx context.Context, deps *Dependencies) {
	if deps.MongoClient != nil {
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			slog.Error("MongoDB disconnect error", "error", err)
		}
	}
	if deps.DB != nil {
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	}
}
