package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/adapters/notify"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/core/services"
	"github.com/SscSPs/mission_finance_app/internal/handlers"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/SscSPs/mission_finance_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/mission_finance_app/pkg/config"
	"github.com/SscSPs/mission_finance_app/pkg/database"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	// Select the notification dispatcher. Without a broker URL events are
	// logged but not published.
	var notifier portssvc.NotificationDispatcher
	if cfg.AMQPURL != "" {
		amqpDispatcher, err := notify.NewAMQPDispatcher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect notification broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer amqpDispatcher.Close()
		notifier = amqpDispatcher
		logger.Info("AMQP notification dispatcher connected", slog.String("exchange", cfg.AMQPExchange))
	} else {
		notifier = notify.NewLogDispatcher()
		logger.Info("No AMQP_URL configured, notifications will be logged only")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, notifier)

	// Background sweep that flips Pending remittances past their due date to
	// Overdue. The repository-side predicate makes repeated sweeps no-ops.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runOverdueSweep(sweepCtx, serviceContainer.Remittance, cfg.OverdueSweepInterval, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// runOverdueSweep periodically marks past-due remittances Overdue until the
// context is cancelled.
func runOverdueSweep(ctx context.Context, remittanceSvc portssvc.RemittanceSvcFacade, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := remittanceSvc.MarkOverdue(ctx, time.Now().UTC())
			if err != nil {
				logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
				continue
			}
			if count > 0 {
				logger.Info("Overdue sweep completed", slog.Int64("marked_overdue", count))
			}
		}
	}
}
