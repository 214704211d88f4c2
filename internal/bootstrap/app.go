package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/locvowork/hrrecords/internal/config"
	"github.com/locvowork/hrrecords/internal/database"
	"github.com/locvowork/hrrecords/internal/export"
	"github.com/locvowork/hrrecords/internal/handler"
	"github.com/locvowork/hrrecords/internal/ingestion"
	"github.com/locvowork/hrrecords/internal/logger"
	"github.com/locvowork/hrrecords/internal/service"
	"github.com/locvowork/hrrecords/internal/validation"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB

	Tx        *database.TxManager
	Employees service.EmployeeService
	Importer  *ingestion.Pipeline
	Exporter  *export.Exporter
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize database connection
	dbConfig := database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	if config.DefaultEnvConfig.DB_AUTO_MIGRATE {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize dependencies
	a.Exporter, err = export.NewExporter(config.DefaultEnvConfig.EXPORT_CONFIG_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export layout: %w", err)
	}
	validator := validation.NewEmployeeValidator()
	a.Tx = database.NewTxManager(db)
	a.Employees = service.NewEmployeeService(a.Tx, service.NewQueryPlanner(), validator)
	a.Importer = ingestion.NewPipeline(a.Tx, validator)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(
		handler.NewEmployeeHandler(a.Employees, a.Exporter),
		handler.NewUploadHandler(a.Importer),
		handler.NewHealthHandler(db),
	)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(requestLogger)
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(middleware.BodyLimit(config.DefaultEnvConfig.UPLOAD_MAX_SIZE))
}

func (a *App) RegisterRoutes(empHandler *handler.EmployeeHandler, uploadHandler *handler.UploadHandler, healthHandler *handler.HealthHandler) {
	a.Echo.GET("/health", healthHandler.HealthHandler)

	employees := a.Echo.Group("/employees")
	employees.GET("", empHandler.ListHandler)
	employees.GET("/export", empHandler.ExportHandler)
	employees.GET("/:id", empHandler.GetHandler)
	employees.POST("", empHandler.CreateHandler)
	employees.PUT("", empHandler.UpdateHandler)
	employees.DELETE("/:id", empHandler.DeleteHandler)
	employees.POST("/upload", uploadHandler.UploadHandler)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		addr := ":" + config.DefaultEnvConfig.APP_PORT
		logger.InfoLog(gctx, "HTTP server listening on %s", addr)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		logger.InfoLog(ctx, "Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultEnvConfig.SHUTDOWN_TIMEOUT)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// requestLogger attaches the request id to the logger carried by the request context.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		ctx := logger.WithLogger(c.Request().Context(), map[string]interface{}{"request_id": id})
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
