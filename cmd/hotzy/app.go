package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/whitewolfwitcher/hotzy-orders/internal/auth"
	"github.com/whitewolfwitcher/hotzy-orders/internal/config"
	"github.com/whitewolfwitcher/hotzy-orders/internal/handlers"
	"github.com/whitewolfwitcher/hotzy-orders/internal/mailer"
	"github.com/whitewolfwitcher/hotzy-orders/internal/migrations"
	"github.com/whitewolfwitcher/hotzy-orders/internal/renderer"
	"github.com/whitewolfwitcher/hotzy-orders/internal/services"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
)

// App структура для управления приложением и его зависимостями.
type App struct {
	cfg    *config.Config
	dbPool *pgxpool.Pool
	echo   *echo.Echo
	logger *zap.SugaredLogger
	coord  *services.LifecycleCoordinator

	// Handlers
	orderHandler   *handlers.OrderHandler
	pdfHandler     *handlers.PDFHandler
	webhookHandler *handlers.WebhookHandler
}

// NewApp создаёт и инициализирует новое приложение.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initDependencies()
	app.initServer()

	return app, nil
}

// initDatabase инициализирует подключение к базе данных и выполняет миграции.
func (app *App) initDatabase(ctx context.Context) error {
	app.logger.Info("running database migrations")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("migrations completed")

	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	app.logger.Info("connected to database")

	return nil
}

// initDependencies инициализирует все зависимости приложения (storage, services, handlers).
func (app *App) initDependencies() {
	// Storage layer
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)

	// Внешние сервисы
	rendererClient := renderer.NewHTTPClient(app.cfg.RendererAddress, 30*time.Second)
	mailerClient := mailer.NewResendClient(app.cfg.ResendAPIKey, "", 10*time.Second)

	// Service layer
	orderService := services.NewOrderService(orderStorage, app.cfg.UploadTokenSecret, app.cfg.UploadTokenTTL, app.logger)
	pdfService := services.NewPDFService(orderStorage, rendererClient, app.logger)
	notifyService := services.NewNotifyService(mailerClient, app.cfg.ResendAPIKey, app.cfg.OrderEmailFrom, app.cfg.OrderEmailTo, app.logger)
	app.coord = services.NewLifecycleCoordinator(orderStorage, pdfService, notifyService, app.cfg.SweepInterval, app.logger)

	// Handler layer
	app.orderHandler = handlers.NewOrderHandler(orderService)
	app.pdfHandler = handlers.NewPDFHandler(app.coord)
	app.webhookHandler = handlers.NewWebhookHandler(app.coord, app.cfg.WebhookSecret)

	if app.cfg.RendererAddress == "" {
		app.logger.Warn("RENDERER_ADDRESS is not configured, pdf generation will fail")
	}
	if app.cfg.ResendAPIKey == "" || app.cfg.OrderEmailFrom == "" || app.cfg.OrderEmailTo == "" {
		app.logger.Warn("email transport is not fully configured, confirmations will not be sent")
	}
}

// initServer инициализирует HTTP-сервер и настраивает маршруты.
func (app *App) initServer() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	// Публичные маршруты покупателя
	e.POST("/api/orders", app.orderHandler.CreateOrder)
	e.GET("/api/orders/:id", app.orderHandler.GetOrder)
	e.POST("/api/orders/:id/artwork", app.orderHandler.UploadArtwork)

	// Вебхук платёжной системы: авторизуется подписью тела
	e.POST("/api/webhooks/payment", app.webhookHandler.PaymentConfirmed)

	// Служебные маршруты (требуют внутренний токен)
	internal := e.Group("/api/internal", auth.InternalTokenMiddleware(app.cfg.InternalToken))
	internal.POST("/orders/:id/pdf", app.pdfHandler.GeneratePDF)

	app.echo = e
}

// Start запускает приложение.
func (app *App) Start(ctx context.Context) error {
	// Фоновая дометка застрявших заказов
	if app.cfg.RendererAddress != "" {
		app.logger.Info("starting fulfilment sweep")
		app.coord.Start(ctx)
	} else {
		app.logger.Info("fulfilment sweep is disabled without renderer address")
	}

	app.logger.Infow("starting server", "address", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown корректно завершает работу приложения.
func (app *App) Shutdown(ctx context.Context) error {
	app.logger.Info("shutting down server")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	app.logger.Info("server gracefully stopped")
	return nil
}
