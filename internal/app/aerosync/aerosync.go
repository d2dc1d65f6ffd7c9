// Package aerosync собирает HTTP-приложение: хранилище, миграции,
// брокер событий, сервисы и сервер.
package aerosync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/aerosync-io/aerosync/internal/config"
	"github.com/aerosync-io/aerosync/internal/lib/jwt"
	"github.com/aerosync-io/aerosync/internal/lib/rabbitmq"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/migrations"
	authservice "github.com/aerosync-io/aerosync/internal/services/auth"
	fleetservice "github.com/aerosync-io/aerosync/internal/services/fleet"
	maintenanceservice "github.com/aerosync-io/aerosync/internal/services/maintenance"
	scheduleservice "github.com/aerosync-io/aerosync/internal/services/schedule"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// App инкапсулирует зависимости HTTP-приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	broker *amqp.Connection
}

// New создает приложение: подключается к базе, применяет миграции,
// при заданном адресе подключается к брокеру и собирает маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var brokerConn *amqp.Connection
	var brokerCh *amqp.Channel
	if cfg.RabbitMQAddress != "" {
		brokerConn, brokerCh, err = rabbitmq.Connect(cfg.RabbitMQAddress)
		if err != nil {
			return nil, err
		}
		if err = rabbitmq.SetupQueues(brokerCh); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("rabbitmq address is empty, maintenance events are disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	fleetService := fleetservice.New(db)
	scheduleService := scheduleservice.New(db)
	maintenanceService := maintenanceservice.New(db, logger, brokerCh)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, fleetService, scheduleService, maintenanceService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		broker: brokerConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if a.broker != nil {
			if closeErr := a.broker.Close(); closeErr != nil {
				a.logger.Error("failed to close broker connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
