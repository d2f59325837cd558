// Package natours собирает основное HTTP-приложение: хранилище, кеш,
// очередь почты, сервисы и маршруты.
package natours

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/maroungit7573/natours/internal/cache"
	"github.com/maroungit7573/natours/internal/config"
	"github.com/maroungit7573/natours/internal/lib/jwt"
	"github.com/maroungit7573/natours/internal/lib/smtp"
	"github.com/maroungit7573/natours/internal/migrations"
	"github.com/maroungit7573/natours/internal/rabbitmq"
	authservice "github.com/maroungit7573/natours/internal/services/auth"
	"github.com/maroungit7573/natours/internal/services/mailer"
	reviewservice "github.com/maroungit7573/natours/internal/services/review"
	tourservice "github.com/maroungit7573/natours/internal/services/tour"
	"github.com/maroungit7573/natours/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitConnectionString, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}
	amqpCh, err := rabbitmq.SetupChannel(amqpConn)
	if err != nil {
		amqpConn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg.SMTPConnection, logger)
	mailService := mailer.New(transport, logger)

	authService := authservice.New(db, jwtMaker, mailService,
		rabbitmq.NewWelcomePublisher(amqpCh), logger, cfg.BcryptCost, cfg.ResetTokenTTL)
	tourService := tourservice.New(db, cacheRedis, logger)
	reviewService := reviewservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, authService, tourService, reviewService)

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
		amqp:   amqpConn,
	}, nil
}

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
		a.db.DB.Close()
		a.amqp.Close()
		return err
	}
}
