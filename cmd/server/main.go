package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spicery-be/internal/config"
	"spicery-be/internal/dashboard"
	"spicery-be/internal/db"
	"spicery-be/internal/events"
	"spicery-be/internal/logger"
	"spicery-be/internal/middleware"
	"spicery-be/internal/order"
	"spicery-be/internal/product"
	"spicery-be/internal/schema"
	"spicery-be/internal/supplier"
	"spicery-be/internal/transport"
	"spicery-be/internal/user"
	"spicery-be/internal/validate"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc = db.NewDatabase

	newPublisherFunc = func(cfg *config.Config) (events.Publisher, error) {
		if cfg.AMQPURL == "" {
			return events.Nop{}, nil
		}
		return events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	}

	startServerFunc = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.IsProduction())
	defer logger.Sync()
	log := logger.L()

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The schema must be in place before the first request is accepted.
	if err := schema.New(database).Run(ctx); err != nil {
		return err
	}

	publisher, err := newPublisherFunc(cfg)
	if err != nil {
		log.Warn("event publishing disabled", zap.Error(err))
		publisher = events.Nop{}
	}
	defer publisher.Close()

	limiter := middleware.NewLimiter()
	defer limiter.Stop()

	handler, err := newServer(cfg, database, publisher, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("REST server running",
		zap.String("addr", srv.Addr),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("auth_enforced", cfg.AuthEnforced),
	)
	if err := startServerFunc(ctx, srv); err != nil {
		return err
	}

	log.Info("server shut down")
	return nil
}

func newServer(cfg *config.Config, database *sqlx.DB, publisher events.Publisher, limiter *middleware.Limiter) (http.Handler, error) {
	validator, err := validate.New()
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = ephemeralSecret()
		logger.L().Warn("JWT_SECRET not set; tokens will not survive a restart")
	}
	tokens := user.NewTokens(secret, user.DefaultTokenTTL)

	h := &transport.Handler{
		Products:  product.NewService(product.NewRepository(database)),
		Orders:    order.NewService(order.NewRepository(database), publisher),
		Suppliers: supplier.NewService(supplier.NewRepository(database)),
		Users:     user.NewService(user.NewRepository(database), tokens),
		Dashboard: dashboard.NewService(database),
		Validator: validator,
		DB:        database,
	}

	return transport.NewRouter(h, transport.RouterOptions{
		Tokens:         tokens,
		AuthEnforced:   cfg.AuthEnforced,
		AllowedOrigins: cfg.AllowedOrigins(),
		Limiter:        limiter,
		RequestTimeout: cfg.RequestTimeout,
	}), nil
}

func ephemeralSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
