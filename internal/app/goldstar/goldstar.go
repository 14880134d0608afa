// Package goldstar собирает основной HTTP-сервис: хранилище, кеш,
// платежный шлюз, бизнес-логику и маршруты.
package goldstar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/thegoldstar/goldstar-server/internal/cache"
	"github.com/thegoldstar/goldstar-server/internal/config"
	"github.com/thegoldstar/goldstar-server/internal/lib/jwt"
	"github.com/thegoldstar/goldstar-server/internal/migrations"
	"github.com/thegoldstar/goldstar-server/internal/paymentprovider"
	authservice "github.com/thegoldstar/goldstar-server/internal/services/auth"
	businessservice "github.com/thegoldstar/goldstar-server/internal/services/business"
	couponservice "github.com/thegoldstar/goldstar-server/internal/services/coupon"
	paymentservice "github.com/thegoldstar/goldstar-server/internal/services/payment"
	referralservice "github.com/thegoldstar/goldstar-server/internal/services/referral"
	reviewservice "github.com/thegoldstar/goldstar-server/internal/services/review"
	"github.com/thegoldstar/goldstar-server/internal/storage/repository"
)

// App агрегирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: подключает базу и кеш, прогоняет миграции,
// строит сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.ShopID, cfg.SecretKey, cfg.APIURL)

	authService := authservice.New(db, cacheRedis, jwtMaker, logger)
	reviewService := reviewservice.New(db, cacheRedis, logger)
	couponService := couponservice.New(db, logger)
	paymentService := paymentservice.New(db, couponService, providerClient, cacheRedis, cfg.PublicBaseURL, logger)
	webhookProcessor := paymentservice.NewWebhookProcessor(db, db, couponService, cacheRedis, cfg.CommissionRate, logger)
	referralService := referralservice.New(db, logger)
	businessService := businessservice.New(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:     authService,
		Review:   reviewService,
		Coupon:   couponService,
		Payment:  paymentService,
		Webhook:  webhookProcessor,
		Referral: referralService,
		Business: businessService,
	}, db, cfg)

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
	}, nil
}

// Run запускает сервер и останавливает его по отмене контекста.
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
		return err
	}
}
