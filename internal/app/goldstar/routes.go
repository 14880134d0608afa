// Package goldstar предоставляет маршруты для основного приложения.
package goldstar

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/thegoldstar/goldstar-server/internal/access"
	"github.com/thegoldstar/goldstar-server/internal/config"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/admin/businesses"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/admin/businessread"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/admin/couponcreate"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/admin/couponlist"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/admin/overview"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/admin/salespeople"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/auth/login"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/auth/me"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/auth/onboarding"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/auth/register"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/auth/routeaccess"
	businessprofile "github.com/thegoldstar/goldstar-server/internal/http/handlers/business/profile"
	businesspublic "github.com/thegoldstar/goldstar-server/internal/http/handlers/business/public"
	businessstats "github.com/thegoldstar/goldstar-server/internal/http/handlers/business/stats"
	businessupdate "github.com/thegoldstar/goldstar-server/internal/http/handlers/business/update"
	couponvalidate "github.com/thegoldstar/goldstar-server/internal/http/handlers/coupon/validate"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/health"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/payment/cancel"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/payment/checkout"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/payment/trial"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/payment/webhook"
	qrbusiness "github.com/thegoldstar/goldstar-server/internal/http/handlers/qrcode/business"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/qrcode/resolve"
	referralstats "github.com/thegoldstar/goldstar-server/internal/http/handlers/referral/stats"
	reviewlist "github.com/thegoldstar/goldstar-server/internal/http/handlers/review/list"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/review/reply"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/review/submit"
	"github.com/thegoldstar/goldstar-server/internal/http/handlers/review/survey"
	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	authservice "github.com/thegoldstar/goldstar-server/internal/services/auth"
	businessservice "github.com/thegoldstar/goldstar-server/internal/services/business"
	couponservice "github.com/thegoldstar/goldstar-server/internal/services/coupon"
	paymentservice "github.com/thegoldstar/goldstar-server/internal/services/payment"
	referralservice "github.com/thegoldstar/goldstar-server/internal/services/referral"
	reviewservice "github.com/thegoldstar/goldstar-server/internal/services/review"
	"github.com/thegoldstar/goldstar-server/internal/storage/repository"
)

// Services собирает бизнес-логику, нужную маршрутам.
type Services struct {
	Auth     *authservice.Service
	Review   *reviewservice.Service
	Coupon   *couponservice.Service
	Payment  *paymentservice.Service
	Webhook  *paymentservice.WebhookProcessor
	Referral *referralservice.Service
	Business *businessservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services, db *repository.Storage, cfg *config.Config) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки: страница оценки, публичные профили,
	// регистрация и вход.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/auth/signup", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/api/qr-code/review/{urlId}", resolve.New(logger, svc.Review).ServeHTTP)
		r.Get("/business/{id}/public", businesspublic.New(logger, svc.Business).ServeHTTP)
		r.Post("/reviews/submit", submit.New(logger, svc.Review).ServeHTTP)
		r.Post("/reviews/survey", survey.New(logger, svc.Review).ServeHTTP)
	})

	// Вебхук платежного шлюза, аутентификация подписью тела.
	r.Post("/payments/webhook", webhook.New(logger, svc.Webhook, cfg.WebhookSecret).ServeHTTP)

	// Решение о доступе к экрану: работает и для анонимных клиентов.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.OptionalJWTMiddleware(svc.Auth, logger))
		r.Get("/auth/route-access", routeaccess.New(logger, svc.Auth).ServeHTTP)
	})

	// Группа с JWT аутентификацией и загруженным профилем.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
		r.Use(middlewarectx.UserMiddleware(svc.Auth, logger))

		r.Get("/auth/me", me.New(logger).ServeHTTP)
		r.Post("/auth/complete-onboarding", onboarding.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/coupons/validate", couponvalidate.New(logger, svc.Coupon).ServeHTTP)
		r.Post("/auth/payment/start-trial", trial.New(logger, svc.Payment).ServeHTTP)
		r.Post("/auth/payment/create-checkout-session", checkout.New(logger, svc.Payment).ServeHTTP)
		r.Post("/auth/payment/cancel", cancel.New(logger, svc.Payment).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.GuardMiddleware(access.PathDashboard, logger))
			r.Get("/business/dashboard-stats", businessstats.New(logger, svc.Review).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.GuardMiddleware("/dashboard/reviews", logger))
			r.Get("/reviews", reviewlist.New(logger, svc.Review).ServeHTTP)
			r.Post("/reviews/{id}/reply", reply.New(logger, svc.Review).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.GuardMiddleware("/dashboard/qr-code", logger))
			r.Get("/api/qr-code/business", qrbusiness.New(logger, cfg.PublicBaseURL).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.GuardMiddleware("/dashboard/settings", logger))
			r.Get("/business/profile", businessprofile.New(logger).ServeHTTP)
			r.Put("/business/profile", businessupdate.New(logger, svc.Business).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.GuardMiddleware("/salesperson/dashboard", logger))
			r.Get("/referrals/stats", referralstats.New(logger, svc.Referral).ServeHTTP)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.GuardMiddleware("/admin", logger))
			r.Get("/businesses", businesses.New(logger, svc.Business).ServeHTTP)
			r.Get("/businesses/{uid}", businessread.New(logger, svc.Business).ServeHTTP)
			r.Get("/salespeople", salespeople.New(logger, svc.Business).ServeHTTP)
			r.Post("/coupons", couponcreate.New(logger, svc.Coupon).ServeHTTP)
			r.Get("/coupons", couponlist.New(logger, svc.Coupon).ServeHTTP)
			r.Get("/overview", overview.New(logger, svc.Business).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
