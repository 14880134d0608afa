// Package payment содержит бизнес-логику подписки: триал, платежные
// сессии и обработку уведомлений шлюза.
package payment

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/thegoldstar/goldstar-server/internal/cache"
	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/paymentprovider"
)

// DefaultTrialDays — длительность триала без купона.
const DefaultTrialDays = 14

// MonthlyPrice — стоимость месячной подписки.
const MonthlyPrice = 29.99

// Currency подписки.
const Currency = "USD"

// UserRepository определяет методы хранилища для подписок пользователей.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// StartTrial переводит бизнес на триал до указанной даты.
	StartTrial(ctx context.Context, uid string, trialEnd sql.NullTime) error
	// ActivateSubscription активирует подписку и продлевает ее на месяц.
	ActivateSubscription(ctx context.Context, uid string) error
	// UpdateSubscriptionStatus выставляет статус подписки.
	UpdateSubscriptionStatus(ctx context.Context, uid, status string) error
}

// CouponService проверяет и гасит купоны.
type CouponService interface {
	// Validate проверяет купон, не расходуя лимит погашений.
	Validate(ctx context.Context, code string) (*models.Coupon, error)
	// Redeem гасит купон и возвращает его условия.
	Redeem(ctx context.Context, code string) (*models.Coupon, error)
}

// Gateway — клиент платежного шлюза.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req paymentprovider.CreateCheckoutRequest) (*paymentprovider.CreateCheckoutResponse, error)
}

// Cache описывает методы для кэширования профиля пользователя.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует подписочные операции.
type Service struct {
	users         UserRepository
	coupons       CouponService
	gateway       Gateway
	cache         Cache
	publicBaseURL string
	log           *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, coupons CouponService, gateway Gateway, c Cache, publicBaseURL string, log *slog.Logger) *Service {
	return &Service{
		users:         users,
		coupons:       coupons,
		gateway:       gateway,
		cache:         c,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

// StartTrial переводит бизнес на триал. Купон может удлинить триал,
// купон гасится до изменения статуса.
func (s *Service) StartTrial(ctx context.Context, uid, couponCode string) (time.Time, error) {
	days := DefaultTrialDays
	if couponCode != "" {
		coupon, err := s.coupons.Redeem(ctx, couponCode)
		if err != nil {
			return time.Time{}, err
		}
		if coupon.TrialDays > 0 {
			days = coupon.TrialDays
		}
	}

	trialEnd := time.Now().UTC().AddDate(0, 0, days)
	if err := s.users.StartTrial(ctx, uid, sql.NullTime{Time: trialEnd, Valid: true}); err != nil {
		return time.Time{}, err
	}
	s.invalidateUser(uid)
	s.log.Info("trial started", slog.String("uid", uid), slog.Int("days", days))
	return trialEnd, nil
}

// CreateCheckout создает платежную сессию в шлюзе и возвращает URL
// страницы оплаты. Купон уменьшает сумму первого платежа, гасится он
// только после успешной оплаты на вебхуке.
func (s *Service) CreateCheckout(ctx context.Context, uid, couponCode string) (string, error) {
	price := MonthlyPrice
	metadata := map[string]string{"user_uid": uid}
	if couponCode != "" {
		coupon, err := s.coupons.Validate(ctx, couponCode)
		if err != nil {
			return "", err
		}
		price = price * (100 - float64(coupon.PercentOff)) / 100
		metadata["coupon"] = couponCode
	}

	resp, err := s.gateway.CreateCheckoutSession(ctx, paymentprovider.CreateCheckoutRequest{
		Amount: paymentprovider.Amount{
			Value:    fmt.Sprintf("%.2f", price),
			Currency: Currency,
		},
		Capture: true,
		Confirmation: paymentprovider.Confirmation{
			Type:      "redirect",
			ReturnURL: s.publicBaseURL + "/dashboard/payment",
		},
		Description: "The Gold Star monthly subscription",
		Metadata:    metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	s.log.Info("checkout session created",
		slog.String("uid", uid),
		slog.String("payment_id", resp.ID))
	return resp.Confirmation.ConfirmationURL, nil
}

func (s *Service) invalidateUser(uid string) {
	if err := s.cache.Invalidate(cache.UserKey(uid)); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("uid", uid), slog.Any("err", err))
	}
}
