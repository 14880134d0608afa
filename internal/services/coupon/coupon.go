// Package coupon содержит бизнес-логику проверки и погашения купонов.
package coupon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

// ErrCouponInvalid возвращается для неизвестного, выключенного,
// просроченного или исчерпанного купона.
var ErrCouponInvalid = errors.New("coupon is not valid")

// Repository определяет методы хранилища для купонов.
type Repository interface {
	// CreateCoupon сохраняет купон и возвращает его ID.
	CreateCoupon(ctx context.Context, coupon models.Coupon) (int, error)
	// GetCouponByCode возвращает купон по коду.
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	// RedeemCoupon атомарно увеличивает счетчик погашений действующего
	// купона и возвращает число затронутых строк.
	RedeemCoupon(ctx context.Context, code string) (int, error)
	// ListCoupons возвращает все купоны.
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
}

// Service реализует проверку и погашение купонов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Validate проверяет купон без погашения: код известен, купон включен,
// не просрочен и лимит погашений не исчерпан.
func (s *Service) Validate(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, ErrCouponInvalid
	}
	if !coupon.Active {
		return nil, ErrCouponInvalid
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrCouponInvalid
	}
	if coupon.MaxRedemptions > 0 && coupon.RedeemedCount >= coupon.MaxRedemptions {
		return nil, ErrCouponInvalid
	}
	return coupon, nil
}

// Redeem погашает купон. Проверка и инкремент выполняются одним
// атомарным запросом, гонка двух одновременных погашений последнего
// слота разрешается на стороне базы.
func (s *Service) Redeem(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.Validate(ctx, code)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.RedeemCoupon(ctx, code)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCouponInvalid
	}
	s.log.Info("coupon redeemed", slog.String("code", code))
	return coupon, nil
}

// Create сохраняет новый купон.
func (s *Service) Create(ctx context.Context, coupon models.Coupon) (int, error) {
	id, err := s.repo.CreateCoupon(ctx, coupon)
	if err != nil {
		return 0, err
	}
	s.log.Info("coupon created", slog.Int("id", id), slog.String("code", coupon.Code))
	return id, nil
}

// List возвращает все купоны.
func (s *Service) List(ctx context.Context) ([]*models.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}
