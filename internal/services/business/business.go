// Package business содержит бизнес-логику профиля бизнеса и
// административных выборок.
package business

import (
	"context"
	"log/slog"
	"time"

	"github.com/thegoldstar/goldstar-server/internal/cache"
	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/storage/repository"
)

// Repository определяет методы хранилища для профилей бизнесов.
type Repository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// UpdateBusinessProfile обновляет данные бизнеса.
	UpdateBusinessProfile(ctx context.Context, uid string, profile models.User) error
	// ListBusinesses возвращает бизнесы с пагинацией.
	ListBusinesses(ctx context.Context, limit, offset int) ([]*models.User, error)
	// ListSalespeople возвращает продавцов с пагинацией.
	ListSalespeople(ctx context.Context, limit, offset int) ([]*models.User, error)
	// GetFinancialOverview возвращает сводку по подпискам и комиссиям.
	GetFinancialOverview(ctx context.Context) (*repository.FinancialOverview, error)
}

// Cache описывает методы для кэширования профиля пользователя.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над профилем бизнеса.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, c Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, log: log}
}

// Profile возвращает профиль бизнеса.
func (s *Service) Profile(ctx context.Context, uid string) (*models.User, error) {
	return s.repo.GetUser(ctx, uid)
}

// PublicProfile возвращает открытую часть профиля бизнеса по его UID.
func (s *Service) PublicProfile(ctx context.Context, uid string) (*models.PublicBusiness, error) {
	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &models.PublicBusiness{
		UID:              user.UID,
		BusinessName:     user.BusinessName,
		GoogleReviewLink: user.GoogleReviewLink,
	}, nil
}

// ProfileUpdate — изменяемые поля профиля бизнеса.
type ProfileUpdate struct {
	BusinessName     string
	OwnerName        string
	Phone            string
	Address          string
	GoogleReviewLink string
}

// UpdateProfile сохраняет профиль бизнеса и сбрасывает его кеш.
func (s *Service) UpdateProfile(ctx context.Context, uid string, req ProfileUpdate) (*models.User, error) {
	err := s.repo.UpdateBusinessProfile(ctx, uid, models.User{
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		Phone:            req.Phone,
		Address:          req.Address,
		GoogleReviewLink: req.GoogleReviewLink,
	})
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(cache.UserKey(uid)); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("uid", uid), slog.Any("err", err))
	}
	s.log.Info("business profile updated", slog.String("uid", uid))
	return s.repo.GetUser(ctx, uid)
}

// ListBusinesses возвращает бизнесы с пагинацией.
func (s *Service) ListBusinesses(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListBusinesses(ctx, limit, offset)
}

// ListSalespeople возвращает продавцов с пагинацией.
func (s *Service) ListSalespeople(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListSalespeople(ctx, limit, offset)
}

// FinancialOverview возвращает сводку по подпискам и комиссиям.
func (s *Service) FinancialOverview(ctx context.Context) (*repository.FinancialOverview, error) {
	return s.repo.GetFinancialOverview(ctx)
}
