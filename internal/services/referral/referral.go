// Package referral содержит бизнес-логику реферальной программы продавцов.
package referral

import (
	"context"
	"log/slog"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

// Repository определяет методы хранилища для реферальной статистики.
type Repository interface {
	// GetReferralStats возвращает статистику продавца: приведенные бизнесы
	// и начисленные комиссии.
	GetReferralStats(ctx context.Context, salespersonUID string) (*models.ReferralStats, error)
}

// Service реализует операции реферальной программы.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Stats возвращает реферальную статистику продавца.
func (s *Service) Stats(ctx context.Context, salespersonUID string) (*models.ReferralStats, error) {
	return s.repo.GetReferralStats(ctx, salespersonUID)
}
