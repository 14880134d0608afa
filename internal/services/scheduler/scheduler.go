// Package scheduler периодически собирает сводки негативных отзывов и
// публикует их в очередь уведомлений.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/thegoldstar/goldstar-server/internal/lib/rabbitmq"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// DigestInterval — период между выборками сводок.
const DigestInterval = 24 * time.Hour

// ReviewRepository определяет выборку сводок негативных отзывов.
type ReviewRepository interface {
	// FindNegativeReviewDigests возвращает по каждому бизнесу сводку
	// приватных отзывов, появившихся после since.
	FindNegativeReviewDigests(ctx context.Context, since time.Time) ([]*models.NegativeReviewDigest, error)
}

// Service запускает периодическую рассылку сводок.
type Service struct {
	repo ReviewRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ReviewRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Run публикует сводки сразу и затем раз в сутки, пока контекст жив.
func (s *Service) Run(ctx context.Context, channel *amqp.Channel) {
	s.publishDigests(ctx, channel)

	ticker := time.NewTicker(DigestInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishDigests(ctx, channel)
		}
	}
}

func (s *Service) publishDigests(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting negative review digest run")
	since := time.Now().UTC().Add(-DigestInterval)
	digests, err := s.repo.FindNegativeReviewDigests(ctx, since)
	if err != nil {
		s.log.Error("failed to find negative review digests", sl.Err(err))
		return
	}
	if len(digests) == 0 {
		s.log.Info("no negative reviews for the period")
		return
	}
	s.log.Info("found negative review digests", "count", len(digests))
	for _, digest := range digests {
		err = rabbitmq.PublishMessage(channel, rabbitmq.AlertsExchange, rabbitmq.NegativeReviewKey, digest)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
