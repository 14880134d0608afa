// Package review содержит бизнес-логику приема отзывов и их маршрутизации
// между публичной страницей Google и приватной анкетой.
package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/storage/repository"
)

// PublicRatingThreshold — минимальная оценка, при которой форма по
// умолчанию предлагает опубликовать отзыв.
const PublicRatingThreshold = 4

// ErrBusinessNotFound возвращается, когда бизнес с указанным ID не существует.
var ErrBusinessNotFound = errors.New("business not found")

// ErrReviewNotFound возвращается, когда отзыв не существует или
// принадлежит другому бизнесу.
var ErrReviewNotFound = errors.New("review not found")

var routedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reviews_routed_total",
		Help: "Total number of submitted reviews by routing destination",
	},
	[]string{"destination"},
)

// Repository определяет методы хранилища для отзывов.
type Repository interface {
	// CreateReview сохраняет отзыв и возвращает его ID.
	CreateReview(ctx context.Context, review models.Review) (int, error)
	// CreateSurvey сохраняет ответы приватной анкеты.
	CreateSurvey(ctx context.Context, survey models.Survey) (int, error)
	// GetBusinessByReviewURLID возвращает бизнес по публичному ID из QR-кода.
	GetBusinessByReviewURLID(ctx context.Context, reviewURLID string) (*models.User, error)
	// GetUser возвращает бизнес по UID.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// ListReviews возвращает отзывы бизнеса с пагинацией, опционально по направлению.
	ListReviews(ctx context.Context, businessUID, filter string, limit, offset int) ([]*models.Review, error)
	// ReplyToReview сохраняет ответ владельца и возвращает число затронутых строк.
	ReplyToReview(ctx context.Context, reviewID int, businessUID, reply string) (int, error)
	// GetDashboardStats возвращает агрегированную статистику отзывов бизнеса.
	GetDashboardStats(ctx context.Context, businessUID string) (*repository.DashboardStats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует прием и маршрутизацию отзывов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// SuggestPublic возвращает значение галочки "опубликовать" по умолчанию
// для данной оценки. Клиент может переключить галочку перед отправкой —
// итоговое решение принимает присланный выбор, а не оценка.
func SuggestPublic(rating int) bool {
	return rating >= PublicRatingThreshold
}

// Destination вычисляет направление отзыва. Публикация возможна только
// если пользователь выбрал публичный отзыв и у бизнеса настроена ссылка
// на страницу Google; во всех остальных случаях отзыв уходит в приватную
// анкету.
func Destination(isPublicChoice bool, googleReviewLink string) string {
	if isPublicChoice && googleReviewLink != "" {
		return models.DestinationExternal
	}
	return models.DestinationSurvey
}

// SubmitRequest — данные отправляемого отзыва.
type SubmitRequest struct {
	Rating         int
	Comment        string
	IsPublicChoice bool
}

// SubmitResult — результат приема отзыва: куда направить клиента.
type SubmitResult struct {
	ReviewID    int    `json:"reviewId"`
	Destination string `json:"destination"`
	RedirectURL string `json:"target"`
}

// ResolveBusiness возвращает публичные данные бизнеса по ID из QR-кода.
func (s *Service) ResolveBusiness(ctx context.Context, reviewURLID string) (*models.PublicBusiness, error) {
	user, err := s.repo.GetBusinessByReviewURLID(ctx, reviewURLID)
	if err != nil {
		return nil, err
	}
	return &models.PublicBusiness{
		UID:              user.UID,
		BusinessName:     user.BusinessName,
		GoogleReviewLink: user.GoogleReviewLink,
	}, nil
}

// Submit сохраняет отзыв и возвращает направление для клиента. Отзыв
// записывается ровно один раз до маршрутизации, направление хранится
// вместе с ним.
func (s *Service) Submit(ctx context.Context, businessUID string, req SubmitRequest) (*SubmitResult, error) {
	business, err := s.repo.GetUser(ctx, businessUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	destination := Destination(req.IsPublicChoice, business.GoogleReviewLink)
	id, err := s.repo.CreateReview(ctx, models.Review{
		BusinessUID:    business.UID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		IsPublicChoice: req.IsPublicChoice,
		Destination:    destination,
	})
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		ReviewID:    id,
		Destination: destination,
	}
	if destination == models.DestinationExternal {
		result.RedirectURL = business.GoogleReviewLink
	} else {
		result.RedirectURL = fmt.Sprintf("/survey/%s?reviewId=%d", business.UID, id)
	}

	routedTotal.WithLabelValues(destination).Inc()
	s.log.Info("review routed",
		slog.Int("review_id", id),
		slog.Int("rating", req.Rating),
		slog.String("destination", destination))

	if err := s.cache.Invalidate(statsKey(business.UID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", slog.Any("err", err))
	}

	return result, nil
}

// SurveyRequest — ответы приватной анкеты.
type SurveyRequest struct {
	ReviewID         int
	ImprovementAreas []string
	Feedback         string
}

// SubmitSurvey сохраняет ответы приватной анкеты для бизнеса. Анкета
// принимается только для отзыва этого бизнеса, чужой reviewId отклоняется.
func (s *Service) SubmitSurvey(ctx context.Context, businessUID string, req SurveyRequest) (int, error) {
	id, err := s.repo.CreateSurvey(ctx, models.Survey{
		ReviewID:         req.ReviewID,
		BusinessUID:      businessUID,
		ImprovementAreas: req.ImprovementAreas,
		Feedback:         req.Feedback,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrReviewNotFound
		}
		return 0, err
	}
	s.log.Info("survey saved", slog.Int("survey_id", id), slog.Int("review_id", req.ReviewID))
	return id, nil
}

// List возвращает отзывы бизнеса с пагинацией, опционально
// отфильтрованные по направлению; пустая строка — все отзывы.
func (s *Service) List(ctx context.Context, businessUID, destination string, limit, offset int) ([]*models.Review, error) {
	return s.repo.ListReviews(ctx, businessUID, destination, limit, offset)
}

// Reply сохраняет ответ владельца на отзыв.
func (s *Service) Reply(ctx context.Context, reviewID int, businessUID, reply string) (int, error) {
	count, err := s.repo.ReplyToReview(ctx, reviewID, businessUID, reply)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("reply saved", slog.Int("review_id", reviewID))
	}
	return count, nil
}

// Stats возвращает статистику отзывов бизнеса, используя кеш.
func (s *Service) Stats(ctx context.Context, businessUID string) (*repository.DashboardStats, error) {
	var result *repository.DashboardStats
	key := statsKey(businessUID)
	found, err := s.cache.Get(key, &result)
	if err == nil && found {
		return result, nil
	}
	result, err = s.repo.GetDashboardStats(ctx, businessUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache stats", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

func statsKey(businessUID string) string {
	return fmt.Sprintf("stats:%s", businessUID)
}
