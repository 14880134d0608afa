package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

// CreateReview сохраняет новый отзыв и возвращает его ID.
// Это единственная запись, создаваемая при отправке оценки: идентификатор
// нужен для построения ссылки на приватный опрос.
func (s *Storage) CreateReview(ctx context.Context, review models.Review) (int, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO reviews (business_uid, rating, comment, is_public_choice, destination)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		review.BusinessUID, review.Rating, review.Comment,
		review.IsPublicChoice, review.Destination).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListReviews возвращает отзывы бизнеса с фильтром по ветке маршрутизации.
// filter: "" — все, иначе значение destination.
func (s *Storage) ListReviews(ctx context.Context, businessUID, filter string, limit, offset int) ([]*models.Review, error) {
	const op = "storage.ListReviews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, business_uid, rating, comment, is_public_choice, destination, reply, created_at
			  FROM reviews
			  WHERE business_uid = $1 AND ($2 = '' OR destination = $2)
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, businessUID, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Review
	for rows.Next() {
		var rev models.Review
		var reply sql.NullString
		if err = rows.Scan(&rev.ID, &rev.BusinessUID, &rev.Rating, &rev.Comment,
			&rev.IsPublicChoice, &rev.Destination, &reply, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if reply.Valid {
			rev.Reply = &reply.String
		}
		result = append(result, &rev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplyToReview сохраняет ответ владельца бизнеса на отзыв.
// Возвращает количество обновленных записей: ответить можно только на свой отзыв.
func (s *Storage) ReplyToReview(ctx context.Context, reviewID int, businessUID, reply string) (int, error) {
	const op = "storage.ReplyToReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews
			  SET reply = $1
			  WHERE id = $2 AND business_uid = $3`
	res, err := s.DB.ExecContext(ctx, query, reply, reviewID, businessUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// CreateSurvey сохраняет приватный опрос для отзыва и возвращает его ID.
// Вставка проходит только если отзыв принадлежит этому бизнесу, иначе
// возвращается sql.ErrNoRows.
func (s *Storage) CreateSurvey(ctx context.Context, survey models.Survey) (int, error) {
	const op = "storage.CreateSurvey"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// Области хранятся одной строкой через ';' — набор фиксированный,
	// разделитель в значениях не встречается.
	areas := strings.Join(survey.ImprovementAreas, ";")

	var id int
	query := `INSERT INTO surveys (review_id, business_uid, improvement_areas, feedback)
			  SELECT r.id, r.business_uid, $3, $4
			  FROM reviews r
			  WHERE r.id = $1 AND r.business_uid = $2
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		survey.ReviewID, survey.BusinessUID, areas, survey.Feedback).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// DashboardStats — агрегаты по отзывам бизнеса для его дашборда.
type DashboardStats struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	PublicCount   int     `json:"public_count"`
	SurveyCount   int     `json:"survey_count"`
}

// GetDashboardStats возвращает агрегаты по отзывам бизнеса.
func (s *Storage) GetDashboardStats(ctx context.Context, businessUID string) (*DashboardStats, error) {
	const op = "storage.GetDashboardStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &DashboardStats{}
	query := `SELECT COUNT(*),
			      COALESCE(AVG(rating), 0),
			      COUNT(*) FILTER (WHERE destination = 'external-google')
			  FROM reviews
			  WHERE business_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, businessUID).Scan(
		&stats.TotalReviews, &stats.AverageRating, &stats.PublicCount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `SELECT COUNT(*) FROM surveys WHERE business_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, businessUID).Scan(&stats.SurveyCount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// FindNegativeReviewDigests собирает по каждому бизнесу количество отзывов,
// ушедших в приватный опрос с указанного момента. Используется планировщиком
// уведомлений.
func (s *Storage) FindNegativeReviewDigests(ctx context.Context, since time.Time) ([]*models.NegativeReviewDigest, error) {
	const op = "storage.FindNegativeReviewDigests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.owner_name, u.business_name, COUNT(r.id)
			  FROM reviews r
			  JOIN users u ON u.uid = r.business_uid
			  WHERE r.destination = 'private-survey' AND r.created_at >= $1
			  GROUP BY u.email, u.owner_name, u.business_name`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.NegativeReviewDigest
	for rows.Next() {
		digest := &models.NegativeReviewDigest{Since: since}
		if err = rows.Scan(&digest.Email, &digest.OwnerName, &digest.BusinessName, &digest.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, digest)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
