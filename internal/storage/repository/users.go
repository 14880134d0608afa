package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

const userColumns = `uid, email, password_hash, business_name, owner_name, phone, address,
		      google_review_link, review_url_id, is_salesperson, is_admin,
		      onboarding_completed, subscription_status, trial_end_date,
		      subscription_expiry, referral_code, referred_by, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var trialEndDate, subscriptionExpiry sql.NullTime
	var referralCode sql.NullString
	var referredBy sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.BusinessName, &u.OwnerName,
		&u.Phone, &u.Address, &u.GoogleReviewLink, &u.ReviewURLID, &u.IsSalesperson,
		&u.IsAdmin, &u.OnboardingCompleted, &u.SubscriptionStatus, &trialEndDate,
		&subscriptionExpiry, &referralCode, &referredBy, &u.CreatedAt); err != nil {
		return nil, err
	}
	if trialEndDate.Valid {
		u.TrialEndDate = &trialEndDate.Time
	}
	if subscriptionExpiry.Valid {
		u.SubscriptionExpiry = &subscriptionExpiry.Time
	}
	if referralCode.Valid {
		u.ReferralCode = referralCode.String
	}
	if referredBy.Valid {
		u.ReferredBy = &referredBy.String
	}
	return u, nil
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, business_name, owner_name,
			      is_salesperson, subscription_status, trial_end_date, referral_code, referred_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.BusinessName, user.OwnerName,
		user.IsSalesperson, user.SubscriptionStatus, user.TrialEndDate,
		user.ReferralCode, user.ReferredBy).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetBusinessByReviewURLID возвращает бизнес по UUID его QR-ссылки.
func (s *Storage) GetBusinessByReviewURLID(ctx context.Context, urlID string) (*models.User, error) {
	const op = "storage.GetBusinessByReviewURLID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE review_url_id = $1 AND NOT is_salesperson`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, urlID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetSalespersonByReferralCode возвращает продавца по его реферальному коду.
func (s *Storage) GetSalespersonByReferralCode(ctx context.Context, code string) (*models.User, error) {
	const op = "storage.GetSalespersonByReferralCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1 AND is_salesperson`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// CompleteOnboarding записывает профиль бизнеса и помечает онбординг завершенным.
func (s *Storage) CompleteOnboarding(ctx context.Context, userUID string, profile models.User) error {
	const op = "storage.CompleteOnboarding"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET business_name = $1,
			      owner_name = $2,
			      phone = $3,
			      address = $4,
			      google_review_link = $5,
			      onboarding_completed = TRUE
			  WHERE uid = $6 AND NOT is_salesperson`
	res, err := s.DB.ExecContext(ctx, query, profile.BusinessName, profile.OwnerName,
		profile.Phone, profile.Address, profile.GoogleReviewLink, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: user not found or is a salesperson", op)
	}
	return nil
}

// UpdateBusinessProfile обновляет редактируемые поля профиля бизнеса.
func (s *Storage) UpdateBusinessProfile(ctx context.Context, userUID string, profile models.User) error {
	const op = "storage.UpdateBusinessProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET business_name = $1,
			      owner_name = $2,
			      phone = $3,
			      address = $4,
			      google_review_link = $5
			  WHERE uid = $6`
	_, err := s.DB.ExecContext(ctx, query, profile.BusinessName, profile.OwnerName,
		profile.Phone, profile.Address, profile.GoogleReviewLink, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateSubscriptionStatus обновляет статус подписки пользователя.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, userUID, status string) error {
	const op = "storage.UpdateSubscriptionStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_status = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, status, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ActivateSubscription переводит подписку в active и продлевает её на месяц.
func (s *Storage) ActivateSubscription(ctx context.Context, userUID string) error {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_status = 'active',
			      subscription_expiry = GREATEST(COALESCE(subscription_expiry, now()), now()) + INTERVAL '1 month'
			  WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// StartTrial переводит подписку в trial до указанной даты.
func (s *Storage) StartTrial(ctx context.Context, userUID string, trialEnd sql.NullTime) error {
	const op = "storage.StartTrial"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_status = 'trial',
			      trial_end_date = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, trialEnd, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListBusinesses возвращает список бизнесов с пагинацией (для администратора).
func (s *Storage) ListBusinesses(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListBusinesses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE NOT is_salesperson AND NOT is_admin
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	return s.listUsers(ctx, op, query, limit, offset)
}

// ListSalespeople возвращает список продавцов с пагинацией (для администратора).
func (s *Storage) ListSalespeople(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListSalespeople"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE is_salesperson
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	return s.listUsers(ctx, op, query, limit, offset)
}

func (s *Storage) listUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
