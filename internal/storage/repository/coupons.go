package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

// CreateCoupon сохраняет новый купон и возвращает его ID.
func (s *Storage) CreateCoupon(ctx context.Context, coupon models.Coupon) (int, error) {
	const op = "storage.CreateCoupon"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO coupons (code, percent_off, trial_days, max_redemptions, expires_at, active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		coupon.Code, coupon.PercentOff, coupon.TrialDays, coupon.MaxRedemptions,
		coupon.ExpiresAt, coupon.Active).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetCouponByCode возвращает купон по его коду.
func (s *Storage) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	const op = "storage.GetCouponByCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, code, percent_off, trial_days, max_redemptions, redeemed_count,
			      expires_at, active, created_at
			  FROM coupons
			  WHERE code = $1`
	c := &models.Coupon{}
	var expiresAt sql.NullTime
	if err := s.DB.QueryRowContext(ctx, query, code).Scan(&c.ID, &c.Code, &c.PercentOff,
		&c.TrialDays, &c.MaxRedemptions, &c.RedeemedCount, &expiresAt, &c.Active,
		&c.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if expiresAt.Valid {
		c.ExpiresAt = &expiresAt.Time
	}
	return c, nil
}

// RedeemCoupon атомарно увеличивает счетчик активаций купона.
// Возвращает количество обновленных записей: 0 означает, что купон
// исчерпан, неактивен или просрочен.
func (s *Storage) RedeemCoupon(ctx context.Context, code string) (int, error) {
	const op = "storage.RedeemCoupon"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE coupons
			  SET redeemed_count = redeemed_count + 1
			  WHERE code = $1
			    AND active
			    AND (expires_at IS NULL OR expires_at > now())
			    AND (max_redemptions = 0 OR redeemed_count < max_redemptions)`
	res, err := s.DB.ExecContext(ctx, query, code)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// ListCoupons возвращает все купоны (для администратора).
func (s *Storage) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	const op = "storage.ListCoupons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, code, percent_off, trial_days, max_redemptions, redeemed_count,
			      expires_at, active, created_at
			  FROM coupons
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Coupon
	for rows.Next() {
		c := &models.Coupon{}
		var expiresAt sql.NullTime
		if err = rows.Scan(&c.ID, &c.Code, &c.PercentOff, &c.TrialDays, &c.MaxRedemptions,
			&c.RedeemedCount, &expiresAt, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if expiresAt.Valid {
			c.ExpiresAt = &expiresAt.Time
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
