package repository

import (
	"context"
	"fmt"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

// CreateCommission сохраняет комиссию продавца с платежа приведенного бизнеса.
func (s *Storage) CreateCommission(ctx context.Context, commission models.Commission) (int, error) {
	const op = "storage.CreateCommission"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO commissions (salesperson_uid, business_uid, payment_id, amount)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		commission.SalespersonUID, commission.BusinessUID, commission.PaymentID,
		commission.Amount).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetReferralStats возвращает сводку реферальной программы продавца.
func (s *Storage) GetReferralStats(ctx context.Context, salespersonUID string) (*models.ReferralStats, error) {
	const op = "storage.GetReferralStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.ReferralStats{}
	query := `SELECT COALESCE(referral_code, ''),
			      (SELECT COUNT(*) FROM users r WHERE r.referred_by = u.uid),
			      (SELECT COUNT(*) FROM users r WHERE r.referred_by = u.uid
			          AND r.subscription_status IN ('active', 'trial')),
			      (SELECT COALESCE(SUM(amount), 0) FROM commissions c WHERE c.salesperson_uid = u.uid),
			      (SELECT COUNT(*) FROM commissions c WHERE c.salesperson_uid = u.uid)
			  FROM users u
			  WHERE u.uid = $1 AND u.is_salesperson`
	if err := s.DB.QueryRowContext(ctx, query, salespersonUID).Scan(
		&stats.ReferralCode, &stats.ReferredTotal, &stats.ReferredActive,
		&stats.CommissionTotal, &stats.CommissionsCount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// FinancialOverview — сводка по платформе для администратора.
type FinancialOverview struct {
	TotalBusinesses      int     `json:"total_businesses"`
	ActiveSubscriptions  int     `json:"active_subscriptions"`
	TrialSubscriptions   int     `json:"trial_subscriptions"`
	PendingSubscriptions int     `json:"pending_subscriptions"`
	CommissionsPaid      float64 `json:"commissions_paid"`
}

// GetFinancialOverview возвращает сводку по платформе.
func (s *Storage) GetFinancialOverview(ctx context.Context) (*FinancialOverview, error) {
	const op = "storage.GetFinancialOverview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	overview := &FinancialOverview{}
	query := `SELECT COUNT(*) FILTER (WHERE NOT is_salesperson AND NOT is_admin),
			      COUNT(*) FILTER (WHERE subscription_status = 'active'),
			      COUNT(*) FILTER (WHERE subscription_status = 'trial'),
			      COUNT(*) FILTER (WHERE subscription_status = 'pending')
			  FROM users`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&overview.TotalBusinesses,
		&overview.ActiveSubscriptions, &overview.TrialSubscriptions,
		&overview.PendingSubscriptions); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `SELECT COALESCE(SUM(amount), 0) FROM commissions`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&overview.CommissionsPaid); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return overview, nil
}
