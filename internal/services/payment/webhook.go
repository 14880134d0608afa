package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/thegoldstar/goldstar-server/internal/cache"
	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/paymentprovider"
)

// CommissionRepository сохраняет комиссии продавцов.
type CommissionRepository interface {
	CreateCommission(ctx context.Context, commission models.Commission) (int, error)
}

// CouponRedeemer гасит купон после успешной оплаты.
type CouponRedeemer interface {
	Redeem(ctx context.Context, code string) (*models.Coupon, error)
}

// WebhookProcessor обрабатывает уведомления платежного шлюза.
type WebhookProcessor struct {
	users          UserRepository
	commissions    CommissionRepository
	coupons        CouponRedeemer
	cache          Cache
	commissionRate float64
	log            *slog.Logger
}

// NewWebhookProcessor создает новый экземпляр WebhookProcessor.
func NewWebhookProcessor(users UserRepository, commissions CommissionRepository, coupons CouponRedeemer, c Cache, commissionRate float64, log *slog.Logger) *WebhookProcessor {
	return &WebhookProcessor{
		users:          users,
		commissions:    commissions,
		coupons:        coupons,
		cache:          c,
		commissionRate: commissionRate,
		log:            log,
	}
}

// ProcessEvent применяет событие шлюза к подписке. Успешный платеж
// активирует подписку и начисляет комиссию приведшему продавцу,
// отмененный платеж оставляет статус как есть.
func (p *WebhookProcessor) ProcessEvent(ctx context.Context, event paymentprovider.WebhookEvent) error {
	uid := event.Object.Metadata["user_uid"]
	if uid == "" {
		return fmt.Errorf("webhook event %s has no user_uid in metadata", event.Object.ID)
	}

	switch event.Event {
	case paymentprovider.EventPaymentSucceeded:
		return p.handleSucceeded(ctx, uid, event)
	case paymentprovider.EventPaymentCanceled:
		p.log.Warn("payment canceled",
			slog.String("uid", uid),
			slog.String("payment_id", event.Object.ID))
		return nil
	default:
		p.log.Warn("unknown webhook event", slog.String("event", event.Event))
		return nil
	}
}

func (p *WebhookProcessor) handleSucceeded(ctx context.Context, uid string, event paymentprovider.WebhookEvent) error {
	if err := p.users.ActivateSubscription(ctx, uid); err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}
	if err := p.cache.Invalidate(cache.UserKey(uid)); err != nil {
		p.log.Warn("failed to invalidate user cache", slog.String("uid", uid), slog.Any("err", err))
	}
	p.log.Info("subscription activated",
		slog.String("uid", uid),
		slog.String("payment_id", event.Object.ID))

	// Купон из сессии гасится только здесь: брошенная сессия не должна
	// расходовать лимит погашений. Платеж уже прошел, поэтому ошибка
	// погашения не откатывает активацию.
	if code := event.Object.Metadata["coupon"]; code != "" {
		if _, err := p.coupons.Redeem(ctx, code); err != nil {
			p.log.Warn("failed to redeem coupon after payment",
				slog.String("uid", uid),
				slog.String("coupon", code),
				slog.Any("err", err))
		}
	}

	user, err := p.users.GetUser(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to load user after activation: %w", err)
	}
	if user.ReferredBy == nil {
		return nil
	}

	amount, err := strconv.ParseFloat(event.Object.Amount.Value, 64)
	if err != nil {
		return fmt.Errorf("invalid payment amount %q: %w", event.Object.Amount.Value, err)
	}
	commission := models.Commission{
		SalespersonUID: *user.ReferredBy,
		BusinessUID:    uid,
		PaymentID:      event.Object.ID,
		Amount:         amount * p.commissionRate,
	}
	if _, err := p.commissions.CreateCommission(ctx, commission); err != nil {
		return fmt.Errorf("failed to record commission: %w", err)
	}
	p.log.Info("commission recorded",
		slog.String("salesperson_uid", *user.ReferredBy),
		slog.Float64("amount", commission.Amount))
	return nil
}

// Cancel запускает отмену подписки: доступ сохраняется до конца
// оплаченного периода.
func (s *Service) Cancel(ctx context.Context, uid string) error {
	if err := s.users.UpdateSubscriptionStatus(ctx, uid, models.SubscriptionCancelling); err != nil {
		return err
	}
	s.invalidateUser(uid)
	s.log.Info("subscription cancellation requested", slog.String("uid", uid))
	return nil
}
