package payment

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/paymentprovider"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) StartTrial(ctx context.Context, uid string, trialEnd sql.NullTime) error {
	return m.Called(ctx, uid, trialEnd).Error(0)
}
func (m *UsersMock) ActivateSubscription(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}
func (m *UsersMock) UpdateSubscriptionStatus(ctx context.Context, uid, status string) error {
	return m.Called(ctx, uid, status).Error(0)
}

type CouponsMock struct{ mock.Mock }

func (m *CouponsMock) Validate(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *CouponsMock) Redeem(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateCheckoutSession(ctx context.Context, req paymentprovider.CreateCheckoutRequest) (*paymentprovider.CreateCheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreateCheckoutResponse), args.Error(1)
}

type CommissionsMock struct{ mock.Mock }

func (m *CommissionsMock) CreateCommission(ctx context.Context, commission models.Commission) (int, error) {
	args := m.Called(ctx, commission)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_StartTrial(t *testing.T) {
	t.Run("default trial length", func(t *testing.T) {
		users := new(UsersMock)
		c := new(CacheMock)
		users.On("StartTrial", mock.Anything, "uid-1", mock.MatchedBy(func(nt sql.NullTime) bool {
			want := time.Now().UTC().AddDate(0, 0, DefaultTrialDays)
			return nt.Valid && nt.Time.Sub(want).Abs() < time.Minute
		})).Return(nil).Once()
		c.On("Invalidate", "user:uid-1").Return(nil).Once()
		svc := New(users, new(CouponsMock), new(GatewayMock), c, "https://app.example.com", newNoopLogger())

		trialEnd, err := svc.StartTrial(context.Background(), "uid-1", "")

		require.NoError(t, err)
		assert.False(t, trialEnd.IsZero())
		users.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("coupon extends the trial", func(t *testing.T) {
		users := new(UsersMock)
		coupons := new(CouponsMock)
		c := new(CacheMock)
		coupons.On("Redeem", mock.Anything, "LAUNCH60").
			Return(&models.Coupon{Code: "LAUNCH60", TrialDays: 60, Active: true}, nil).Once()
		users.On("StartTrial", mock.Anything, "uid-1", mock.MatchedBy(func(nt sql.NullTime) bool {
			want := time.Now().UTC().AddDate(0, 0, 60)
			return nt.Valid && nt.Time.Sub(want).Abs() < time.Minute
		})).Return(nil).Once()
		c.On("Invalidate", "user:uid-1").Return(nil).Once()
		svc := New(users, coupons, new(GatewayMock), c, "https://app.example.com", newNoopLogger())

		_, err := svc.StartTrial(context.Background(), "uid-1", "LAUNCH60")

		require.NoError(t, err)
		users.AssertExpectations(t)
		coupons.AssertExpectations(t)
	})

	t.Run("invalid coupon aborts the trial", func(t *testing.T) {
		users := new(UsersMock)
		coupons := new(CouponsMock)
		coupons.On("Redeem", mock.Anything, "NOPE").
			Return(nil, errors.New("coupon is not valid")).Once()
		svc := New(users, coupons, new(GatewayMock), new(CacheMock), "https://app.example.com", newNoopLogger())

		_, err := svc.StartTrial(context.Background(), "uid-1", "NOPE")

		require.Error(t, err)
		users.AssertNotCalled(t, "StartTrial", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CreateCheckout(t *testing.T) {
	t.Run("coupon discounts the first payment", func(t *testing.T) {
		users := new(UsersMock)
		coupons := new(CouponsMock)
		gateway := new(GatewayMock)
		coupons.On("Validate", mock.Anything, "LAUNCH20").
			Return(&models.Coupon{Code: "LAUNCH20", PercentOff: 20, Active: true}, nil).Once()
		gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req paymentprovider.CreateCheckoutRequest) bool {
			return req.Amount.Value == "23.99" &&
				req.Amount.Currency == Currency &&
				req.Metadata["user_uid"] == "uid-1" &&
				req.Metadata["coupon"] == "LAUNCH20" &&
				req.Confirmation.ReturnURL == "https://app.example.com/dashboard/payment"
		})).Return(&paymentprovider.CreateCheckoutResponse{
			ID:           "pay-1",
			Status:       "pending",
			Confirmation: paymentprovider.Confirmation{ConfirmationURL: "https://gateway.example.com/checkout/pay-1"},
		}, nil).Once()
		svc := New(users, coupons, gateway, new(CacheMock), "https://app.example.com", newNoopLogger())

		url, err := svc.CreateCheckout(context.Background(), "uid-1", "LAUNCH20")

		require.NoError(t, err)
		assert.Equal(t, "https://gateway.example.com/checkout/pay-1", url)
		gateway.AssertExpectations(t)
		coupons.AssertExpectations(t)
		coupons.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
	})

	t.Run("gateway failure surfaces", func(t *testing.T) {
		gateway := new(GatewayMock)
		gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(nil, errors.New("gateway timeout")).Once()
		svc := New(new(UsersMock), new(CouponsMock), gateway, new(CacheMock), "https://app.example.com", newNoopLogger())

		_, err := svc.CreateCheckout(context.Background(), "uid-1", "")

		require.Error(t, err)
	})
}

func TestWebhookProcessor_ProcessEvent(t *testing.T) {
	salespersonUID := "sales-uid"

	newEvent := func(event, uid, amount string) paymentprovider.WebhookEvent {
		e := paymentprovider.WebhookEvent{Event: event}
		e.Object.ID = "pay-1"
		e.Object.Amount = paymentprovider.Amount{Value: amount, Currency: Currency}
		e.Object.Metadata = map[string]string{"user_uid": uid}
		return e
	}

	t.Run("success activates subscription and accrues commission", func(t *testing.T) {
		users := new(UsersMock)
		commissions := new(CommissionsMock)
		c := new(CacheMock)
		users.On("ActivateSubscription", mock.Anything, "uid-1").Return(nil).Once()
		c.On("Invalidate", "user:uid-1").Return(nil).Once()
		users.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1", ReferredBy: &salespersonUID}, nil).Once()
		commissions.On("CreateCommission", mock.Anything, mock.MatchedBy(func(cm models.Commission) bool {
			return cm.SalespersonUID == salespersonUID &&
				cm.BusinessUID == "uid-1" &&
				cm.PaymentID == "pay-1" &&
				cm.Amount > 2.99 && cm.Amount < 3.0
		})).Return(1, nil).Once()
		p := NewWebhookProcessor(users, commissions, new(CouponsMock), c, 0.1, newNoopLogger())

		err := p.ProcessEvent(context.Background(), newEvent(paymentprovider.EventPaymentSucceeded, "uid-1", "29.99"))

		require.NoError(t, err)
		users.AssertExpectations(t)
		commissions.AssertExpectations(t)
	})

	t.Run("no commission without referral", func(t *testing.T) {
		users := new(UsersMock)
		commissions := new(CommissionsMock)
		c := new(CacheMock)
		users.On("ActivateSubscription", mock.Anything, "uid-1").Return(nil).Once()
		c.On("Invalidate", "user:uid-1").Return(nil).Once()
		users.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1"}, nil).Once()
		p := NewWebhookProcessor(users, commissions, new(CouponsMock), c, 0.1, newNoopLogger())

		err := p.ProcessEvent(context.Background(), newEvent(paymentprovider.EventPaymentSucceeded, "uid-1", "29.99"))

		require.NoError(t, err)
		commissions.AssertNotCalled(t, "CreateCommission", mock.Anything, mock.Anything)
	})

	t.Run("coupon from the session is redeemed after payment", func(t *testing.T) {
		users := new(UsersMock)
		coupons := new(CouponsMock)
		c := new(CacheMock)
		users.On("ActivateSubscription", mock.Anything, "uid-1").Return(nil).Once()
		c.On("Invalidate", "user:uid-1").Return(nil).Once()
		coupons.On("Redeem", mock.Anything, "LAUNCH20").
			Return(&models.Coupon{Code: "LAUNCH20", PercentOff: 20, Active: true}, nil).Once()
		users.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1"}, nil).Once()
		p := NewWebhookProcessor(users, new(CommissionsMock), coupons, c, 0.1, newNoopLogger())

		e := newEvent(paymentprovider.EventPaymentSucceeded, "uid-1", "23.99")
		e.Object.Metadata["coupon"] = "LAUNCH20"

		err := p.ProcessEvent(context.Background(), e)

		require.NoError(t, err)
		coupons.AssertExpectations(t)
		coupons.AssertNumberOfCalls(t, "Redeem", 1)
	})

	t.Run("redeem failure does not roll back activation", func(t *testing.T) {
		users := new(UsersMock)
		coupons := new(CouponsMock)
		c := new(CacheMock)
		users.On("ActivateSubscription", mock.Anything, "uid-1").Return(nil).Once()
		c.On("Invalidate", "user:uid-1").Return(nil).Once()
		coupons.On("Redeem", mock.Anything, "GONE").
			Return(nil, errors.New("coupon is not valid")).Once()
		users.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1"}, nil).Once()
		p := NewWebhookProcessor(users, new(CommissionsMock), coupons, c, 0.1, newNoopLogger())

		e := newEvent(paymentprovider.EventPaymentSucceeded, "uid-1", "29.99")
		e.Object.Metadata["coupon"] = "GONE"

		err := p.ProcessEvent(context.Background(), e)

		require.NoError(t, err)
	})

	t.Run("canceled payment leaves status untouched", func(t *testing.T) {
		users := new(UsersMock)
		p := NewWebhookProcessor(users, new(CommissionsMock), new(CouponsMock), new(CacheMock), 0.1, newNoopLogger())

		err := p.ProcessEvent(context.Background(), newEvent(paymentprovider.EventPaymentCanceled, "uid-1", "29.99"))

		require.NoError(t, err)
		users.AssertNotCalled(t, "ActivateSubscription", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "UpdateSubscriptionStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user uid rejected", func(t *testing.T) {
		p := NewWebhookProcessor(new(UsersMock), new(CommissionsMock), new(CouponsMock), new(CacheMock), 0.1, newNoopLogger())
		e := paymentprovider.WebhookEvent{Event: paymentprovider.EventPaymentSucceeded}
		e.Object.ID = "pay-2"

		err := p.ProcessEvent(context.Background(), e)

		require.Error(t, err)
	})
}
