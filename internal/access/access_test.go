package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegoldstar/goldstar-server/internal/access"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

func owner(onboarded bool, status string) *models.User {
	return &models.User{
		UID:                 "8f14e45f-ceea-467f-a8cb-000000000001",
		Email:               "owner@example.com",
		BusinessName:        "Corner Bakery",
		OnboardingCompleted: onboarded,
		SubscriptionStatus:  status,
	}
}

func salesperson() *models.User {
	return &models.User{
		UID:           "8f14e45f-ceea-467f-a8cb-000000000002",
		Email:         "sales@example.com",
		IsSalesperson: true,
		ReferralCode:  "GOLD-7F2A",
	}
}

func admin() *models.User {
	u := owner(true, models.SubscriptionActive)
	u.IsAdmin = true
	return u
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name         string
		session      access.Session
		path         string
		wantKind     access.Kind
		wantRedirect string
	}{
		{
			name:         "unauthenticated redirected to login before anything else",
			session:      access.Session{},
			path:         "/dashboard/reviews",
			wantKind:     access.KindRedirect,
			wantRedirect: "/login",
		},
		{
			name:     "authenticated but profile not loaded yields pending",
			session:  access.Session{Authenticated: true},
			path:     "/dashboard/reviews",
			wantKind: access.KindPending,
		},
		{
			name:         "owner without onboarding redirected to onboarding",
			session:      access.Session{Authenticated: true, User: owner(false, models.SubscriptionPending)},
			path:         "/dashboard",
			wantKind:     access.KindRedirect,
			wantRedirect: "/onboarding",
		},
		{
			name:     "onboarding screen itself reachable without completed onboarding",
			session:  access.Session{Authenticated: true, User: owner(false, models.SubscriptionPending)},
			path:     "/onboarding",
			wantKind: access.KindAllow,
		},
		{
			name:         "onboarded owner bounced off the onboarding screen to payment",
			session:      access.Session{Authenticated: true, User: owner(true, models.SubscriptionPending)},
			path:         "/onboarding",
			wantKind:     access.KindRedirect,
			wantRedirect: "/dashboard/payment",
		},
		{
			name:         "salesperson bounced off the onboarding screen to referrals",
			session:      access.Session{Authenticated: true, User: salesperson()},
			path:         "/onboarding",
			wantKind:     access.KindRedirect,
			wantRedirect: "/dashboard/referrals",
		},
		{
			name:     "salesperson never redirected to onboarding",
			session:  access.Session{Authenticated: true, User: salesperson()},
			path:     "/dashboard",
			wantKind: access.KindAllow,
		},
		{
			name:         "pending subscription blocks gated screen",
			session:      access.Session{Authenticated: true, User: owner(true, models.SubscriptionPending)},
			path:         "/dashboard/reviews",
			wantKind:     access.KindRedirect,
			wantRedirect: "/dashboard/payment",
		},
		{
			name:     "pending subscription still allows settings",
			session:  access.Session{Authenticated: true, User: owner(true, models.SubscriptionPending)},
			path:     "/dashboard/settings",
			wantKind: access.KindAllow,
		},
		{
			name:     "pending subscription still allows payment screen",
			session:  access.Session{Authenticated: true, User: owner(true, models.SubscriptionPending)},
			path:     "/dashboard/payment",
			wantKind: access.KindAllow,
		},
		{
			name:     "cancelling subscription keeps gated screens open",
			session:  access.Session{Authenticated: true, User: owner(true, models.SubscriptionCancelling)},
			path:     "/dashboard/reviews",
			wantKind: access.KindAllow,
		},
		{
			name:     "trial subscription passes the gate",
			session:  access.Session{Authenticated: true, User: owner(true, models.SubscriptionTrial)},
			path:     "/dashboard/qr-code",
			wantKind: access.KindAllow,
		},
		{
			name:         "salesperson redirected away from owner screens",
			session:      access.Session{Authenticated: true, User: salesperson()},
			path:         "/dashboard/reviews",
			wantKind:     access.KindRedirect,
			wantRedirect: "/dashboard/referrals",
		},
		{
			name:         "owner redirected away from salesperson dashboard",
			session:      access.Session{Authenticated: true, User: owner(true, models.SubscriptionActive)},
			path:         "/salesperson/dashboard",
			wantKind:     access.KindRedirect,
			wantRedirect: "/dashboard",
		},
		{
			name:     "salesperson allowed on referrals",
			session:  access.Session{Authenticated: true, User: salesperson()},
			path:     "/dashboard/referrals",
			wantKind: access.KindAllow,
		},
		{
			name:         "non-admin redirected home from admin screens",
			session:      access.Session{Authenticated: true, User: owner(true, models.SubscriptionActive)},
			path:         "/admin",
			wantKind:     access.KindRedirect,
			wantRedirect: "/",
		},
		{
			name:     "admin allowed on admin subpaths",
			session:  access.Session{Authenticated: true, User: admin()},
			path:     "/admin/coupons",
			wantKind: access.KindAllow,
		},
		{
			name:     "unknown private path falls back to the base chain",
			session:  access.Session{Authenticated: true, User: owner(true, models.SubscriptionPending)},
			path:     "/dashboard/whatever",
			wantKind: access.KindAllow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := access.Decide(tc.session, tc.path)

			require.Equal(t, tc.wantKind, d.Kind)
			if tc.wantKind == access.KindRedirect {
				assert.Equal(t, tc.wantRedirect, d.Path)
			}
			if tc.wantKind == access.KindAllow {
				assert.Equal(t, tc.session.User, d.User)
			}
		})
	}
}

func TestDecide_GuardOrder(t *testing.T) {
	// Сессии нет и онбординг не завершен: проверка сессии идет первой,
	// поэтому редирект всегда на логин, а не на онбординг.
	d := access.Decide(access.Session{User: owner(false, models.SubscriptionPending)}, "/dashboard/reviews")

	require.Equal(t, access.KindRedirect, d.Kind)
	assert.Equal(t, "/login", d.Path)

	// Онбординг не завершен и подписка не оплачена: онбординг раньше
	// подписки в цепочке.
	d = access.Decide(
		access.Session{Authenticated: true, User: owner(false, models.SubscriptionPending)},
		"/dashboard/reviews",
	)

	require.Equal(t, access.KindRedirect, d.Kind)
	assert.Equal(t, "/onboarding", d.Path)
}

func TestStateOf(t *testing.T) {
	cases := []struct {
		name    string
		session access.Session
		want    access.State
	}{
		{"no session", access.Session{}, access.StateUnauthenticated},
		{"profile loading", access.Session{Authenticated: true}, access.StateLoading},
		{
			"owner before onboarding",
			access.Session{Authenticated: true, User: owner(false, models.SubscriptionPending)},
			access.StateNeedsOnboarding,
		},
		{
			"owner before payment",
			access.Session{Authenticated: true, User: owner(true, models.SubscriptionPending)},
			access.StateNeedsSubscription,
		},
		{
			"owner with active subscription",
			access.Session{Authenticated: true, User: owner(true, models.SubscriptionActive)},
			access.StateReady,
		},
		{
			"salesperson skips onboarding and subscription",
			access.Session{Authenticated: true, User: salesperson()},
			access.StateReady,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.StateOf(tc.session))
		})
	}
}
