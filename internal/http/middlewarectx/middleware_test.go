package middlewarectx_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/lib/jwt"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) Me(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handlerCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		uid := r.Context().Value(middlewarectx.UserUID)
		assert.Equal(t, "uid-1", uid)
		w.WriteHeader(http.StatusOK)
	})

	handler := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer token",
			mockErr:        errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer validtoken",
			mockClaims:     &jwt.CustomClaims{UserUID: "uid-1", Email: "owner@example.com"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			authMock.ExpectedCalls = nil
			authMock.Calls = nil
			if tt.mockClaims != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestUserMiddleware(t *testing.T) {
	user := &models.User{UID: "uid-1", Email: "owner@example.com"}

	tests := []struct {
		name           string
		uid            string
		setupMocks     func(*UserProviderMock)
		wantStatusCode int
	}{
		{
			name: "profile loaded into context",
			uid:  "uid-1",
			setupMocks: func(p *UserProviderMock) {
				p.On("Me", mock.Anything, "uid-1").Return(user, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing uid",
			uid:            "",
			setupMocks:     func(_ *UserProviderMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "profile temporarily unavailable",
			uid:  "uid-1",
			setupMocks: func(p *UserProviderMock) {
				p.On("Me", mock.Anything, "uid-1").Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(UserProviderMock)
			tt.setupMocks(provider)

			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok := middlewarectx.UserFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, user, got)
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.UserMiddleware(provider, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.uid != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.uid)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			provider.AssertExpectations(t)
		})
	}
}

func TestGuardMiddleware(t *testing.T) {
	owner := &models.User{
		UID:                 "uid-1",
		OnboardingCompleted: true,
		SubscriptionStatus:  models.SubscriptionPending,
	}

	tests := []struct {
		name           string
		screen         string
		user           *models.User
		wantStatusCode int
		wantRedirect   string
	}{
		{
			name:           "allowed screen passes through",
			screen:         "/dashboard/settings",
			user:           owner,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "gated screen denied with redirect",
			screen:         "/dashboard/reviews",
			user:           owner,
			wantStatusCode: http.StatusForbidden,
			wantRedirect:   "/dashboard/payment",
		},
		{
			name:           "profile not loaded yields 503",
			screen:         "/dashboard/reviews",
			user:           nil,
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.GuardMiddleware(tt.screen, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api"+tt.screen, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
			if tt.user != nil {
				ctx = context.WithValue(ctx, middlewarectx.CurrentUser, tt.user)
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantRedirect != "" {
				var resp struct {
					Status   string `json:"status"`
					Error    string `json:"error"`
					Redirect string `json:"redirect"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantRedirect, resp.Redirect)
				assert.Equal(t, "subscription required", resp.Error)
			}
		})
	}
}
