package validate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/services/coupon"
)

// MockService реализует интерфейс validate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Validate(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if res := args.Get(0); res != nil {
		return res.(*models.Coupon), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestValidateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "действующий купон возвращает условия",
			body: `{"code":"LAUNCH50"}`,
			setupMock: func(m *MockService) {
				m.On("Validate", mock.Anything, "LAUNCH50").Return(&models.Coupon{
					Code:       "LAUNCH50",
					PercentOff: 50,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"percentOff":50`,
		},
		{
			name: "недействительный купон",
			body: `{"code":"EXPIRED"}`,
			setupMock: func(m *MockService) {
				m.On("Validate", mock.Anything, "EXPIRED").Return(nil, coupon.ErrCouponInvalid)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"coupon is not valid"}`,
		},
		{
			name:           "пустой код отклоняется",
			body:           `{"code":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Code is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/coupons/validate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
