package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thegoldstar/goldstar-server/internal/paymentprovider"
)

// MockService реализует интерфейс webhook.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessEvent(ctx context.Context, event paymentprovider.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	const secret = "test-secret"

	validBody := `{"type":"notification","event":"payment.succeeded","object":{"id":"pay-1","status":"succeeded","metadata":{"user_uid":"uid-1"}}}`

	tests := []struct {
		name           string
		body           string
		signature      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "событие с корректной подписью обрабатывается",
			body:      validBody,
			signature: sign(secret, validBody),
			setupMock: func(m *MockService) {
				m.On("ProcessEvent", mock.Anything, mock.MatchedBy(func(e paymentprovider.WebhookEvent) bool {
					return e.Event == paymentprovider.EventPaymentSucceeded &&
						e.Object.Metadata["user_uid"] == "uid-1"
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "подпись не совпадает",
			body:           validBody,
			signature:      sign("wrong-secret", validBody),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid signature"}`,
		},
		{
			name:           "подпись отсутствует",
			body:           validBody,
			signature:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid signature"}`,
		},
		{
			name:           "некорректный JSON с верной подписью",
			body:           `{"event":`,
			signature:      sign(secret, `{"event":`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:      "ошибка обработки события",
			body:      validBody,
			signature: sign(secret, validBody),
			setupMock: func(m *MockService) {
				m.On("ProcessEvent", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not process event"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, secret)

			req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(tt.body))
			if tt.signature != "" {
				req.Header.Set(SignatureHeader, tt.signature)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
