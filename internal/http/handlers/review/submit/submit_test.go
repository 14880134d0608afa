package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/services/review"
)

// MockService реализует интерфейс submit.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, businessUID string, req review.SubmitRequest) (*review.SubmitResult, error) {
	args := m.Called(ctx, businessUID, req)
	if res := args.Get(0); res != nil {
		return res.(*review.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSubmitHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const businessID = "b1f6c6a0-0000-0000-0000-000000000001"

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "высокая оценка уходит на Google",
			body: `{"businessId":"` + businessID + `","rating":5,"isPublicChoice":true}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, businessID, review.SubmitRequest{
					Rating:         5,
					IsPublicChoice: true,
				}).Return(&review.SubmitResult{
					ReviewID:    7,
					Destination: models.DestinationExternal,
					RedirectURL: "https://g.page/r/cafe/review",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"destination":"external-google"`,
		},
		{
			name: "низкая оценка уходит в анкету",
			body: `{"businessId":"` + businessID + `","rating":2,"comment":"cold food"}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, businessID, review.SubmitRequest{
					Rating:  2,
					Comment: "cold food",
				}).Return(&review.SubmitResult{
					ReviewID:    8,
					Destination: models.DestinationSurvey,
					RedirectURL: "/survey/" + businessID + "?reviewId=8",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"target":"/survey/` + businessID + `?reviewId=8"`,
		},
		{
			name:           "нулевая оценка отклоняется",
			body:           `{"businessId":"` + businessID + `","rating":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Rating is a required field`,
		},
		{
			name:           "оценка вне диапазона отклоняется",
			body:           `{"businessId":"` + businessID + `","rating":6}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Rating is out of range`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"businessId":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "неизвестный бизнес",
			body: `{"businessId":"` + businessID + `","rating":4}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, businessID, review.SubmitRequest{
					Rating: 4,
				}).Return(nil, review.ErrBusinessNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"business not found"}`,
		},
		{
			name: "сбой хранилища не маскируется под 404",
			body: `{"businessId":"` + businessID + `","rating":4}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, businessID, review.SubmitRequest{
					Rating: 4,
				}).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not submit review"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/reviews/submit", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
