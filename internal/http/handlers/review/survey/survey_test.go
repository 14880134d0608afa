package survey

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

	"github.com/thegoldstar/goldstar-server/internal/services/review"
)

// MockService реализует интерфейс survey.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitSurvey(ctx context.Context, businessUID string, req review.SurveyRequest) (int, error) {
	args := m.Called(ctx, businessUID, req)
	return args.Int(0), args.Error(1)
}

func TestSurveyHandler(t *testing.T) {
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
			name: "анкета сохраняется",
			body: `{"businessId":"` + businessID + `","reviewId":11,"improvementAreas":["wait time"],"feedback":"too slow"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitSurvey", mock.Anything, businessID, review.SurveyRequest{
					ReviewID:         11,
					ImprovementAreas: []string{"wait time"},
					Feedback:         "too slow",
				}).Return(3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"surveyId":3`,
		},
		{
			name: "чужой отзыв отклоняется",
			body: `{"businessId":"` + businessID + `","reviewId":11}`,
			setupMock: func(m *MockService) {
				m.On("SubmitSurvey", mock.Anything, businessID, review.SurveyRequest{
					ReviewID: 11,
				}).Return(0, review.ErrReviewNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"review not found"}`,
		},
		{
			name: "сбой хранилища отдает 500",
			body: `{"businessId":"` + businessID + `","reviewId":11}`,
			setupMock: func(m *MockService) {
				m.On("SubmitSurvey", mock.Anything, businessID, review.SurveyRequest{
					ReviewID: 11,
				}).Return(0, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not save survey"}`,
		},
		{
			name:           "нулевой reviewId отклоняется",
			body:           `{"businessId":"` + businessID + `","reviewId":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field ReviewID is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/reviews/survey", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
