package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thegoldstar/goldstar-server/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindNegativeReviewDigests(ctx context.Context, since time.Time) ([]*models.NegativeReviewDigest, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NegativeReviewDigest), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_publishDigests(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRepository)
	}{
		{
			name: "no negative reviews for the period",
			setupMocks: func(r *MockRepository) {
				r.On("FindNegativeReviewDigests", mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*models.NegativeReviewDigest{}, nil).Once()
			},
		},
		{
			name: "repository error is logged, not fatal",
			setupMocks: func(r *MockRepository) {
				r.On("FindNegativeReviewDigests", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)
			service := New(repo, newNoopLogger())

			service.publishDigests(context.Background(), nil)

			repo.AssertExpectations(t)
		})
	}
}

func TestService_publishDigests_SinceWindow(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindNegativeReviewDigests", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		want := time.Now().UTC().Add(-DigestInterval)
		return since.Sub(want).Abs() < time.Minute
	})).Return([]*models.NegativeReviewDigest{}, nil).Once()
	service := New(repo, newNoopLogger())

	service.publishDigests(context.Background(), nil)

	repo.AssertExpectations(t)
}

func TestService_New(t *testing.T) {
	repo := new(MockRepository)
	logger := newNoopLogger()

	service := New(repo, logger)

	assert.NotNil(t, service)
	assert.Equal(t, repo, service.repo)
	assert.Equal(t, logger, service.log)
}
