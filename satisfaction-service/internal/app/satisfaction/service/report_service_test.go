package service

import (
	"context"
	"errors"
	"testing"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reviewsWithScores(scores ...float64) []entity.Review {
	reviews := make([]entity.Review, 0, len(scores))
	for _, s := range scores {
		reviews = append(reviews, entity.Review{StoreID: 1, Score: s})
	}
	return reviews
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		scores   []float64
		expected entity.ReportSummary
	}{
		{"no reviews", nil, entity.ReportSummary{AverageScore: 0, Visitors: 0}},
		{"single review", []float64{3}, entity.ReportSummary{AverageScore: 3, Visitors: 1}},
		{"mean of three", []float64{2, 4, 6}, entity.ReportSummary{AverageScore: 4, Visitors: 3}},
		{"fractional mean", []float64{1, 2}, entity.ReportSummary{AverageScore: 1.5, Visitors: 2}},
		{"all zero", []float64{0, 0, 0}, entity.ReportSummary{AverageScore: 0, Visitors: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Summarize(reviewsWithScores(tc.scores...)))
		})
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	a := Summarize(reviewsWithScores(1, 5, 3, 2))
	b := Summarize(reviewsWithScores(2, 3, 5, 1))

	assert.Equal(t, a, b)
}

func TestGetReport_WithoutCache(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	service := NewReportService(reviewRepo, nil)

	ctx := context.Background()
	filter := repository.NewReviewFilter("1", "", "")
	reviewRepo.On("Find", ctx, filter).Return(reviewsWithScores(2, 4, 6), nil)

	summary, err := service.GetReport(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AverageScore)
	assert.Equal(t, 3, summary.Visitors)
}

func TestGetReport_RepoError(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	service := NewReportService(reviewRepo, nil)

	ctx := context.Background()
	filter := repository.NewReviewFilter("", "bad", "")
	castErr := &repository.StoreError{Kind: repository.KindCastError, Err: errors.New("Cast to date failed")}
	reviewRepo.On("Find", ctx, filter).Return(nil, castErr)

	summary, err := service.GetReport(ctx, filter)

	assert.Nil(t, summary)
	var storeErr *repository.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, repository.KindCastError, storeErr.Kind)
}

func TestGetReport_CacheHit(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	cache := new(mocks.MockReportCache)
	service := NewReportService(reviewRepo, cache)

	ctx := context.Background()
	filter := repository.NewReviewFilter("", "", "")
	cached := &entity.ReportSummary{AverageScore: 3.5, Visitors: 10}
	cache.On("Lookup", ctx, filter.CacheKey()).Return(cached, int64(2), nil)

	summary, err := service.GetReport(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, cached, summary)
	reviewRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestGetReport_CacheMissStoresUnderLookupVersion(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	cache := new(mocks.MockReportCache)
	service := NewReportService(reviewRepo, cache)

	ctx := context.Background()
	filter := repository.NewReviewFilter("", "2021-01-01", "")
	cache.On("Lookup", ctx, filter.CacheKey()).Return(nil, int64(7), nil)
	reviewRepo.On("Find", ctx, filter).Return(reviewsWithScores(5, 3), nil)
	cache.On("Store", ctx, filter.CacheKey(), int64(7), entity.ReportSummary{AverageScore: 4, Visitors: 2}).Return(nil)

	summary, err := service.GetReport(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Visitors)
	cache.AssertExpectations(t)
}

func TestGetReport_CacheFailureFallsBackToStore(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	cache := new(mocks.MockReportCache)
	service := NewReportService(reviewRepo, cache)

	ctx := context.Background()
	filter := repository.NewReviewFilter("", "", "")
	cache.On("Lookup", ctx, filter.CacheKey()).Return(nil, int64(0), errors.New("redis down"))
	reviewRepo.On("Find", ctx, filter).Return(reviewsWithScores(1), nil)

	summary, err := service.GetReport(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Visitors)
	cache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
