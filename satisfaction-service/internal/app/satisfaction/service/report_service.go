package service

import (
	"context"
	"fmt"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/infrastructure"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
)

// Summarize сводит отзывы в отчёт: количество и среднюю оценку
// Для пустого набора средняя оценка 0
func Summarize(reviews []entity.Review) entity.ReportSummary {
	if len(reviews) == 0 {
		return entity.ReportSummary{}
	}

	var sum float64
	for _, r := range reviews {
		sum += r.Score
	}

	return entity.ReportSummary{
		AverageScore: sum / float64(len(reviews)),
		Visitors:     len(reviews),
	}
}

type ReportService struct {
	reviewRepo repository.ReviewRepository
	cache      infrastructure.ReportCache
}

// NewReportService создает сервис отчётов, cache может быть nil
func NewReportService(reviewRepo repository.ReviewRepository, cache infrastructure.ReportCache) *ReportService {
	return &ReportService{
		reviewRepo: reviewRepo,
		cache:      cache,
	}
}

// GetReport считает отчёт по фильтру, при наличии кеша читает через него
func (s *ReportService) GetReport(ctx context.Context, filter repository.ReviewFilter) (*entity.ReportSummary, error) {
	scope := "all"
	if filter.HasStore() {
		scope = "store"
	}

	key := filter.CacheKey()
	var version int64
	cacheUsable := s.cache != nil

	if cacheUsable {
		cached, v, err := s.cache.Lookup(ctx, key)
		switch {
		case err != nil:
			logger.Ctx(ctx).Warn().Err(err).Msg("report cache lookup failed")
			cacheUsable = false
		case cached != nil:
			metrics.ReportsServed.WithLabelValues(scope).Inc()
			return cached, nil
		default:
			version = v
		}
	}

	reviews, err := s.reviewRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	summary := Summarize(reviews)

	if cacheUsable {
		if err := s.cache.Store(ctx, key, version, summary); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("failed to store report in cache")
		}
	}

	metrics.ReportsServed.WithLabelValues(scope).Inc()
	return &summary, nil
}
