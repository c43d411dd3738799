package service

import (
	"context"
	"fmt"
	"time"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/infrastructure"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"

	"github.com/go-playground/validator/v10"
)

// publishTimeout ограничивает отправку события на пути запроса
const publishTimeout = 2 * time.Second

// ReviewService принимает отзывы
// Координирует работу репозитория, Kafka и кеша отчётов
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	publisher  infrastructure.MessagePublisher
	cache      infrastructure.ReportCache
	validator  *validator.Validate
}

// NewReviewService создает сервис отзывов, cache может быть nil
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	publisher infrastructure.MessagePublisher,
	cache infrastructure.ReportCache,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		publisher:  publisher,
		cache:      cache,
		validator:  newValidator(),
	}
}

// CreateReview проверяет и сохраняет отзыв
// 1. Валидация storeId и score (0..5)
// 2. Сохранение в MongoDB
// 3. Сброс поколения кеша отчётов и событие REVIEW_CREATED
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	if err := validateStruct(s.validator, "Review", req); err != nil {
		return nil, err
	}

	review := &entity.Review{
		StoreID: *req.StoreID,
		Score:   *req.Score,
	}
	if req.Datetime != nil {
		review.Datetime = req.Datetime.UTC()
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsScore.Observe(review.Score)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate report cache")
		}
	}

	event := entity.ReviewEvent{
		EventType: "REVIEW_CREATED",
		ReviewID:  review.ID.Hex(),
		StoreID:   review.StoreID,
		Score:     review.Score,
		Datetime:  review.Datetime,
		Timestamp: time.Now().UTC(),
	}
	// отзыв уже сохранён, проблемы с Kafka не критичны
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.PublishReviewEvent(publishCtx, event); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("review_id", event.ReviewID).Msg("failed to publish review created event")
	}

	return review, nil
}
