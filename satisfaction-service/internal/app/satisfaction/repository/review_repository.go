package repository

import (
	"context"
	"fmt"
	"time"

	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsCollection = "reviews"

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает репозиторий отзывов поверх MongoDB
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		collection: db.Collection(reviewsCollection),
	}
}

// EnsureReviewIndexes создает индексы под запросы отчётов
// Вызывается один раз при старте, повторный вызов безопасен
func EnsureReviewIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "datetime", Value: 1}},
			Options: options.Index().SetName("datetime_idx"),
		},
		{
			Keys:    bson.D{{Key: "storeId", Value: 1}, {Key: "datetime", Value: 1}},
			Options: options.Index().SetName("store_datetime_idx"),
		},
	}

	if _, err := db.Collection(reviewsCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

// Create сохраняет отзыв, если datetime не задан - подставляет текущее время
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.Datetime.IsZero() {
		review.Datetime = time.Now().UTC()
	}
	// MongoDB хранит даты с точностью до миллисекунд
	review.Datetime = review.Datetime.Truncate(time.Millisecond)

	timer := metrics.NewStoreTimer(metricsService, "mongo", metrics.StoreOpInsert, reviewsCollection)
	result, err := r.collection.InsertOne(ctx, review)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", mongoStoreError(err))
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// Find возвращает отзывы, подходящие под фильтр
// Ошибка приведения from/to/storeId возвращается как StoreError с KindCastError
func (r *reviewRepository) Find(ctx context.Context, filter ReviewFilter) ([]entity.Review, error) {
	query, err := filter.BSON()
	if err != nil {
		return nil, err
	}

	timer := metrics.NewStoreTimer(metricsService, "mongo", metrics.StoreOpFind, reviewsCollection)
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		timer.Done(err)
		return nil, fmt.Errorf("failed to find reviews: %w", mongoStoreError(err))
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0)
	err = cursor.All(ctx, &reviews)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", mongoStoreError(err))
	}

	return reviews, nil
}
