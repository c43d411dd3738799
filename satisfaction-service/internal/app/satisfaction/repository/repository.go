package repository

import (
	"context"
	"errors"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"go.mongodb.org/mongo-driver/mongo"
)

const metricsService = "satisfaction-service"

var (
	ErrUserNotFound = errors.New("user not found")
)

// Виды ошибок хранилища, попадают в поле type ответа 400
const (
	KindCastError        = "CastError"
	KindMongoError       = "MongoError"
	KindMongoServerError = "MongoServerError"
	KindPostgresError    = "PostgresError"
)

// StoreError - ошибка хранилища или приведения типов на его границе
type StoreError struct {
	Kind string
	Err  error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ReviewRepository - хранилище отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	Find(ctx context.Context, filter ReviewFilter) ([]entity.Review, error)
}

// UserRepository - хранилище учётных записей
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

func mongoStoreError(err error) error {
	kind := KindMongoError
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		kind = KindMongoServerError
	}
	return &StoreError{Kind: kind, Err: err}
}
