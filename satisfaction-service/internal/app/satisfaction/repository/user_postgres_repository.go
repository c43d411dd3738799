package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userPostgresRepository реализует UserRepository для PostgreSQL через GORM
type userPostgresRepository struct {
	db *gorm.DB
}

// NewUserPostgresRepository создает хранилище учётных записей в PostgreSQL
func NewUserPostgresRepository(db *gorm.DB) UserRepository {
	return &userPostgresRepository{db: db}
}

// MigrateUsers создает таблицу users, если её нет
func MigrateUsers(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

func (r *userPostgresRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	timer := metrics.NewStoreTimer(metricsService, "postgres", metrics.StoreOpInsert, usersCollection)
	err := r.db.WithContext(ctx).Create(user).Error
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", &StoreError{Kind: KindPostgresError, Err: err})
	}

	return nil
}

func (r *userPostgresRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User

	timer := metrics.NewStoreTimer(metricsService, "postgres", metrics.StoreOpFind, usersCollection)
	// при повторах email берётся самая ранняя учётная запись
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		timer.Done(nil)
		return nil, ErrUserNotFound
	}
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", &StoreError{Kind: KindPostgresError, Err: err})
	}

	return &user, nil
}
