package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// userDocument - представление пользователя в MongoDB (_id типа ObjectID)
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Role:      d.Role,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает хранилище учётных записей в MongoDB
// Уникальность email не проверяется
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection(usersCollection),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	doc := userDocument{
		Email:     user.Email,
		Role:      user.Role,
		Password:  user.Password,
		CreatedAt: user.CreatedAt.Truncate(time.Millisecond),
	}

	timer := metrics.NewStoreTimer(metricsService, "mongo", metrics.StoreOpInsert, usersCollection)
	result, err := r.collection.InsertOne(ctx, doc)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mongoStoreError(err))
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}

	return nil
}

// GetByEmail возвращает первого пользователя с таким email или ErrUserNotFound
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument

	timer := metrics.NewStoreTimer(metricsService, "mongo", metrics.StoreOpFind, usersCollection)
	// при повторах email берётся самая ранняя учётная запись
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := r.collection.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		timer.Done(nil)
		return nil, ErrUserNotFound
	}
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mongoStoreError(err))
	}

	return doc.toEntity(), nil
}
