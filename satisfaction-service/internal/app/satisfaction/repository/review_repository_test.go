package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestReviewRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success with explicit datetime", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewReviewRepository(mt.DB)

		at := time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC)
		review := &entity.Review{StoreID: 1, Score: 4, Datetime: at}

		err := repo.Create(context.Background(), review)

		require.NoError(mt, err)
		assert.False(mt, review.ID.IsZero())
		assert.Equal(mt, at, review.Datetime)
	})

	mt.Run("datetime defaults to now", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewReviewRepository(mt.DB)

		before := time.Now().UTC().Add(-time.Second)
		review := &entity.Review{StoreID: 2, Score: 0}

		err := repo.Create(context.Background(), review)

		require.NoError(mt, err)
		assert.True(mt, review.Datetime.After(before))
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewReviewRepository(mt.DB)

		err := repo.Create(context.Background(), &entity.Review{StoreID: 1, Score: 3})

		var storeErr *StoreError
		require.True(mt, errors.As(err, &storeErr))
		assert.Equal(mt, KindMongoServerError, storeErr.Kind)
	})
}

func TestReviewRepository_Find(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns decoded reviews", func(mt *mtest.T) {
		at := time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC)
		first := mtest.CreateCursorResponse(1, "db.reviews", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "storeId", Value: 1},
				{Key: "score", Value: 2.0},
				{Key: "datetime", Value: primitive.NewDateTimeFromTime(at)},
			},
		)
		next := mtest.CreateCursorResponse(1, "db.reviews", mtest.NextBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "storeId", Value: 1},
				{Key: "score", Value: 4.0},
				{Key: "datetime", Value: primitive.NewDateTimeFromTime(at)},
			},
		)
		end := mtest.CreateCursorResponse(0, "db.reviews", mtest.NextBatch)
		mt.AddMockResponses(first, next, end)
		repo := NewReviewRepository(mt.DB)

		reviews, err := repo.Find(context.Background(), NewReviewFilter("1", "", ""))

		require.NoError(mt, err)
		require.Len(mt, reviews, 2)
		assert.Equal(mt, 1, reviews[0].StoreID)
		assert.Equal(mt, 2.0, reviews[0].Score)
		assert.Equal(mt, 4.0, reviews[1].Score)
		assert.True(mt, at.Equal(reviews[0].Datetime))
	})

	mt.Run("empty result is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.reviews", mtest.FirstBatch))
		repo := NewReviewRepository(mt.DB)

		reviews, err := repo.Find(context.Background(), NewReviewFilter("", "", ""))

		require.NoError(mt, err)
		assert.NotNil(mt, reviews)
		assert.Empty(mt, reviews)
	})

	mt.Run("cast error does not reach the server", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)

		_, err := repo.Find(context.Background(), NewReviewFilter("", "yesterday", ""))

		var storeErr *StoreError
		require.True(mt, errors.As(err, &storeErr))
		assert.Equal(mt, KindCastError, storeErr.Kind)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))
		repo := NewReviewRepository(mt.DB)

		_, err := repo.Find(context.Background(), NewReviewFilter("", "", ""))

		var storeErr *StoreError
		require.True(mt, errors.As(err, &storeErr))
		assert.Equal(mt, KindMongoServerError, storeErr.Kind)
	})
}
