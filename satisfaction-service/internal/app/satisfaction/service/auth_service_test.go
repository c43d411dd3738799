package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository/mocks"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(userRepo *mocks.MockUserRepository) *AuthService {
	return NewAuthService(userRepo, util.NewJWTManager("test-secret", time.Hour), bcrypt.MinCost)
}

func TestSignUp_DefaultRoleAndHashedPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = "user-1"
	})

	user, err := service.SignUp(ctx, &entity.SignUpRequest{Email: "boss@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, entity.DefaultRole, user.Role)
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, util.CheckPassword("secret", user.Password))
}

func TestSignUp_ExplicitRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool { return u.Role == "manager" })).Return(nil)

	user, err := service.SignUp(ctx, &entity.SignUpRequest{Email: "m@example.com", Password: "secret", Role: "manager"})

	require.NoError(t, err)
	assert.Equal(t, "manager", user.Role)
	userRepo.AssertExpectations(t)
}

func TestSignUp_ValidationError(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	_, err := service.SignUp(context.Background(), &entity.SignUpRequest{Email: "boss@example.com"})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "User", validationErr.Entity)
	assert.Equal(t, "password", validationErr.Fields[0].Field)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_RepoError(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	userRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	user, err := service.SignUp(ctx, &entity.SignUpRequest{Email: "boss@example.com", Password: "secret"})

	assert.Error(t, err)
	assert.Nil(t, user)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	hash, err := util.HashPasswordWithCost("secret", bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", ctx, "boss@example.com").
		Return(&entity.User{ID: "user-1", Email: "boss@example.com", Role: "director", Password: hash}, nil)

	token, err := service.Login(ctx, &entity.LoginRequest{Email: "boss@example.com", Password: "secret"})

	require.NoError(t, err)
	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "director", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	hash, err := util.HashPasswordWithCost("secret", bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", ctx, "boss@example.com").
		Return(&entity.User{ID: "user-1", Password: hash}, nil)

	token, err := service.Login(ctx, &entity.LoginRequest{Email: "boss@example.com", Password: "wrong"})

	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserIsInvalidCredentials(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := service.Login(ctx, &entity.LoginRequest{Email: "nobody@example.com", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StoreError(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	ctx := context.Background()
	storeErr := &repository.StoreError{Kind: repository.KindMongoError, Err: errors.New("connection refused")}
	userRepo.On("GetByEmail", ctx, "boss@example.com").Return(nil, storeErr)

	_, err := service.Login(ctx, &entity.LoginRequest{Email: "boss@example.com", Password: "x"})

	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	var target *repository.StoreError
	assert.True(t, errors.As(err, &target))
}

func TestLogin_MissingFields(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	service := newAuthService(userRepo)

	_, err := service.Login(context.Background(), &entity.LoginRequest{})

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
