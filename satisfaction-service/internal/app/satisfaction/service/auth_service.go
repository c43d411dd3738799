package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/util"

	"github.com/go-playground/validator/v10"
)

// AuthService регистрирует директоров и выдаёт им токены
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
	bcryptCost int
	validator  *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, jwtManager *util.JWTManager, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
		validator:  newValidator(),
	}
}

// SignUp создает пользователя, пароль сохраняется только в виде bcrypt хэша
// Повторный email не проверяется
func (s *AuthService) SignUp(ctx context.Context, req *entity.SignUpRequest) (*entity.User, error) {
	if err := validateStruct(s.validator, "User", req); err != nil {
		return nil, err
	}

	passwordHash, err := util.HashPasswordWithCost(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = entity.DefaultRole
	}

	user := &entity.User{
		Email:    req.Email,
		Role:     role,
		Password: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.AuthSignUps.Inc()
	return user, nil
}

// Login проверяет пароль и выдаёт токен {id, role}
// Отсутствующий пользователь и неверный пароль неразличимы для клиента
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (string, error) {
	if err := validateStruct(s.validator, "User", req); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.Password) {
		metrics.AuthLogins.WithLabelValues("failed").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	return token, nil
}

func (s *AuthService) ValidateToken(token string) (*util.TokenClaims, error) {
	return s.jwtManager.ValidateToken(token)
}
