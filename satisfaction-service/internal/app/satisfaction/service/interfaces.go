package service

import (
	"context"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/util"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
}

type ReportServiceInterface interface {
	GetReport(ctx context.Context, filter repository.ReviewFilter) (*entity.ReportSummary, error)
}

type AuthServiceInterface interface {
	SignUp(ctx context.Context, req *entity.SignUpRequest) (*entity.User, error)
	Login(ctx context.Context, req *entity.LoginRequest) (string, error)
	ValidateToken(token string) (*util.TokenClaims, error)
}
