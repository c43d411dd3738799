package entity

import "time"

// CreateReviewRequest - тело POST /review (JSON или форма)
// Указатели отличают отсутствующее поле от нулевого значения (score=0 допустим)
type CreateReviewRequest struct {
	StoreID  *int       `json:"storeId" form:"storeId" validate:"required"`
	Score    *float64   `json:"score" form:"score" validate:"required,gte=0,lte=5"`
	Datetime *time.Time `json:"datetime,omitempty" form:"datetime"`
}

// SignUpRequest - тело POST /sign-up
type SignUpRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role,omitempty" form:"role"`
}

// LoginRequest - тело POST /login
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type SignUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse - ответ 400: имя вида ошибки и сообщение
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MessageResponse - ответ 401/403
type MessageResponse struct {
	Message string `json:"message"`
}
