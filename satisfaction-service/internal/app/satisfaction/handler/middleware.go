package handler

import (
	"context"
	"net/http"
	"strings"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/util"

	"github.com/gin-gonic/gin"
)

// TokenValidator проверяет подпись и срок действия токена
type TokenValidator interface {
	ValidateToken(token string) (*util.TokenClaims, error)
}

// Identity - личность из валидного токена
type Identity struct {
	ID   string
	Role string
}

type identityKey struct{}

// IdentityFromContext возвращает личность, положенную Authenticate
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Authenticate пропускает запрос только с валидным токеном в Authorization
// Нет токена - 403, токен не прошёл проверку - 401. Роль не проверяется
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "No token provided"})
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			logger.Ctx(c.Request.Context()).Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Failed to authenticate token"})
			return
		}

		c.Set("user_id", claims.ID)
		c.Set("role", claims.Role)

		ctx := context.WithValue(c.Request.Context(), identityKey{}, Identity{ID: claims.ID, Role: claims.Role})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken достаёт токен из заголовка, схема Bearer необязательна
func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if strings.EqualFold(token, "Bearer") {
		return ""
	}
	if scheme, rest, ok := strings.Cut(token, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return token
}
