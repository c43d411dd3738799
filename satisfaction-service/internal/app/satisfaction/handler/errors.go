package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/service"

	"github.com/gin-gonic/gin"
)

const (
	errorTypeValidation = "ValidationError"
	errorTypeSyntax     = "SyntaxError"
	errorTypeGeneric    = "Error"
)

// bindBody разбирает тело по Content-Type: JSON или urlencoded/multipart форма
// Пустое тело считается пустым объектом. При ошибке сам отвечает 400 и возвращает false
func bindBody(c *gin.Context, entityName string, dst interface{}) bool {
	err := c.ShouldBind(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		numErr    *strconv.NumError
		timeErr   *time.ParseError
	)
	switch {
	case errors.As(err, &syntaxErr):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Type: errorTypeSyntax, Message: err.Error()})
	case errors.As(err, &typeErr):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Type: errorTypeValidation,
			Message: fmt.Sprintf("%s validation failed: %s: Cast to %s failed for value of type %s",
				entityName, typeErr.Field, typeErr.Type.String(), typeErr.Value),
		})
	case errors.As(err, &numErr):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Type:    errorTypeValidation,
			Message: fmt.Sprintf("%s validation failed: Cast to Number failed for value %q", entityName, numErr.Num),
		})
	case errors.As(err, &timeErr):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Type:    errorTypeValidation,
			Message: fmt.Sprintf("%s validation failed: datetime: Cast to date failed for value %q", entityName, timeErr.Value),
		})
	default:
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Type: errorTypeSyntax, Message: err.Error()})
	}
	return false
}

// respondError отвечает 400 {type, message}
// type - имя вида ошибки: ValidationError, CastError, MongoError и т.д.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		storeErr      *repository.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Type: errorTypeValidation, Message: validationErr.Error()})
	case errors.As(err, &storeErr):
		if storeErr.Kind != repository.KindCastError {
			logger.Ctx(c.Request.Context()).Error().Err(err).Str("kind", storeErr.Kind).Msg("store request failed")
		}
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Type: storeErr.Kind, Message: storeErr.Error()})
	default:
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Type: errorTypeGeneric, Message: err.Error()})
	}
}
