package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// FieldError - нарушение ограничения одного поля
type FieldError struct {
	Field   string
	Message string
}

// ValidationError возвращается, если входные данные не прошли проверку
// Entity - имя модели (Review, User), попадает в текст ошибки
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, ", "))
}

func newValidator() *validator.Validate {
	v := validator.New()
	// в сообщениях используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateStruct переводит ошибки validator в *ValidationError
func validateStruct(v *validator.Validate, entityName string, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate %s: %w", entityName, err)
	}

	result := &ValidationError{Entity: entityName}
	for _, fe := range validationErrors {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Path `%s` is required.", fe.Field())
	case "gte", "min":
		return fmt.Sprintf("Path `%s` (%v) is less than minimum allowed value (%s).", fe.Field(), deref(fe.Value()), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("Path `%s` (%v) is more than maximum allowed value (%s).", fe.Field(), deref(fe.Value()), fe.Param())
	default:
		return fmt.Sprintf("Path `%s` failed on the '%s' rule.", fe.Field(), fe.Tag())
	}
}

func deref(value interface{}) interface{} {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return value
}
