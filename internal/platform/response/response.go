package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lakeside-hotel/service-booking/internal/domain"
)

// Success writes a 200 JSON response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 JSON response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes a bare 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with a plain-text message.
func BadRequest(c *gin.Context, message string) {
	c.String(http.StatusBadRequest, message)
}

// Error maps err to a status code and writes its message as plain text.
// Errors outside the domain taxonomy are hidden behind a generic message.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Kind {
	case domain.KindNotFound:
		c.String(http.StatusNotFound, appErr.Message)
	case domain.KindInvalidRequest:
		c.String(http.StatusBadRequest, appErr.Message)
	case domain.KindConflict:
		c.String(http.StatusConflict, appErr.Message)
	default:
		c.String(http.StatusInternalServerError, appErr.Message)
	}
}

// BindError writes a 400 describing a failed request binding.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, err.Error())
		return
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	BadRequest(c, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
