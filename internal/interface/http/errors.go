package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/pkg/response"
	"github.com/oksasatya/go-catalog-api/pkg/validation"
)

const msgServerError = "Server error"

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindInvalidID:
		return http.StatusBadRequest
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error envelope. Store failures never expose their cause.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = msgServerError
	}
	response.Error(c, status, msg, nil)
}

// badPayload answers a body that could not be decoded.
func badPayload(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
