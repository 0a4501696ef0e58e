package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error chain to the HTTP status returned to the client.
func statusFor(err error) int {
	switch apperrors.Code(err) {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeInvalidState, apperrors.CodeDuplicateRequest:
		return http.StatusConflict
	case apperrors.CodeValidationConflict:
		return http.StatusUnprocessableEntity
	case apperrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// respondError logs and writes a service error. Internal causes are not echoed.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	body := dto.ErrorResponse{Error: err.Error(), Code: apperrors.Code(err)}
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
		body.Error = msg
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

func respondBadRequest(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: apperrors.CodeValidationConflict})
}

// actorOrAbort returns the authenticated actor, writing 401 when absent.
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
