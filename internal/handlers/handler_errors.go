package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
	FundingRef string `json:"fundingRef,omitempty"`
}

// conflictCodes maps workflow rule violations to stable client-facing codes.
var conflictCodes = []struct {
	err  error
	code string
}{
	{apperrors.ErrAlreadyApproved, "ALREADY_APPROVED"},
	{apperrors.ErrAlreadyCredited, "ALREADY_CREDITED"},
	{apperrors.ErrAlreadyRejected, "ALREADY_REJECTED"},
	{apperrors.ErrDuplicate, "DUPLICATE"},
}

// errorStatus resolves the HTTP status and body for a service error.
func errorStatus(err error, fallback string) (int, ErrorResponse) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"}
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "VALIDATION_FAILED"}
	case errors.Is(err, apperrors.ErrConcurrentModification):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "CONCURRENT_MODIFICATION", Retryable: true}
	}
	for _, cc := range conflictCodes {
		if errors.Is(err, cc.err) {
			return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: cc.code}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: fallback}
}

// respondWithError writes the mapped error. Server errors are logged with their cause,
// client errors at warn level.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status, body := errorStatus(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request refused", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, body)
}
