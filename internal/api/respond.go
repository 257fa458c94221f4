package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvly/divvly/internal/auth"
	"github.com/divvly/divvly/internal/ledger"
)

// errorResponse is the error envelope returned on every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain error kinds to HTTP statuses. Unknown errors
// become opaque 500s; their detail goes to the log, not the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(status, errorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrGroupNotFound),
		errors.Is(err, ledger.ErrBillNotFound),
		errors.Is(err, ledger.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientMembers),
		errors.Is(err, ledger.ErrTooManyMembers),
		errors.Is(err, ledger.ErrMismatchedInput),
		errors.Is(err, ledger.ErrDuplicateMember),
		errors.Is(err, ledger.ErrNoParticipants),
		errors.Is(err, ledger.ErrNegativeAmount),
		errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNoDebt),
		errors.Is(err, ledger.ErrInsufficientDebt):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientAllowance),
		errors.Is(err, ledger.ErrTransferFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrNotGroupMember):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest reports a malformed request body or parameter.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
