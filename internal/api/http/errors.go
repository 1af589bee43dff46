package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/KingDaeWon/dw-web/internal/auth"
	apperrors "github.com/KingDaeWon/dw-web/pkg/util/errorutil"
)

// toDomainError maps the closed auth error set to boundary errors with stable
// codes, then falls back to the generic mapping.
func toDomainError(err error) *apperrors.DomainError {
	switch {
	case errors.Is(err, auth.ErrAlreadyRegistered):
		return apperrors.NewDomainError("ALREADY_REGISTERED", "member name already registered", http.StatusConflict, nil)
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return apperrors.NewDomainError("AUTHENTICATION_FAILED", "invalid credentials", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrAccessMalformed):
		return apperrors.NewDomainError("ACCESS_MALFORMED", "access token malformed", http.StatusBadRequest, nil)
	case errors.Is(err, auth.ErrRefreshExpired):
		return apperrors.NewDomainError("REFRESH_EXPIRED", "refresh token expired", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrRefreshInvalid):
		return apperrors.NewDomainError("REFRESH_INVALID", "refresh token invalid", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrSessionNotFound):
		return apperrors.NewDomainError("SESSION_NOT_FOUND", "member is logged out", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrRefreshMismatch):
		return apperrors.NewDomainError("REFRESH_MISMATCH", "refresh token does not match the current session", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrStoreUnavailable):
		return apperrors.NewDomainError("STORE_UNAVAILABLE", "token store unavailable", http.StatusServiceUnavailable, nil)
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ToDomainError(apperrors.NewNotFound("member", nil))
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return apperrors.NewDomainError(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
		}
		return apperrors.ToDomainError(err)
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	default:
		return "REQUEST_FAILED"
	}
}
