package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

// RenderAppError maps an application error to the documented HTTP status and
// writes a JSON error body. Infrastructure failures (configuration, timeouts,
// unknown errors) are logged with full detail server-side and returned with a
// generic body so internals never leak to the caller.
func RenderAppError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := apperrors.GetCode(err)

	switch code {
	case apperrors.ErrCodeInvalidCredentials:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeUserNotProvisioned, apperrors.ErrCodeClientNotProvisioned:
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeTokenMissing, apperrors.ErrCodeTokenMalformed,
		apperrors.ErrCodeTokenExpired, apperrors.ErrCodeTokenInvalid:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeConflict:
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: string(code), Err: err})
	default:
		// configuration, timeout, canceled, internal, and anything unmapped.
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.String("code", string(code)),
				slog.Any("error", err),
			)
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("internal server error"),
		})
	}
}
