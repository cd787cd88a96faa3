package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// writeServiceError maps a service error onto the public error taxonomy.
// Anything unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var upErr *domain.UpstreamError
	switch {
	case errors.Is(err, service.ErrTokenNotFound):
		rallysdk.ErrTokenNotFound.WriteError(w)

	case errors.Is(err, service.ErrInviteNotFound):
		rallysdk.ErrNotFound.WithDescription("invite is invalid or has expired").WriteError(w)

	case errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrListNotFound),
		errors.Is(err, service.ErrSignupNotFound):
		rallysdk.ErrNotFound.WithDescription(err.Error()).WriteError(w)

	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrEmailMismatch),
		errors.Is(err, service.ErrListLocked):
		rallysdk.ErrForbidden.WithDescription(err.Error()).WriteError(w)

	case errors.Is(err, service.ErrNoIdPSubject):
		rallysdk.ErrUnauthorized.WithDescription(err.Error()).WriteError(w)

	case errors.Is(err, service.ErrAlreadyMember):
		rallysdk.NewAPIError(http.StatusConflict, rallysdk.ErrorCodeConflict, err.Error()).WriteError(w)

	case errors.Is(err, service.ErrInvalidInvite),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidOrganization),
		errors.Is(err, service.ErrInvalidEvent),
		errors.Is(err, service.ErrInvalidList),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrInvalidSignup),
		errors.Is(err, service.ErrListFull):
		rallysdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)

	case errors.As(err, &upErr):
		log.Error("upstream request failed",
			slog.String("service", upErr.Service),
			slog.Int("upstream_status", upErr.StatusCode),
			slog.Any("error", err),
		)
		status := upErr.HTTPStatus()
		if status == http.StatusNotFound {
			rallysdk.ErrNotFound.WriteError(w)
			return
		}
		rallysdk.ErrUpstream.WriteError(w)

	default:
		log.Error("request failed", slog.Any("error", err))
		rallysdk.ErrServerError.WriteError(w)
	}
}

// decode reads and validates a JSON body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeAndValidate(r, dst); err != nil {
		if errors.Is(err, httpx.ErrBadBody) {
			rallysdk.ErrInvalidRequest.WithDescription("malformed JSON body").WriteError(w)
			return false
		}
		rallysdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return false
	}
	return true
}

// sessionEmail returns the authenticated email or writes a 401.
func sessionEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := httpx.EmailFromContext(r.Context())
	if !ok {
		rallysdk.ErrUnauthorized.WriteError(w)
		return "", false
	}
	return email, true
}
