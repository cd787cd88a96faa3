package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/jwtx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

type AuthHandler struct {
	MagicLinks *service.MagicLinkService
	Sessions   *service.SessionService
	Login      *service.LoginService // nil when no identity provider is configured

	Cookies       cookieJar
	AppRedirect   string
	ErrorRedirect string
}

// HandleMagicRequest godoc
//
//	@Summary		Request Magic Link
//	@Description	Emails a single-use sign-in link. An optional invite token is accepted when the link is redeemed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rallysdk.MagicLinkRequest	true	"email, invite_token"
//	@Success		200		{object}	rallysdk.MessageResponse
//	@Failure		400		{object}	rallysdk.APIError
//	@Failure		429		{object}	rallysdk.APIError
//	@Router			/auth/magic/request [post].
func (h *AuthHandler) HandleMagicRequest(w http.ResponseWriter, r *http.Request) {
	var req rallysdk.MagicLinkRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.MagicLinks.Request(r.Context(), req.Email, req.InviteToken); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rallysdk.MessageResponse{Message: "check your email for a sign-in link"})
}

// HandleMagicRedeem godoc
//
//	@Summary		Redeem Magic Link
//	@Description	Consumes a magic link, sets the session cookie and redirects to the app. Invalid, used and expired links redirect to the error page.
//	@Tags			Auth
//	@Param			token	path	string	true	"magic link token"
//	@Success		302
//	@Router			/auth/magic/{token} [get].
func (h *AuthHandler) HandleMagicRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	res, err := h.MagicLinks.Redeem(ctx, r.PathValue("token"))
	if err != nil {
		if !errors.Is(err, service.ErrTokenNotFound) {
			log.Error("magic link redeem failed", slog.Any("error", err))
		}
		http.Redirect(w, r, h.ErrorRedirect, http.StatusFound)
		return
	}

	token, expires, err := h.Sessions.Issue(res.Email, "", jwtx.AMRMagicLink)
	if err != nil {
		log.Error("failed to sign session", slog.Any("error", err))
		http.Redirect(w, r, h.ErrorRedirect, http.StatusFound)
		return
	}

	h.Cookies.setSession(w, token, expires)
	http.Redirect(w, r, h.AppRedirect, http.StatusFound)
}

// HandleLogin godoc
//
//	@Summary		Start OIDC Login
//	@Description	Redirects to the identity provider with an authorization-code + PKCE request.
//	@Tags			Auth
//	@Success		302
//	@Failure		404	{object}	rallysdk.APIError	"no identity provider configured"
//	@Router			/auth/login [get].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if h.Login == nil {
		rallysdk.ErrNotFound.WithDescription("identity provider login is not configured").WriteError(w)
		return
	}

	start, err := h.Login.Start()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setLoginState(w, start.State, start.Verifier)
	http.Redirect(w, r, start.URL, http.StatusFound)
}

// HandleCallback godoc
//
//	@Summary		OIDC Callback
//	@Description	Completes the login, sets the session cookie and redirects to the app.
//	@Tags			Auth
//	@Param			code	query	string	true	"authorization code"
//	@Param			state	query	string	true	"state echoed by the provider"
//	@Success		302
//	@Router			/auth/callback [get].
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Login == nil {
		rallysdk.ErrNotFound.WithDescription("identity provider login is not configured").WriteError(w)
		return
	}

	wantState, verifier := h.Cookies.takeLoginState(w, r)
	q := r.URL.Query()

	id, err := h.Login.Finish(ctx, q.Get("code"), q.Get("state"), wantState, verifier)
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) || errors.Is(err, service.ErrLoginRejected) {
			log.Warn("oidc login rejected", slog.Any("error", err))
		} else {
			log.Error("oidc login failed", slog.Any("error", err))
		}
		http.Redirect(w, r, h.ErrorRedirect, http.StatusFound)
		return
	}

	token, expires, err := h.Sessions.Issue(id.Email, id.Subject, jwtx.AMROIDC)
	if err != nil {
		log.Error("failed to sign session", slog.Any("error", err))
		http.Redirect(w, r, h.ErrorRedirect, http.StatusFound)
		return
	}

	h.Cookies.setSession(w, token, expires)
	http.Redirect(w, r, h.AppRedirect, http.StatusFound)
}

// HandleLogout godoc
//
//	@Summary	Log Out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	rallysdk.MessageResponse
//	@Router		/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.clearSession(w)
	httpx.WriteJSON(w, http.StatusOK, rallysdk.MessageResponse{Message: "signed out"})
}

// HandleSession godoc
//
//	@Summary	Current Session
//	@Tags		Auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	rallysdk.SessionResponse
//	@Failure	401	{object}	rallysdk.APIError
//	@Router		/auth/session [get].
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		rallysdk.ErrUnauthorized.WriteError(w)
		return
	}

	resp := rallysdk.SessionResponse{
		Email:      claims.Email,
		IdPSubject: claims.IdPSubject,
		AMR:        claims.AMR,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
