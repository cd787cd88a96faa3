package http

import (
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

type InviteHandler struct {
	Invites       *service.InviteService
	Organizations *service.OrganizationService
	BaseURL       string
}

// HandleSend godoc
//
//	@Summary		Send Invite
//	@Description	Creates (or re-tokens) a pending invite and returns a shareable URL. Caller must be an admin of the organization.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		rallysdk.SendInviteRequest	true	"organization_id, email, role"
//	@Success		201		{object}	rallysdk.SendInviteResponse
//	@Failure		400		{object}	rallysdk.APIError
//	@Failure		401		{object}	rallysdk.APIError
//	@Failure		403		{object}	rallysdk.APIError
//	@Failure		409		{object}	rallysdk.APIError	"already a member"
//	@Router			/invites/send [post].
func (h *InviteHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.SendInviteRequest
	if !decode(w, r, &req) {
		return
	}

	inv, raw, err := h.Invites.Create(r.Context(), req.OrganizationID, req.Email, domain.Role(req.Role), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := rallysdk.SendInviteResponse{
		InviteURL: service.InviteURL(h.BaseURL, raw),
		Invite:    toMember(inv),
	}
	if inv.TokenExpiresAt != nil {
		resp.ExpiresAt = *inv.TokenExpiresAt
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleView godoc
//
//	@Summary		View Invite
//	@Description	Describes a pending invite without consuming it. Unknown, used and expired tokens all return 404.
//	@Tags			Invites
//	@Produce		json
//	@Param			token	path		string	true	"invite token"
//	@Success		200		{object}	rallysdk.InviteView
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/invites/{token} [get].
func (h *InviteHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.Invites.GetByToken(ctx, r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	org, err := h.Organizations.Get(ctx, inv.OrganizationID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	view := rallysdk.InviteView{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Email:            inv.UserEmail,
		Role:             string(inv.Role),
		InvitedBy:        inv.InvitedBy,
	}
	if inv.TokenExpiresAt != nil {
		view.ExpiresAt = *inv.TokenExpiresAt
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// HandleAction godoc
//
//	@Summary		Accept or Decline Invite
//	@Description	Accepting requires a session. Unless invite links grant any identity, the session email must match the invite.
//	@Description	Declining needs no session. A consumed invite returns 404.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string						true	"invite token"
//	@Param			request	body		rallysdk.InviteActionRequest	true	"action: accept | decline"
//	@Success		200		{object}	rallysdk.InviteActionResponse
//	@Failure		400		{object}	rallysdk.APIError
//	@Failure		401		{object}	rallysdk.APIError
//	@Failure		403		{object}	rallysdk.APIError	"email mismatch"
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/invites/{token} [post].
func (h *InviteHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.PathValue("token")

	var req rallysdk.InviteActionRequest
	if !decode(w, r, &req) {
		return
	}

	switch req.Action {
	case rallysdk.InviteActionAccept:
		email, ok := sessionEmail(w, r)
		if !ok {
			return
		}
		m, err := h.Invites.Accept(ctx, raw, email)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		member := toMember(m)
		httpx.WriteJSON(w, http.StatusOK, rallysdk.InviteActionResponse{
			Status:         "accepted",
			OrganizationID: m.OrganizationID,
			Member:         &member,
		})

	case rallysdk.InviteActionDecline:
		inv, err := h.Invites.GetByToken(ctx, raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if err := h.Invites.Decline(ctx, raw); err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, rallysdk.InviteActionResponse{
			Status:         "declined",
			OrganizationID: inv.OrganizationID,
		})
	}
}
