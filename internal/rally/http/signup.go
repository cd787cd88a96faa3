package http

import (
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

// SignupHandler serves the public signup pages. Removing a signup is the one
// route that needs an organization admin session.
type SignupHandler struct {
	Events  *service.EventService
	Signups *service.SignupService
}

// HandlePage godoc
//
//	@Summary		Public Event Page
//	@Description	The event with its lists in order and current signups. Phones are masked and emails omitted.
//	@Tags			Signup
//	@Produce		json
//	@Param			orgId	path		string	true	"organization id"
//	@Param			slug	path		string	true	"event slug"
//	@Success		200		{object}	rallysdk.PublicEventPage
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/signup/{orgId}/{slug} [get].
func (h *SignupHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	page, err := h.Events.PublicPage(r.Context(), r.PathValue("orgId"), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPublicPage(page))
}

// HandleCreate godoc
//
//	@Summary		Sign Up
//	@Description	Adds the volunteer to a list. Locked lists return 403 and full lists 400.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			orgId	path		string						true	"organization id"
//	@Param			slug	path		string						true	"event slug"
//	@Param			listId	path		string						true	"list id"
//	@Param			request	body		rallysdk.CreateSignupRequest	true	"name, phone, email, note"
//	@Success		201		{object}	rallysdk.PublicSignup
//	@Failure		400		{object}	rallysdk.APIError
//	@Failure		403		{object}	rallysdk.APIError
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/signup/{orgId}/{slug}/lists/{listId} [post].
func (h *SignupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req rallysdk.CreateSignupRequest
	if !decode(w, r, &req) {
		return
	}

	s, err := h.Signups.Create(r.Context(), r.PathValue("orgId"), r.PathValue("slug"), r.PathValue("listId"), service.SignupInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Note:  req.Note,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPublicSignup(s))
}

// HandleRemove godoc
//
//	@Summary		Remove Signup
//	@Description	Removes a signup unless its list is locked. The caller must administer the organization.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		rallysdk.RemoveSignupRequest	true	"signup_id"
//	@Success		200		{object}	rallysdk.MessageResponse
//	@Failure		400		{object}	rallysdk.APIError
//	@Failure		401		{object}	rallysdk.APIError
//	@Failure		403		{object}	rallysdk.APIError	"not an admin, or list locked"
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/signup/remove [delete].
func (h *SignupHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.RemoveSignupRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Signups.Remove(r.Context(), req.SignupID, actor); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rallysdk.MessageResponse{Message: "signup removed"})
}
