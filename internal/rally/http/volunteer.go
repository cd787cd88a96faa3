package http

import (
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

type VolunteerHandler struct {
	Volunteers *service.VolunteerService
}

// HandleRequest godoc
//
//	@Summary		Request Manage Link
//	@Description	Texts a link to manage the phone's signups. Always answers 200 so phone numbers cannot be probed.
//	@Tags			Volunteer
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rallysdk.ManageLinkRequest	true	"phone"
//	@Success		200		{object}	rallysdk.MessageResponse
//	@Failure		400		{object}	rallysdk.APIError
//	@Router			/volunteer/manage/request [post].
func (h *VolunteerHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req rallysdk.ManageLinkRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Volunteers.RequestLink(r.Context(), req.Phone); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rallysdk.MessageResponse{Message: "if that number has signups, a link is on its way"})
}

// HandleList godoc
//
//	@Summary		List Volunteer Signups
//	@Description	Every signup made with the link's phone number. The phone is masked.
//	@Tags			Volunteer
//	@Produce		json
//	@Param			token	path		string	true	"manage link token"
//	@Success		200		{object}	rallysdk.VolunteerSignupsResponse
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/volunteer/manage/{token} [get].
func (h *VolunteerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, err := h.Volunteers.ListSignups(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toVolunteerSignups(view))
}

// HandleConfirm godoc
//
//	@Summary		Confirm Attendance
//	@Tags			Volunteer
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string							true	"manage link token"
//	@Param			request	body		rallysdk.ConfirmSignupRequest	true	"signup_id"
//	@Success		200		{object}	rallysdk.MessageResponse
//	@Failure		400		{object}	rallysdk.APIError
//	@Failure		404		{object}	rallysdk.APIError
//	@Router			/volunteer/manage/{token}/confirm [post].
func (h *VolunteerHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req rallysdk.ConfirmSignupRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.Volunteers.Confirm(r.Context(), r.PathValue("token"), req.SignupID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rallysdk.MessageResponse{Message: "attendance confirmed"})
}
