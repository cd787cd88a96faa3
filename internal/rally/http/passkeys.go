package http

import (
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

// PasskeyHandler manages the caller's passkeys at the identity provider.
// Magic-link sessions carry no provider subject and get 401.
type PasskeyHandler struct {
	Passkeys *service.PasskeyService
}

// HandleList godoc
//
//	@Summary	List Passkeys
//	@Tags		Passkeys
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	rallysdk.PasskeyListResponse
//	@Failure	401	{object}	rallysdk.APIError
//	@Failure	500	{object}	rallysdk.APIError
//	@Router		/zitadel/passkeys [get].
func (h *PasskeyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		rallysdk.ErrUnauthorized.WriteError(w)
		return
	}

	keys, err := h.Passkeys.List(r.Context(), claims.IdPSubject)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := rallysdk.PasskeyListResponse{Passkeys: make([]rallysdk.Passkey, 0, len(keys))}
	for _, k := range keys {
		out.Passkeys = append(out.Passkeys, rallysdk.Passkey{ID: k.ID, Name: k.Name, State: k.State})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRemove godoc
//
//	@Summary		Remove Passkey
//	@Description	Upstream 404 is passed through; any other upstream failure is a 500.
//	@Tags			Passkeys
//	@Security		BearerAuth
//	@Param			tokenId	path	string	true	"passkey id"
//	@Success		204
//	@Failure		401	{object}	rallysdk.APIError
//	@Failure		404	{object}	rallysdk.APIError
//	@Failure		500	{object}	rallysdk.APIError
//	@Router			/zitadel/passkeys/{tokenId} [delete].
func (h *PasskeyHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		rallysdk.ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.Passkeys.Remove(r.Context(), claims.IdPSubject, r.PathValue("tokenId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
