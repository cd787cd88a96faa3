package http

import (
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

type OrganizationHandler struct {
	Organizations *service.OrganizationService
	Events        *service.EventService
}

// HandleCreate godoc
//
//	@Summary	Create Organization
//	@Description	The caller becomes the owner and first admin.
//	@Tags		Organizations
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		rallysdk.CreateOrganizationRequest	true	"name"
//	@Success	201		{object}	rallysdk.Organization
//	@Failure	400		{object}	rallysdk.APIError
//	@Failure	401		{object}	rallysdk.APIError
//	@Router		/orgs [post].
func (h *OrganizationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.CreateOrganizationRequest
	if !decode(w, r, &req) {
		return
	}

	org, err := h.Organizations.Create(r.Context(), req.Name, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toOrganization(org))
}

// HandleList godoc
//
//	@Summary	List Organizations
//	@Description	Organizations the caller is an active member of.
//	@Tags		Organizations
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		rallysdk.Organization
//	@Failure	401	{object}	rallysdk.APIError
//	@Router		/orgs [get].
func (h *OrganizationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	orgs, err := h.Organizations.ListForEmail(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]rallysdk.Organization, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrganization(o))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleMembers godoc
//
//	@Summary	List Members
//	@Description	Active members and pending invites of the organization.
//	@Tags		Organizations
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string	true	"organization id"
//	@Success	200		{array}		rallysdk.Member
//	@Failure	401		{object}	rallysdk.APIError
//	@Failure	403		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/members [get].
func (h *OrganizationHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	members, err := h.Organizations.ListMembers(r.Context(), r.PathValue("orgId"), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]rallysdk.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toMember(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreateEvent godoc
//
//	@Summary	Create Event
//	@Description	The slug is derived from the title and made unique within the organization. Descriptions are sanitised.
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string						true	"organization id"
//	@Param		request	body		rallysdk.CreateEventRequest	true	"event"
//	@Success	201		{object}	rallysdk.Event
//	@Failure	400		{object}	rallysdk.APIError
//	@Failure	403		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/events [post].
func (h *OrganizationHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.CreateEventRequest
	if !decode(w, r, &req) {
		return
	}

	ev, err := h.Events.CreateEvent(r.Context(), r.PathValue("orgId"), actor, service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toEvent(ev))
}

// HandleListEvents godoc
//
//	@Summary	List Events
//	@Tags		Events
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string	true	"organization id"
//	@Success	200		{array}		rallysdk.Event
//	@Failure	403		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/events [get].
func (h *OrganizationHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	events, err := h.Events.ListEvents(r.Context(), r.PathValue("orgId"), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]rallysdk.Event, 0, len(events))
	for _, e := range events {
		out = append(out, toEvent(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDuplicateEvent godoc
//
//	@Summary	Duplicate Event
//	@Description	Copies the event and its lists (unlocked, without signups) in a single transaction.
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string							true	"organization id"
//	@Param		eventId	path		string							true	"event id"
//	@Param		request	body		rallysdk.DuplicateEventRequest	true	"title, starts_at"
//	@Success	201		{object}	rallysdk.Event
//	@Failure	400		{object}	rallysdk.APIError
//	@Failure	403		{object}	rallysdk.APIError
//	@Failure	404		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/events/{eventId}/duplicate [post].
func (h *OrganizationHandler) HandleDuplicateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.DuplicateEventRequest
	if !decode(w, r, &req) {
		return
	}

	ev, _, err := h.Events.DuplicateEvent(r.Context(), r.PathValue("orgId"), r.PathValue("eventId"), actor, req.Title, req.StartsAt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toEvent(ev))
}

// HandleCreateList godoc
//
//	@Summary	Create Signup List
//	@Description	A max_slots of 0 means unlimited.
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string						true	"organization id"
//	@Param		eventId	path		string						true	"event id"
//	@Param		request	body		rallysdk.CreateListRequest	true	"list"
//	@Success	201		{object}	rallysdk.SignupList
//	@Failure	400		{object}	rallysdk.APIError
//	@Failure	403		{object}	rallysdk.APIError
//	@Failure	404		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/events/{eventId}/lists [post].
func (h *OrganizationHandler) HandleCreateList(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.CreateListRequest
	if !decode(w, r, &req) {
		return
	}

	l, err := h.Events.CreateList(r.Context(), r.PathValue("orgId"), r.PathValue("eventId"), actor, service.ListInput{
		Title:       req.Title,
		Description: req.Description,
		MaxSlots:    req.MaxSlots,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toList(l))
}

// HandleReorderLists godoc
//
//	@Summary	Reorder Signup Lists
//	@Description	list_ids must be exactly the event's lists in their new order. Applied in a single transaction.
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string							true	"organization id"
//	@Param		eventId	path		string							true	"event id"
//	@Param		request	body		rallysdk.ReorderListsRequest	true	"list_ids"
//	@Success	200		{object}	rallysdk.MessageResponse
//	@Failure	400		{object}	rallysdk.APIError
//	@Failure	403		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/events/{eventId}/lists/order [put].
func (h *OrganizationHandler) HandleReorderLists(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.ReorderListsRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.Events.ReorderLists(r.Context(), r.PathValue("orgId"), r.PathValue("eventId"), actor, req.ListIDs); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rallysdk.MessageResponse{Message: "lists reordered"})
}

// HandleLockList godoc
//
//	@Summary	Lock or Unlock Signup List
//	@Description	Locked lists accept no new signups and no removals.
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orgId	path		string					true	"organization id"
//	@Param		listId	path		string					true	"list id"
//	@Param		request	body		rallysdk.LockListRequest	true	"locked"
//	@Success	200		{object}	rallysdk.SignupList
//	@Failure	403		{object}	rallysdk.APIError
//	@Failure	404		{object}	rallysdk.APIError
//	@Router		/orgs/{orgId}/lists/{listId}/lock [put].
func (h *OrganizationHandler) HandleLockList(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req rallysdk.LockListRequest
	if !decode(w, r, &req) {
		return
	}

	l, err := h.Events.SetListLocked(r.Context(), r.PathValue("orgId"), r.PathValue("listId"), actor, req.Locked)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toList(l))
}
