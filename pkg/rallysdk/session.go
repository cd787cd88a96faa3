package rallysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Me describes the session.
func (s *Session) Me(ctx context.Context) (*SessionResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/auth/session", nil)
	return call[SessionResponse](resp, err, http.StatusOK)
}

// AcceptInvite accepts an invite as the session's identity.
func (s *Session) AcceptInvite(ctx context.Context, token string) (*InviteActionResponse, error) {
	resp, err := s.do(ctx, http.MethodPost, "/invites/"+url.PathEscape(token),
		InviteActionRequest{Action: InviteActionAccept})
	return call[InviteActionResponse](resp, err, http.StatusOK)
}

// SendInvite invites email to an organization the session administers.
func (s *Session) SendInvite(ctx context.Context, req SendInviteRequest) (*SendInviteResponse, error) {
	resp, err := s.do(ctx, http.MethodPost, "/invites/send", req)
	return call[SendInviteResponse](resp, err, http.StatusCreated)
}

func (s *Session) CreateOrganization(ctx context.Context, name string) (*Organization, error) {
	resp, err := s.do(ctx, http.MethodPost, "/orgs", CreateOrganizationRequest{Name: name})
	return call[Organization](resp, err, http.StatusCreated)
}

func (s *Session) ListOrganizations(ctx context.Context) ([]Organization, error) {
	resp, err := s.do(ctx, http.MethodGet, "/orgs", nil)
	out, err := call[[]Organization](resp, err, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	resp, err := s.do(ctx, http.MethodGet, "/orgs/"+url.PathEscape(orgID)+"/members", nil)
	out, err := call[[]Member](resp, err, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) CreateEvent(ctx context.Context, orgID string, req CreateEventRequest) (*Event, error) {
	resp, err := s.do(ctx, http.MethodPost, "/orgs/"+url.PathEscape(orgID)+"/events", req)
	return call[Event](resp, err, http.StatusCreated)
}

func (s *Session) DuplicateEvent(ctx context.Context, orgID, eventID string, req DuplicateEventRequest) (*Event, error) {
	path := fmt.Sprintf("/orgs/%s/events/%s/duplicate", url.PathEscape(orgID), url.PathEscape(eventID))
	resp, err := s.do(ctx, http.MethodPost, path, req)
	return call[Event](resp, err, http.StatusCreated)
}

func (s *Session) CreateList(ctx context.Context, orgID, eventID string, req CreateListRequest) (*SignupList, error) {
	path := fmt.Sprintf("/orgs/%s/events/%s/lists", url.PathEscape(orgID), url.PathEscape(eventID))
	resp, err := s.do(ctx, http.MethodPost, path, req)
	return call[SignupList](resp, err, http.StatusCreated)
}

func (s *Session) ReorderLists(ctx context.Context, orgID, eventID string, listIDs []string) error {
	path := fmt.Sprintf("/orgs/%s/events/%s/lists/order", url.PathEscape(orgID), url.PathEscape(eventID))
	resp, err := s.do(ctx, http.MethodPut, path, ReorderListsRequest{ListIDs: listIDs})
	_, err = call[MessageResponse](resp, err, http.StatusOK)
	return err
}

func (s *Session) SetListLocked(ctx context.Context, orgID, listID string, locked bool) (*SignupList, error) {
	path := fmt.Sprintf("/orgs/%s/lists/%s/lock", url.PathEscape(orgID), url.PathEscape(listID))
	resp, err := s.do(ctx, http.MethodPut, path, LockListRequest{Locked: locked})
	return call[SignupList](resp, err, http.StatusOK)
}

// RemoveSignup removes a signup from an unlocked list of an organization the
// session administers.
func (s *Session) RemoveSignup(ctx context.Context, signupID string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/signup/remove", RemoveSignupRequest{SignupID: signupID})
	_, err = call[MessageResponse](resp, err, http.StatusOK)
	return err
}

func (s *Session) ListPasskeys(ctx context.Context) ([]Passkey, error) {
	resp, err := s.do(ctx, http.MethodGet, "/zitadel/passkeys", nil)
	out, err := call[PasskeyListResponse](resp, err, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return out.Passkeys, nil
}

func (s *Session) RemovePasskey(ctx context.Context, passkeyID string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/zitadel/passkeys/"+url.PathEscape(passkeyID), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}
