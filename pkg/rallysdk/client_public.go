package rallysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// RequestMagicLink asks the service to email a sign-in link.
func (c *SDKClient) RequestMagicLink(ctx context.Context, req MagicLinkRequest) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/magic/request", req, "")
	_, err = call[MessageResponse](resp, err, http.StatusOK)
	return err
}

// RedeemMagicLink follows a magic link and returns the session cookie the
// service set, or an error if the service redirected to its error page.
func (c *SDKClient) RedeemMagicLink(ctx context.Context, token, cookieName string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/magic/"+url.PathEscape(token), nil, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", ErrTokenNotFound
}

// GetInvite shows a pending invite.
func (c *SDKClient) GetInvite(ctx context.Context, token string) (*InviteView, error) {
	resp, err := c.do(ctx, http.MethodGet, "/invites/"+url.PathEscape(token), nil, "")
	return call[InviteView](resp, err, http.StatusOK)
}

// DeclineInvite declines an invite. No session is needed.
func (c *SDKClient) DeclineInvite(ctx context.Context, token string) (*InviteActionResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/invites/"+url.PathEscape(token),
		InviteActionRequest{Action: InviteActionDecline}, "")
	return call[InviteActionResponse](resp, err, http.StatusOK)
}

// GetEventPage fetches the public view of an event.
func (c *SDKClient) GetEventPage(ctx context.Context, orgID, slug string) (*PublicEventPage, error) {
	path := fmt.Sprintf("/signup/%s/%s", url.PathEscape(orgID), url.PathEscape(slug))
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	return call[PublicEventPage](resp, err, http.StatusOK)
}

// SignUp adds a volunteer to a list.
func (c *SDKClient) SignUp(ctx context.Context, orgID, slug, listID string, req CreateSignupRequest) (*PublicSignup, error) {
	path := fmt.Sprintf("/signup/%s/%s/lists/%s", url.PathEscape(orgID), url.PathEscape(slug), url.PathEscape(listID))
	resp, err := c.do(ctx, http.MethodPost, path, req, "")
	return call[PublicSignup](resp, err, http.StatusCreated)
}

// RequestManageLink asks for a manage link to be texted to phone.
func (c *SDKClient) RequestManageLink(ctx context.Context, phone string) error {
	resp, err := c.do(ctx, http.MethodPost, "/volunteer/manage/request", ManageLinkRequest{Phone: phone}, "")
	_, err = call[MessageResponse](resp, err, http.StatusOK)
	return err
}

// ListVolunteerSignups lists the signups a manage link covers.
func (c *SDKClient) ListVolunteerSignups(ctx context.Context, token string) (*VolunteerSignupsResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/volunteer/manage/"+url.PathEscape(token), nil, "")
	return call[VolunteerSignupsResponse](resp, err, http.StatusOK)
}

// ConfirmSignup confirms attendance for one signup.
func (c *SDKClient) ConfirmSignup(ctx context.Context, token, signupID string) error {
	resp, err := c.do(ctx, http.MethodPost, "/volunteer/manage/"+url.PathEscape(token)+"/confirm",
		ConfirmSignupRequest{SignupID: signupID}, "")
	_, err = call[MessageResponse](resp, err, http.StatusOK)
	return err
}
