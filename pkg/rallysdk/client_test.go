package rallysdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rally/pkg/rallysdk"
	"github.com/stretchr/testify/require"
)

func TestClientDecodesErrorEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/invites/abc", r.URL.Path)
		rallysdk.ErrTokenNotFound.WriteError(w)
	}))
	defer srv.Close()

	_, err := rallysdk.NewSDKClient(srv.URL).GetInvite(context.Background(), "abc")

	var apiErr *rallysdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, rallysdk.ErrorCodeNotFound, apiErr.Code)
}

func TestClientFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := rallysdk.NewSDKClient(srv.URL).GetLiveness(context.Background())

	var apiErr *rallysdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, rallysdk.ErrorCodeServerError, apiErr.Code)
}

func TestSessionSendsBearerAndBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/invites/send", r.URL.Path)
		require.Equal(t, "Bearer session-jwt", r.Header.Get("Authorization"))

		var req rallysdk.SendInviteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "x@y.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rallysdk.SendInviteResponse{
			InviteURL: "http://rally.test/invites/tok",
			Invite:    rallysdk.Member{Email: req.Email, Role: req.Role, Status: "pending"},
		})
	}))
	defer srv.Close()

	session := rallysdk.NewSDKClient(srv.URL).NewSession("session-jwt")
	out, err := session.SendInvite(context.Background(), rallysdk.SendInviteRequest{
		OrganizationID: "org1",
		Email:          "x@y.com",
		Role:           "member",
	})
	require.NoError(t, err)
	require.Equal(t, "http://rally.test/invites/tok", out.InviteURL)
	require.Equal(t, "pending", out.Invite.Status)
}

func TestRedeemMagicLinkDoesNotFollowRedirect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/magic/good" {
			http.SetCookie(w, &http.Cookie{Name: "rally_session", Value: "jwt"})
		}
		http.Redirect(w, r, "/somewhere", http.StatusFound)
	}))
	defer srv.Close()

	client := rallysdk.NewSDKClient(srv.URL)

	token, err := client.RedeemMagicLink(context.Background(), "good", "rally_session")
	require.NoError(t, err)
	require.Equal(t, "jwt", token)

	_, err = client.RedeemMagicLink(context.Background(), "bad", "rally_session")
	require.ErrorIs(t, err, rallysdk.ErrTokenNotFound)
}

func TestRemovePasskeyExpectsNoContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := rallysdk.NewSDKClient(srv.URL).NewSession("t").RemovePasskey(context.Background(), "pk1")
	require.NoError(t, err)
}
