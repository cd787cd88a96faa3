package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/internal/rally/zitadel"
)

func newIdP(t *testing.T, userinfo string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		require.NotEmpty(t, r.PostForm.Get("code_verifier"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"user-at","token_type":"Bearer","expires_in":300}`))
	})
	mux.HandleFunc("GET /oidc/v1/userinfo", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer user-at", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userinfo))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginFlow(t *testing.T) {
	ctx := context.Background()
	idp := newIdP(t, `{"sub":"user-1","email":"Sam@Club.org","email_verified":true}`)

	ls := NewLoginService(idp.URL+"/", "rally", "secret", "https://rally.test/auth/callback")
	ls.HTTPClient = idp.Client()

	start, err := ls.Start()
	require.NoError(t, err)

	u, err := url.Parse(start.URL)
	require.NoError(t, err)
	require.Equal(t, "/oauth/v2/authorize", u.Path)
	require.Equal(t, start.State, u.Query().Get("state"))
	require.Equal(t, "S256", u.Query().Get("code_challenge_method"))
	require.NotEmpty(t, u.Query().Get("code_challenge"))

	id, err := ls.Finish(ctx, "good-code", start.State, start.State, start.Verifier)
	require.NoError(t, err)
	require.Equal(t, Identity{Subject: "user-1", Email: "sam@club.org"}, id)

	t.Run("state mismatch", func(t *testing.T) {
		_, err := ls.Finish(ctx, "good-code", "other", start.State, start.Verifier)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("rejected code", func(t *testing.T) {
		_, err := ls.Finish(ctx, "bad-code", start.State, start.State, start.Verifier)
		require.ErrorIs(t, err, ErrLoginRejected)
	})
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	idp := newIdP(t, `{"sub":"user-1","email":"sam@club.org","email_verified":false}`)
	ls := NewLoginService(idp.URL, "rally", "secret", "https://rally.test/auth/callback")
	ls.HTTPClient = idp.Client()

	_, err := ls.Finish(context.Background(), "good-code", "s", "s", "v")
	require.ErrorIs(t, err, ErrLoginRejected)
}

type fakePasskeys struct {
	removed []string
	err     error
}

func (f *fakePasskeys) ListPasskeys(_ context.Context, userID string) ([]zitadel.Passkey, error) {
	return []zitadel.Passkey{{ID: userID + "-pk"}}, f.err
}

func (f *fakePasskeys) RemovePasskey(_ context.Context, userID, passkeyID string) error {
	f.removed = append(f.removed, userID+"/"+passkeyID)
	return f.err
}

func TestPasskeyServiceNeedsIdPSubject(t *testing.T) {
	ctx := context.Background()
	idp := &fakePasskeys{}
	ps := &PasskeyService{IdP: idp}

	_, err := ps.List(ctx, "")
	require.ErrorIs(t, err, ErrNoIdPSubject)
	require.ErrorIs(t, ps.Remove(ctx, "", "pk"), ErrNoIdPSubject)

	keys, err := ps.List(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1-pk", keys[0].ID)

	require.NoError(t, ps.Remove(ctx, "u1", "pk"))
	require.Equal(t, []string{"u1/pk"}, idp.removed)

	idp.err = errors.New("upstream")
	require.Error(t, ps.Remove(ctx, "u1", "pk"))
}
