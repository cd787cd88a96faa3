package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

// tokenServer issues "tok-N" access tokens valid for expiresIn seconds and
// counts exchanges. When hold is set every request waits on it before
// answering.
type tokenServer struct {
	*httptest.Server
	exchanges atomic.Int32
	status    atomic.Int32
	expiresIn atomic.Int64
	hold      atomic.Pointer[sync.WaitGroup]
}

func newTokenServer(t *testing.T, expiresIn int) *tokenServer {
	t.Helper()

	ts := &tokenServer{}
	ts.expiresIn.Store(int64(expiresIn))
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/v2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		if code := ts.status.Load(); code != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(int(code))
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"bad secret"}`))
			return
		}

		if hold := ts.hold.Load(); hold != nil {
			hold.Done()
			hold.Wait()
		}

		n := ts.exchanges.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"Bearer","expires_in":%d}`, n, ts.expiresIn.Load())
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newCache(ts *tokenServer, clk *testClock) *ServiceTokenCache {
	c := NewServiceTokenCache(ts.URL+"/oauth/v2/token", "svc", "secret", []string{"openid"})
	c.HTTPClient = ts.Client()
	c.Now = clk.Now
	return c
}

func TestServiceTokenCacheServesUntilBuffer(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)
	clk := &testClock{now: t0}
	c := newCache(ts, clk)

	tok, err := c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	clk.Advance(3600*time.Second - ServiceTokenBuffer - time.Second)
	tok, err = c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.Equal(t, int32(1), ts.exchanges.Load())

	// Exactly at the buffer the token is no longer served.
	clk.Advance(time.Second)
	tok, err = c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
	require.Equal(t, int32(2), ts.exchanges.Load())
}

func TestServiceTokenCacheRejectsShortLivedTokens(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 30)
	clk := &testClock{now: t0}
	c := newCache(ts, clk)

	for range 3 {
		tok, err := c.Token(ctx)
		require.Empty(t, tok)

		var upErr *domain.UpstreamError
		require.True(t, errors.As(err, &upErr))
		require.Contains(t, upErr.Error(), "below refresh buffer")
	}
	require.Equal(t, int32(3), ts.exchanges.Load())

	// A lifetime of exactly the buffer is still too short.
	ts.expiresIn.Store(int64(ServiceTokenBuffer / time.Second))
	_, err := c.Token(ctx)
	require.Error(t, err)
}

func TestServiceTokenCacheShortLivedRefreshKeepsSlot(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)
	clk := &testClock{now: t0}
	c := newCache(ts, clk)

	tok, err := c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	ts.expiresIn.Store(30)
	_, err = c.Refresh(ctx)
	require.Error(t, err)

	clk.Advance(time.Hour - ServiceTokenBuffer - time.Minute)
	tok, err = c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
}

func TestServiceTokenCacheSlotMeasuredFromInjectedClock(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)

	// The injected clock is far from the wall clock.
	clk := &testClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newCache(ts, clk)

	_, err := c.Token(ctx)
	require.NoError(t, err)

	c.mu.Lock()
	lifetime := c.expiresAt.Sub(clk.Now())
	c.mu.Unlock()
	require.InDelta(t, float64(time.Hour), float64(lifetime), float64(5*time.Second))
}

func TestServiceTokenCacheInvalidateForcesExchange(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)
	c := newCache(ts, &testClock{now: t0})

	_, err := c.Token(ctx)
	require.NoError(t, err)

	c.Invalidate()
	tok, err := c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
}

func TestServiceTokenCacheRefreshForcesExchange(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)
	c := newCache(ts, &testClock{now: t0})

	_, err := c.Token(ctx)
	require.NoError(t, err)

	tok, err := c.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)

	tok, err = c.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
}

func TestServiceTokenCacheConcurrentMissesAreNotCoalesced(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)

	// No exchange answers until all five are in flight, so every caller
	// must have missed the empty slot.
	const callers = 5
	hold := &sync.WaitGroup{}
	hold.Add(callers)
	ts.hold.Store(hold)
	c := newCache(ts, &testClock{now: t0})

	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Token(ctx)
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, int32(callers), ts.exchanges.Load())
}

func TestServiceTokenCacheExchangeFailure(t *testing.T) {
	ctx := context.Background()
	ts := newTokenServer(t, 3600)
	clk := &testClock{now: t0}
	c := newCache(ts, clk)

	_, err := c.Token(ctx)
	require.NoError(t, err)

	ts.status.Store(http.StatusUnauthorized)
	clk.Advance(time.Hour)

	tok, err := c.Token(ctx)
	require.Empty(t, tok)

	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	require.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	require.Equal(t, http.StatusInternalServerError, upErr.HTTPStatus())
}

func TestServiceTokenCacheNetworkFailure(t *testing.T) {
	ts := newTokenServer(t, 3600)
	c := newCache(ts, &testClock{now: t0})
	ts.Close()

	_, err := c.Token(context.Background())

	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	require.Zero(t, upErr.StatusCode)
}
