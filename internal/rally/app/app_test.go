package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		DatabaseFile:         filepath.Join(t.TempDir(), "rally.db"),
		PublicBaseURL:        "http://localhost:8080",
		AppRedirectPath:      "/",
		ErrorRedirectPath:    "/login",
		SessionIssuer:        "rally",
		SessionCookie:        "rally_session",
		SMSProvider:          "log",
		ReminderWorkers:      2,
	}
}

func TestApplicationServesHealth(t *testing.T) {
	app, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rallysdk.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, BuildVersion, resp.Version)
}

func TestMigrateAndPurge(t *testing.T) {
	cfg := testConfig(t)
	logger := NewLogger(cfg)

	require.NoError(t, Migrate(cfg, logger))

	n, err := Purge(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.Zero(t, n)
}
