package app

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetenv(t, "ENV", "PORT", "RALLY_DATABASE_FILE", "MAGIC_LINK_TTL", "INVITE_TTL", "MANAGE_LINK_TTL",
		"INVITE_LINK_GRANTS_ANY_IDENTITY", "SESSION_COOKIE", "SMS_PROVIDER", "OIDC_ISSUER", "OIDC_CLIENT_ID",
		"PUBLIC_BASE_URL")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "rally.db", cfg.DatabaseFile)
	require.Equal(t, 15*time.Minute, cfg.MagicLinkTTL)
	require.Equal(t, 7*24*time.Hour, cfg.InviteTTL)
	require.Equal(t, 24*time.Hour, cfg.ManageLinkTTL)
	require.True(t, cfg.LinkGrantsAnyIdentity)
	require.Equal(t, "rally_session", cfg.SessionCookie)
	require.Equal(t, "log", cfg.SMSProvider)
	require.False(t, cfg.LoginEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("INVITE_TTL", "48h")
	t.Setenv("INVITE_LINK_GRANTS_ANY_IDENTITY", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("OIDC_ISSUER", "https://id.example/")
	t.Setenv("OIDC_CLIENT_ID", "rally-web")
	t.Setenv("ZITADEL_SERVICE_CLIENT_ID", "svc")
	t.Setenv("ZITADEL_SERVICE_CLIENT_SECRET", "shh")
	t.Setenv("RATELIMIT_STRICT_PER_MIN", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 48*time.Hour, cfg.InviteTTL)
	require.False(t, cfg.LinkGrantsAnyIdentity)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.True(t, cfg.LoginEnabled())
	require.True(t, cfg.PasskeysEnabled())
	require.Equal(t, "https://id.example", cfg.apiURL())
	require.Equal(t, 2, cfg.RateLimitStrict)
}

func TestConfigValidate(t *testing.T) {
	base := Config{PublicBaseURL: "https://rally.example", SMSProvider: "log"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad base url", func(c *Config) { c.PublicBaseURL = "rally.example" }},
		{"unknown sms provider", func(c *Config) { c.SMSProvider = "pigeon" }},
		{"sns without region", func(c *Config) { c.SMSProvider = "sns" }},
		{"issuer without client", func(c *Config) { c.OIDCIssuer = "https://id.example" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
