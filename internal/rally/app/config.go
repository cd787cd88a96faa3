package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env                  string        `env:"ENV" env-default:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat            string        `env:"LOG_FORMAT" env-default:"json"`
	LogFile              string        `env:"LOG_FILE"` // Optional: also log to a rotated file
	Port                 int           `env:"PORT" env-default:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" env-default:"1h"`
	DatabaseFile         string        `env:"RALLY_DATABASE_FILE" env-default:"rally.db"`

	PublicBaseURL     string   `env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
	AppRedirectPath   string   `env:"APP_REDIRECT_PATH" env-default:"/"`
	ErrorRedirectPath string   `env:"ERROR_REDIRECT_PATH" env-default:"/login?error=link_invalid"`
	CORSOrigins       []string `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	SessionSecret string        `env:"SESSION_SECRET"` // Optional: ephemeral signing key when empty
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"168h"`
	SessionIssuer string        `env:"SESSION_ISSUER" env-default:"rally"`
	SessionCookie string        `env:"SESSION_COOKIE" env-default:"rally_session"`

	MagicLinkTTL          time.Duration `env:"MAGIC_LINK_TTL" env-default:"15m"`
	InviteTTL             time.Duration `env:"INVITE_TTL" env-default:"168h"`
	ManageLinkTTL         time.Duration `env:"MANAGE_LINK_TTL" env-default:"24h"`
	TokenRetention        time.Duration `env:"TOKEN_RETENTION" env-default:"168h"`
	LinkGrantsAnyIdentity bool          `env:"INVITE_LINK_GRANTS_ANY_IDENTITY" env-default:"true"`

	// Identity provider. Login and passkeys are disabled without an issuer.
	OIDCIssuer          string   `env:"OIDC_ISSUER"`
	OIDCClientID        string   `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret    string   `env:"OIDC_CLIENT_SECRET"`
	ZitadelAPIURL       string   `env:"ZITADEL_API_URL"` // defaults to the issuer
	ServiceClientID     string   `env:"ZITADEL_SERVICE_CLIENT_ID"`
	ServiceClientSecret string   `env:"ZITADEL_SERVICE_CLIENT_SECRET"`
	ServiceScopes       []string `env:"ZITADEL_SERVICE_SCOPES" env-separator:" " env-default:"openid urn:zitadel:iam:org:project:id:zitadel:aud"`

	CronSecret      string        `env:"CRON_SECRET"`
	ReminderWindow  time.Duration `env:"REMINDER_WINDOW" env-default:"24h"`
	ReminderWorkers int           `env:"REMINDER_WORKERS" env-default:"4"`

	SMSProvider string `env:"SMS_PROVIDER" env-default:"log"` // log | sns
	SMSSenderID string `env:"SMS_SENDER_ID"`
	AWSRegion   string `env:"AWS_REGION"`

	SMTPHost     string `env:"SMTP_HOST"` // Optional: mail is logged when empty
	SMTPPort     int    `env:"SMTP_PORT" env-default:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`

	// Requests per minute per key; 0 keeps the built-in profile.
	RateLimitStrict   int `env:"RATELIMIT_STRICT_PER_MIN"`
	RateLimitModerate int `env:"RATELIMIT_MODERATE_PER_MIN"`
	RateLimitLenient  int `env:"RATELIMIT_LENIENT_PER_MIN"`
	RateLimitPublic   int `env:"RATELIMIT_PUBLIC_PER_MIN"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that would fail later at runtime.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.PublicBaseURL, "http://") && !strings.HasPrefix(c.PublicBaseURL, "https://") {
		return fmt.Errorf("PUBLIC_BASE_URL must be an http(s) URL, got %q", c.PublicBaseURL)
	}
	switch c.SMSProvider {
	case "log":
	case "sns":
		if c.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is required when SMS_PROVIDER=sns")
		}
	default:
		return fmt.Errorf("unknown SMS_PROVIDER %q", c.SMSProvider)
	}
	if c.OIDCIssuer != "" && c.OIDCClientID == "" {
		return fmt.Errorf("OIDC_CLIENT_ID is required when OIDC_ISSUER is set")
	}
	return nil
}

// LoginEnabled reports whether identity provider login is configured.
func (c Config) LoginEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// PasskeysEnabled reports whether the service account for the identity
// provider's management API is configured.
func (c Config) PasskeysEnabled() bool {
	return c.apiURL() != "" && c.ServiceClientID != "" && c.ServiceClientSecret != ""
}

func (c Config) apiURL() string {
	if c.ZitadelAPIURL != "" {
		return strings.TrimSuffix(c.ZitadelAPIURL, "/")
	}
	return strings.TrimSuffix(c.OIDCIssuer, "/")
}
