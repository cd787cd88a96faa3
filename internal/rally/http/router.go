package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/jwtx"
	"github.com/aussiebroadwan/rally/pkg/slogx"

	_ "github.com/aussiebroadwan/rally/api/rally" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles applied per route class.
type Limits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultLimits returns the built-in profiles.
func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Config carries the HTTP-facing settings.
type Config struct {
	BuildVersion  string
	BaseURL       string
	SessionCookie string
	AppRedirect   string
	ErrorRedirect string
	CronSecret    string
	CORSOrigins   []string
	Limits        Limits
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       Config
	keys      *jwtx.KeySet
	verifier  jwtx.Verifier
	startTime time.Time
	logger    *slog.Logger

	store               store.Store
	SessionService      *service.SessionService
	MagicLinkService    *service.MagicLinkService
	LoginService        *service.LoginService // Optional: nil without an identity provider
	InviteService       *service.InviteService
	OrganizationService *service.OrganizationService
	EventService        *service.EventService
	SignupService       *service.SignupService
	VolunteerService    *service.VolunteerService
	PasskeyService      *service.PasskeyService
	ReminderService     *service.ReminderService
}

func NewRouter(
	cfg Config,
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	st store.Store,
	logger *slog.Logger,
) *Router {
	if cfg.Limits == (Limits{}) {
		cfg.Limits = DefaultLimits()
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		keys:      keys,
		verifier:  verifier,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cfg.CORSOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerOrganizations()
	r.registerSignup()
	r.registerVolunteer()
	r.registerPasskeys()
	r.registerCron()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Rally Volunteer API
//	@version		0.1.0
//	@description	Organizations, events and signup lists for volunteer rosters.
//	@description
//	@description				Admins sign in with a magic link or through the identity provider. Volunteers need no account.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/rally
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT, normally sent as the session cookie. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) session() httpx.Middleware {
	return httpx.SessionMiddleware(r.verifier, r.cfg.SessionCookie)
}

func (r *Router) registerAuth() {
	lim := r.cfg.Limits
	h := &AuthHandler{
		MagicLinks:    r.MagicLinkService,
		Sessions:      r.SessionService,
		Login:         r.LoginService,
		Cookies:       cookieJar{SessionName: r.cfg.SessionCookie, Secure: strings.HasPrefix(r.cfg.BaseURL, "https://")},
		AppRedirect:   r.cfg.AppRedirect,
		ErrorRedirect: r.cfg.ErrorRedirect,
	}

	// Sends email, so strict
	r.Mux.Handle("POST /auth/magic/request",
		httpx.Chain(http.HandlerFunc(h.HandleMagicRequest),
			httpx.RateLimitByIP(lim.Strict),
		),
	)
	r.Mux.Handle("GET /auth/magic/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleMagicRedeem),
			httpx.RateLimitByIP(lim.Moderate),
		),
	)

	r.Mux.Handle("GET /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(lim.Moderate),
		),
	)
	r.Mux.Handle("GET /auth/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIP(lim.Moderate),
		),
	)

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(lim.Lenient),
		),
	)
	r.Mux.Handle("GET /auth/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			r.session(),
			httpx.RateLimitByUser(lim.Lenient),
		),
	)
}

func (r *Router) registerInvites() {
	lim := r.cfg.Limits
	h := &InviteHandler{
		Invites:       r.InviteService,
		Organizations: r.OrganizationService,
		BaseURL:       r.cfg.BaseURL,
	}

	r.Mux.Handle("POST /invites/send",
		httpx.Chain(http.HandlerFunc(h.HandleSend),
			r.session(),
			httpx.RateLimitByUser(lim.Moderate),
		),
	)

	// Token-bearing routes are throttled per IP and token
	r.Mux.Handle("GET /invites/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleView),
			httpx.RateLimitByIPAndPath(lim.Moderate, "token"),
		),
	)
	// Decline works without a session, so the session is optional here and
	// the handler insists on it for accept.
	r.Mux.Handle("POST /invites/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleAction),
			httpx.OptionalSession(r.verifier, r.cfg.SessionCookie),
			httpx.RateLimitByIPAndPath(lim.Moderate, "token"),
		),
	)
}

func (r *Router) registerOrganizations() {
	lim := r.cfg.Limits
	h := &OrganizationHandler{
		Organizations: r.OrganizationService,
		Events:        r.EventService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.session(),
			httpx.RateLimitByUser(lim.Lenient),
		)
	}

	r.Mux.Handle("POST /orgs", secured(h.HandleCreate))
	r.Mux.Handle("GET /orgs", secured(h.HandleList))
	r.Mux.Handle("GET /orgs/{orgId}/members", secured(h.HandleMembers))

	r.Mux.Handle("POST /orgs/{orgId}/events", secured(h.HandleCreateEvent))
	r.Mux.Handle("GET /orgs/{orgId}/events", secured(h.HandleListEvents))
	r.Mux.Handle("POST /orgs/{orgId}/events/{eventId}/duplicate", secured(h.HandleDuplicateEvent))
	r.Mux.Handle("POST /orgs/{orgId}/events/{eventId}/lists", secured(h.HandleCreateList))
	r.Mux.Handle("PUT /orgs/{orgId}/events/{eventId}/lists/order", secured(h.HandleReorderLists))
	r.Mux.Handle("PUT /orgs/{orgId}/lists/{listId}/lock", secured(h.HandleLockList))
}

func (r *Router) registerSignup() {
	lim := r.cfg.Limits
	h := &SignupHandler{
		Events:  r.EventService,
		Signups: r.SignupService,
	}

	r.Mux.Handle("GET /signup/{orgId}/{slug}",
		httpx.Chain(http.HandlerFunc(h.HandlePage),
			httpx.RateLimitByIP(lim.Public),
		),
	)
	r.Mux.Handle("POST /signup/{orgId}/{slug}/lists/{listId}",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(lim.Moderate),
		),
	)
	r.Mux.Handle("DELETE /signup/remove",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			r.session(),
			httpx.RateLimitByUser(lim.Moderate),
		),
	)
}

func (r *Router) registerVolunteer() {
	lim := r.cfg.Limits
	h := &VolunteerHandler{Volunteers: r.VolunteerService}

	// Sends SMS, so strict
	r.Mux.Handle("POST /volunteer/manage/request",
		httpx.Chain(http.HandlerFunc(h.HandleRequest),
			httpx.RateLimitByIP(lim.Strict),
		),
	)
	r.Mux.Handle("GET /volunteer/manage/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIPAndPath(lim.Moderate, "token"),
		),
	)
	r.Mux.Handle("POST /volunteer/manage/{token}/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIPAndPath(lim.Moderate, "token"),
		),
	)
}

func (r *Router) registerPasskeys() {
	lim := r.cfg.Limits
	h := &PasskeyHandler{Passkeys: r.PasskeyService}

	r.Mux.Handle("GET /zitadel/passkeys",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.session(),
			httpx.RateLimitByUser(lim.Moderate),
		),
	)
	r.Mux.Handle("DELETE /zitadel/passkeys/{tokenId}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			r.session(),
			httpx.RateLimitByUser(lim.Moderate),
		),
	)
}

func (r *Router) registerCron() {
	h := &CronHandler{Reminders: r.ReminderService}

	r.Mux.Handle("POST /cron/reminders",
		httpx.Chain(h,
			httpx.RequireSharedSecret(r.cfg.CronSecret),
			httpx.RateLimitByIP(r.cfg.Limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.BuildVersion),
			httpx.RateLimitByIP(r.cfg.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.cfg.Limits.Lenient),
		),
	)
}
