package rallysdk

import "time"

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Sessions
// ============================================================================

// MagicLinkRequest asks for a sign-in link to be emailed. InviteToken links
// the sign-in to a pending invite so redeeming the link also accepts it.
type MagicLinkRequest struct {
	Email       string `json:"email"                  validate:"required,email"`
	InviteToken string `json:"invite_token,omitempty"`
}

// SessionResponse describes the caller's current session.
type SessionResponse struct {
	Email      string    `json:"email"`
	IdPSubject string    `json:"idp_subject,omitempty"`
	AMR        []string  `json:"amr,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ============================================================================
// Organizations and invites
// ============================================================================

type Organization struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Member is an active or pending membership of an organization.
type Member struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	InvitedBy      string     `json:"invited_by,omitempty"`
	InvitedAt      time.Time  `json:"invited_at"`
	JoinedAt       *time.Time `json:"joined_at,omitempty"`
}

type SendInviteRequest struct {
	OrganizationID string `json:"organization_id" validate:"required"`
	Email          string `json:"email"           validate:"required,email"`
	Role           string `json:"role"            validate:"required,oneof=admin member"`
}

type SendInviteResponse struct {
	InviteURL string    `json:"invite_url"`
	ExpiresAt time.Time `json:"expires_at"`
	Invite    Member    `json:"invite"`
}

// InviteView is what an invite link shows before it is accepted.
type InviteView struct {
	OrganizationID   string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	InvitedBy        string    `json:"invited_by"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// Invite actions accepted by POST /invites/{token}.
const (
	InviteActionAccept  = "accept"
	InviteActionDecline = "decline"
)

type InviteActionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
}

type InviteActionResponse struct {
	Status         string  `json:"status"`
	OrganizationID string  `json:"organization_id"`
	Member         *Member `json:"member,omitempty"`
}

// ============================================================================
// Events and lists
// ============================================================================

type Event struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Description    string     `json:"description,omitempty"`
	Location       string     `json:"location,omitempty"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
}

type CreateEventRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=20000"`
	Location    string     `json:"location"    validate:"max=500"`
	StartsAt    time.Time  `json:"starts_at"   validate:"required"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

type DuplicateEventRequest struct {
	Title    string    `json:"title"     validate:"max=200"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
}

type SignupList struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	MaxSlots    int    `json:"max_slots"`
	IsLocked    bool   `json:"is_locked"`
	Position    int    `json:"position"`
}

type CreateListRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	MaxSlots    int    `json:"max_slots"   validate:"min=0"`
}

type ReorderListsRequest struct {
	ListIDs []string `json:"list_ids" validate:"required,min=1,dive,required"`
}

type LockListRequest struct {
	Locked bool `json:"locked"`
}

// ============================================================================
// Public signup pages
// ============================================================================

// PublicEventPage is the unauthenticated view of an event.
type PublicEventPage struct {
	Event Event        `json:"event"`
	Lists []PublicList `json:"lists"`
}

type PublicList struct {
	SignupList
	Signups []PublicSignup `json:"signups"`
}

// PublicSignup never carries a full phone number.
type PublicSignup struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

type CreateSignupRequest struct {
	Name  string `json:"name"  validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,min=6,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
	Note  string `json:"note"  validate:"max=1000"`
}

type RemoveSignupRequest struct {
	SignupID string `json:"signup_id" validate:"required"`
}

// ============================================================================
// Volunteer self-service
// ============================================================================

type ManageLinkRequest struct {
	Phone string `json:"phone" validate:"required,min=6,max=20"`
}

type VolunteerSignup struct {
	SignupID       string     `json:"signup_id"`
	OrganizationID string     `json:"organization_id"`
	EventTitle     string     `json:"event_title"`
	EventSlug      string     `json:"event_slug"`
	ListTitle      string     `json:"list_title"`
	StartsAt       time.Time  `json:"starts_at"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
}

type VolunteerSignupsResponse struct {
	Phone   string            `json:"phone"`
	Signups []VolunteerSignup `json:"signups"`
}

type ConfirmSignupRequest struct {
	SignupID string `json:"signup_id" validate:"required"`
}

// ============================================================================
// Identity provider
// ============================================================================

type Passkey struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

type PasskeyListResponse struct {
	Passkeys []Passkey `json:"passkeys"`
}

// ============================================================================
// Cron
// ============================================================================

type ReminderRunResponse struct {
	Events int `json:"events"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
