package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a role an invite may grant.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type MembershipStatus string

const (
	MembershipPending MembershipStatus = "pending"
	MembershipActive  MembershipStatus = "active"
)

// Membership doubles as the invite record: a pending membership carries the
// invite token fingerprint and its expiry, an active one never does.
type Membership struct {
	ID              string
	OrganizationID  string
	UserEmail       string
	Role            Role
	Status          MembershipStatus
	InviteTokenHash string
	TokenExpiresAt  *time.Time
	InvitedBy       string
	InvitedAt       time.Time
	JoinedAt        *time.Time
}

// IsActive reports whether the membership has been accepted.
func (m Membership) IsActive() bool {
	return m.Status == MembershipActive
}

type Organization struct {
	ID         string
	Name       string
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
