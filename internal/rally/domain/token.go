package domain

import "time"

// TokenPurpose scopes a token to the flow that issued it, so a magic-link
// token can never be replayed as a volunteer manage link or vice versa.
type TokenPurpose string

const (
	TokenPurposeMagicLink       TokenPurpose = "magic_link"
	TokenPurposeVolunteerManage TokenPurpose = "volunteer_manage"
)

// Token is a stored single-use (or, for manage links, time-boxed) secret.
// Only the fingerprint of the raw token is ever persisted.
type Token struct {
	Hash      string
	Purpose   TokenPurpose
	Subject   string // email for magic links, normalised phone for manage links
	InviteID  string // optional pending invite this magic link accepts
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
}

// ValidAt reports whether the token can still be redeemed at now.
func (t Token) ValidAt(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
