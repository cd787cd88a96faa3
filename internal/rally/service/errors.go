package service

import (
	"errors"
	"time"
)

var (
	ErrTokenNotFound = errors.New("token not found or expired")

	ErrInviteNotFound = errors.New("invite not found or expired")
	ErrInvalidInvite  = errors.New("invalid invite request")
	ErrInvalidRole    = errors.New("invalid role")
	ErrAlreadyMember  = errors.New("already a member of this organization")
	ErrEmailMismatch  = errors.New("invite was issued to a different email")

	ErrForbidden     = errors.New("forbidden")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrNoIdPSubject  = errors.New("session is not linked to the identity provider")
	ErrInvalidState  = errors.New("login state mismatch")
	ErrLoginRejected = errors.New("identity provider rejected the login")

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrInvalidOrganization  = errors.New("invalid organization")
	ErrEventNotFound        = errors.New("event not found")
	ErrInvalidEvent         = errors.New("invalid event")
	ErrListNotFound         = errors.New("list not found")
	ErrInvalidList          = errors.New("invalid list")
	ErrInvalidOrder         = errors.New("list order must name every list of the event exactly once")
	ErrSignupNotFound       = errors.New("signup not found")
	ErrInvalidSignup        = errors.New("invalid signup")
	ErrListLocked           = errors.New("list is locked")
	ErrListFull             = errors.New("list is full")
)

// clock returns now in UTC from fn, or the wall clock when fn is nil.
func clock(fn func() time.Time) time.Time {
	if fn != nil {
		return fn().UTC()
	}
	return time.Now().UTC()
}
