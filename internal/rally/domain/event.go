package domain

import "time"

type Event struct {
	ID             string
	OrganizationID string
	Title          string
	Slug           string
	Description    string
	Location       string
	StartsAt       time.Time
	EndsAt         *time.Time
	ReminderSentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SignupList struct {
	ID          string
	EventID     string
	Title       string
	Description string
	MaxSlots    int // 0 means unlimited
	IsLocked    bool
	Position    int
	CreatedAt   time.Time
}

// HasRoom reports whether another signup fits given the current count.
func (l SignupList) HasRoom(current int) bool {
	return l.MaxSlots <= 0 || current < l.MaxSlots
}

type Signup struct {
	ID          string
	ListID      string
	Name        string
	Phone       string
	Email       string
	Note        string
	ConfirmedAt *time.Time
	CreatedAt   time.Time
}

// SignupDetail is a signup joined with the list and event it belongs to.
type SignupDetail struct {
	Signup
	ListTitle      string
	EventID        string
	EventTitle     string
	EventSlug      string
	OrganizationID string
	StartsAt       time.Time
}
