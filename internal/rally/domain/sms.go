package domain

import "time"

type SMSKind string

const (
	SMSKindManageLink SMSKind = "manage_link"
	SMSKindReminder   SMSKind = "reminder"
)

type SMSStatus string

const (
	SMSStatusSent   SMSStatus = "sent"
	SMSStatusFailed SMSStatus = "failed"
)

// SMSMessage is one row of the outbound SMS log.
type SMSMessage struct {
	ID         string
	SignupID   string
	Phone      string
	Body       string
	Kind       SMSKind
	ProviderID string
	Status     SMSStatus
	Error      string
	CreatedAt  time.Time
}
