package http

import (
	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

func toOrganization(o domain.Organization) rallysdk.Organization {
	return rallysdk.Organization{
		ID:         o.ID,
		Name:       o.Name,
		OwnerEmail: o.OwnerEmail,
		CreatedAt:  o.CreatedAt,
	}
}

func toMember(m domain.Membership) rallysdk.Member {
	return rallysdk.Member{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Email:          m.UserEmail,
		Role:           string(m.Role),
		Status:         string(m.Status),
		InvitedBy:      m.InvitedBy,
		InvitedAt:      m.InvitedAt,
		JoinedAt:       m.JoinedAt,
	}
}

func toEvent(e domain.Event) rallysdk.Event {
	return rallysdk.Event{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Title:          e.Title,
		Slug:           e.Slug,
		Description:    e.Description,
		Location:       e.Location,
		StartsAt:       e.StartsAt,
		EndsAt:         e.EndsAt,
	}
}

func toList(l domain.SignupList) rallysdk.SignupList {
	return rallysdk.SignupList{
		ID:          l.ID,
		EventID:     l.EventID,
		Title:       l.Title,
		Description: l.Description,
		MaxSlots:    l.MaxSlots,
		IsLocked:    l.IsLocked,
		Position:    l.Position,
	}
}

// toPublicSignup masks the phone; masking is idempotent.
func toPublicSignup(s domain.Signup) rallysdk.PublicSignup {
	return rallysdk.PublicSignup{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       domain.MaskPhone(s.Phone),
		ConfirmedAt: s.ConfirmedAt,
	}
}

func toPublicPage(p service.PublicPage) rallysdk.PublicEventPage {
	out := rallysdk.PublicEventPage{
		Event: toEvent(p.Event),
		Lists: make([]rallysdk.PublicList, 0, len(p.Lists)),
	}
	for _, l := range p.Lists {
		pl := rallysdk.PublicList{
			SignupList: toList(l.List),
			Signups:    make([]rallysdk.PublicSignup, 0, len(l.Signups)),
		}
		for _, s := range l.Signups {
			pl.Signups = append(pl.Signups, toPublicSignup(s))
		}
		out.Lists = append(out.Lists, pl)
	}
	return out
}

func toVolunteerSignups(v service.VolunteerView) rallysdk.VolunteerSignupsResponse {
	out := rallysdk.VolunteerSignupsResponse{
		Phone:   domain.MaskPhone(v.Phone),
		Signups: make([]rallysdk.VolunteerSignup, 0, len(v.Signups)),
	}
	for _, d := range v.Signups {
		out.Signups = append(out.Signups, rallysdk.VolunteerSignup{
			SignupID:       d.ID,
			OrganizationID: d.OrganizationID,
			EventTitle:     d.EventTitle,
			EventSlug:      d.EventSlug,
			ListTitle:      d.ListTitle,
			StartsAt:       d.StartsAt,
			ConfirmedAt:    d.ConfirmedAt,
		})
	}
	return out
}
