package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/idx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// descriptionPolicy is safe for concurrent use once built.
var descriptionPolicy = bluemonday.UGCPolicy()

// EventService manages events and their signup lists on behalf of
// organization admins, and renders the public signup page.
type EventService struct {
	Store       store.Store
	Permissions *PermissionService
	Now         func() time.Time
}

type EventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      *time.Time
}

type ListInput struct {
	Title       string
	Description string
	MaxSlots    int
}

// PublicPage is an event as volunteers see it: lists in order, each with its
// signups. Phones are masked and emails dropped.
type PublicPage struct {
	Event domain.Event
	Lists []PublicList
}

type PublicList struct {
	List    domain.SignupList
	Signups []domain.Signup
}

func (s *EventService) CreateEvent(ctx context.Context, orgID, actor string, in EventInput) (domain.Event, error) {
	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, actor); err != nil {
		return domain.Event{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.StartsAt.IsZero() {
		return domain.Event{}, ErrInvalidEvent
	}
	if in.EndsAt != nil && !in.EndsAt.After(in.StartsAt) {
		return domain.Event{}, ErrInvalidEvent
	}

	now := clock(s.Now)
	ev := domain.Event{
		ID:             idx.New().String(),
		OrganizationID: orgID,
		Title:          in.Title,
		Description:    descriptionPolicy.Sanitize(in.Description),
		Location:       strings.TrimSpace(in.Location),
		StartsAt:       in.StartsAt.UTC(),
		EndsAt:         utcPtr(in.EndsAt),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if ev.Slug, err = uniqueSlug(ctx, tx.Events(), orgID, ev.Title); err != nil {
			return err
		}
		return tx.Events().CreateEvent(ctx, ev)
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}

	slogx.FromContext(ctx).Info("event created",
		slog.String("event_id", ev.ID),
		slog.String("organization_id", orgID),
		slog.String("slug", ev.Slug),
	)
	return ev, nil
}

func (s *EventService) ListEvents(ctx context.Context, orgID, actor string) ([]domain.Event, error) {
	if _, err := s.Permissions.RequireOrgMember(ctx, orgID, actor); err != nil {
		return nil, err
	}

	events, err := s.Store.Events().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// CreateList appends a signup list to the end of the event.
func (s *EventService) CreateList(ctx context.Context, orgID, eventID, actor string, in ListInput) (domain.SignupList, error) {
	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, actor); err != nil {
		return domain.SignupList{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.MaxSlots < 0 {
		return domain.SignupList{}, ErrInvalidList
	}

	list := domain.SignupList{
		ID:          idx.New().String(),
		EventID:     eventID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		MaxSlots:    in.MaxSlots,
		CreatedAt:   clock(s.Now),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := eventInOrg(ctx, tx.Events(), orgID, eventID); err != nil {
			return err
		}

		var err error
		if list.Position, err = tx.Lists().NextPosition(ctx, eventID); err != nil {
			return err
		}
		return tx.Lists().CreateList(ctx, list)
	})
	if errors.Is(err, ErrEventNotFound) {
		return domain.SignupList{}, err
	}
	if err != nil {
		return domain.SignupList{}, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

// SetListLocked freezes or reopens a list. A locked list accepts no new
// signups and no removals.
func (s *EventService) SetListLocked(ctx context.Context, orgID, listID, actor string, locked bool) (domain.SignupList, error) {
	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, actor); err != nil {
		return domain.SignupList{}, err
	}

	var list domain.SignupList
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if list, err = listInOrg(ctx, tx, orgID, listID); err != nil {
			return err
		}
		if err := tx.Lists().SetLocked(ctx, listID, locked); err != nil {
			return err
		}
		list.IsLocked = locked
		return nil
	})
	if errors.Is(err, ErrListNotFound) {
		return domain.SignupList{}, err
	}
	if err != nil {
		return domain.SignupList{}, fmt.Errorf("lock list: %w", err)
	}

	slogx.FromContext(ctx).Info("list lock changed",
		slog.String("list_id", listID),
		slog.Bool("locked", locked),
	)
	return list, nil
}

// DuplicateEvent copies an event and its lists, without signups. An empty
// title becomes "<title> (copy)" and a zero startsAt keeps the original
// time. Everything happens in one transaction.
func (s *EventService) DuplicateEvent(
	ctx context.Context,
	orgID, eventID, actor string,
	title string,
	startsAt time.Time,
) (domain.Event, []domain.SignupList, error) {
	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, actor); err != nil {
		return domain.Event{}, nil, err
	}

	now := clock(s.Now)

	var (
		copied domain.Event
		lists  []domain.SignupList
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		src, err := eventInOrg(ctx, tx.Events(), orgID, eventID)
		if err != nil {
			return err
		}

		copied = src
		copied.ID = idx.New().String()
		copied.ReminderSentAt = nil
		copied.CreatedAt = now
		copied.UpdatedAt = now
		if t := strings.TrimSpace(title); t != "" {
			copied.Title = t
		} else {
			copied.Title = src.Title + " (copy)"
		}
		if !startsAt.IsZero() {
			copied.StartsAt = startsAt.UTC()
			if src.EndsAt != nil {
				end := copied.StartsAt.Add(src.EndsAt.Sub(src.StartsAt))
				copied.EndsAt = &end
			}
		}
		if copied.Slug, err = uniqueSlug(ctx, tx.Events(), orgID, copied.Title); err != nil {
			return err
		}
		if err := tx.Events().CreateEvent(ctx, copied); err != nil {
			return err
		}

		srcLists, err := tx.Lists().ListByEvent(ctx, src.ID)
		if err != nil {
			return err
		}
		lists = make([]domain.SignupList, 0, len(srcLists))
		for _, l := range srcLists {
			l.ID = idx.New().String()
			l.EventID = copied.ID
			l.IsLocked = false
			l.CreatedAt = now
			if err := tx.Lists().CreateList(ctx, l); err != nil {
				return err
			}
			lists = append(lists, l)
		}
		return nil
	})
	if errors.Is(err, ErrEventNotFound) {
		return domain.Event{}, nil, err
	}
	if err != nil {
		return domain.Event{}, nil, fmt.Errorf("duplicate event: %w", err)
	}

	slogx.FromContext(ctx).Info("event duplicated",
		slog.String("source_event_id", eventID),
		slog.String("event_id", copied.ID),
		slog.Int("lists", len(lists)),
	)
	return copied, lists, nil
}

// ReorderLists sets list positions to the order of listIDs, which must name
// every list of the event exactly once. Either all positions change or none.
func (s *EventService) ReorderLists(ctx context.Context, orgID, eventID, actor string, listIDs []string) ([]domain.SignupList, error) {
	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, actor); err != nil {
		return nil, err
	}

	var lists []domain.SignupList
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := eventInOrg(ctx, tx.Events(), orgID, eventID); err != nil {
			return err
		}

		current, err := tx.Lists().ListByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if !samePermutation(current, listIDs) {
			return ErrInvalidOrder
		}

		for pos, id := range listIDs {
			if err := tx.Lists().SetPosition(ctx, id, pos); err != nil {
				return err
			}
		}

		lists, err = tx.Lists().ListByEvent(ctx, eventID)
		return err
	})
	if errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrInvalidOrder) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("reorder lists: %w", err)
	}
	return lists, nil
}

// PublicPage loads the event at orgID/slug for volunteers.
func (s *EventService) PublicPage(ctx context.Context, orgID, eventSlug string) (PublicPage, error) {
	ev, err := s.Store.Events().GetEventBySlug(ctx, orgID, eventSlug)
	if errors.Is(err, store.ErrNotFound) {
		return PublicPage{}, ErrEventNotFound
	}
	if err != nil {
		return PublicPage{}, fmt.Errorf("load event: %w", err)
	}

	lists, err := s.Store.Lists().ListByEvent(ctx, ev.ID)
	if err != nil {
		return PublicPage{}, fmt.Errorf("load lists: %w", err)
	}
	signups, err := s.Store.Signups().ListByEvent(ctx, ev.ID)
	if err != nil {
		return PublicPage{}, fmt.Errorf("load signups: %w", err)
	}

	byList := make(map[string][]domain.Signup, len(lists))
	for _, su := range signups {
		su.Phone = domain.MaskPhone(su.Phone)
		su.Email = ""
		byList[su.ListID] = append(byList[su.ListID], su)
	}

	page := PublicPage{Event: ev, Lists: make([]PublicList, 0, len(lists))}
	for _, l := range lists {
		page.Lists = append(page.Lists, PublicList{List: l, Signups: byList[l.ID]})
	}
	return page, nil
}

// uniqueSlug slugs title and appends -2, -3, ... until it is free within
// the organization.
func uniqueSlug(ctx context.Context, events store.Events, orgID, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "event"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := events.SlugExists(ctx, orgID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func eventInOrg(ctx context.Context, events store.Events, orgID, eventID string) (domain.Event, error) {
	ev, err := events.GetEventByID(ctx, eventID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && ev.OrganizationID != orgID) {
		return domain.Event{}, ErrEventNotFound
	}
	return ev, err
}

func listInOrg(ctx context.Context, st store.Store, orgID, listID string) (domain.SignupList, error) {
	list, err := st.Lists().GetListByID(ctx, listID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.SignupList{}, ErrListNotFound
	}
	if err != nil {
		return domain.SignupList{}, err
	}
	if _, err := eventInOrg(ctx, st.Events(), orgID, list.EventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.SignupList{}, ErrListNotFound
		}
		return domain.SignupList{}, err
	}
	return list, nil
}

func samePermutation(lists []domain.SignupList, ids []string) bool {
	if len(lists) != len(ids) {
		return false
	}
	want := make(map[string]bool, len(lists))
	for _, l := range lists {
		want[l.ID] = true
	}
	for _, id := range ids {
		if !want[id] {
			return false
		}
		delete(want, id)
	}
	return true
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
