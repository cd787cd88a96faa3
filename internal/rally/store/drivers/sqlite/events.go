package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type eventsRepo struct {
	q dbtx
}

const eventColumns = `id, organization_id, title, slug, description, location, starts_at, ends_at,
	reminder_sent_at, created_at, updated_at`

func scanEvent(row scanner) (domain.Event, error) {
	var (
		e                      domain.Event
		startsAt               int64
		endsAt, reminderSentAt sql.NullInt64
		createdAt, updatedAt   int64
	)
	err := row.Scan(&e.ID, &e.OrganizationID, &e.Title, &e.Slug, &e.Description, &e.Location,
		&startsAt, &endsAt, &reminderSentAt, &createdAt, &updatedAt)
	if err != nil {
		return domain.Event{}, err
	}
	e.StartsAt = fromMillis(startsAt)
	e.EndsAt = mapNullTimePtr(endsAt)
	e.ReminderSentAt = mapNullTimePtr(reminderSentAt)
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return e, nil
}

func (r *eventsRepo) getOne(ctx context.Context, where string, args ...any) (domain.Event, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE `+where, args...)
	e, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	return e, nil
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OrganizationID, e.Title, e.Slug, e.Description, e.Location,
		toMillis(e.StartsAt), mapOptionalTime(e.EndsAt), mapOptionalTime(e.ReminderSentAt),
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.Event, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *eventsRepo) GetEventBySlug(ctx context.Context, orgID, slug string) (domain.Event, error) {
	return r.getOne(ctx, `organization_id = ? AND slug = ?`, orgID, slug)
}

func (r *eventsRepo) ListByOrganization(ctx context.Context, orgID string) ([]domain.Event, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+eventColumns+`
		  FROM events
		 WHERE organization_id = ?
		 ORDER BY starts_at`,
		orgID,
	)
	return collect(rows, err, scanEvent)
}

func (r *eventsRepo) SlugExists(ctx context.Context, orgID, slug string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE organization_id = ? AND slug = ?)`,
		orgID, slug,
	).Scan(&exists)
	return exists, err
}

func (r *eventsRepo) ListDueForReminder(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+eventColumns+`
		  FROM events
		 WHERE reminder_sent_at IS NULL
		   AND starts_at >= ? AND starts_at < ?
		 ORDER BY starts_at`,
		toMillis(from), toMillis(to),
	)
	return collect(rows, err, scanEvent)
}

func (r *eventsRepo) ClaimReminder(ctx context.Context, id string, now time.Time) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE events SET reminder_sent_at = ?, updated_at = ? WHERE id = ? AND reminder_sent_at IS NULL`,
		toMillis(now), toMillis(now), id,
	))
}
