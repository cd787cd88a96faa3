package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type signupsRepo struct {
	q dbtx
}

const signupColumns = `s.id, s.list_id, s.name, s.phone, s.email, s.note, s.confirmed_at, s.created_at`

func scanSignupInto(s *domain.Signup, confirmedAt *sql.NullInt64, createdAt *int64) []any {
	return []any{&s.ID, &s.ListID, &s.Name, &s.Phone, &s.Email, &s.Note, confirmedAt, createdAt}
}

func scanSignup(row scanner) (domain.Signup, error) {
	var (
		s           domain.Signup
		confirmedAt sql.NullInt64
		createdAt   int64
	)
	if err := row.Scan(scanSignupInto(&s, &confirmedAt, &createdAt)...); err != nil {
		return domain.Signup{}, err
	}
	s.ConfirmedAt = mapNullTimePtr(confirmedAt)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func scanSignupDetail(row scanner) (domain.SignupDetail, error) {
	var (
		d           domain.SignupDetail
		confirmedAt sql.NullInt64
		createdAt   int64
		startsAt    int64
	)
	dest := append(scanSignupInto(&d.Signup, &confirmedAt, &createdAt),
		&d.ListTitle, &d.EventID, &d.EventTitle, &d.EventSlug, &d.OrganizationID, &startsAt)
	if err := row.Scan(dest...); err != nil {
		return domain.SignupDetail{}, err
	}
	d.ConfirmedAt = mapNullTimePtr(confirmedAt)
	d.CreatedAt = fromMillis(createdAt)
	d.StartsAt = fromMillis(startsAt)
	return d, nil
}

func (r *signupsRepo) CreateSignup(ctx context.Context, s domain.Signup) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO signups (id, list_id, name, phone, email, note, confirmed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ListID, s.Name, s.Phone, s.Email, s.Note, mapOptionalTime(s.ConfirmedAt), toMillis(s.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *signupsRepo) GetSignupByID(ctx context.Context, id string) (domain.Signup, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+signupColumns+` FROM signups s WHERE s.id = ?`, id)
	s, err := scanSignup(row)
	if err != nil {
		return domain.Signup{}, mapNotFound(err)
	}
	return s, nil
}

func (r *signupsRepo) CountByList(ctx context.Context, listID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM signups WHERE list_id = ?`, listID).Scan(&n)
	return n, err
}

func (r *signupsRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Signup, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+signupColumns+`
		  FROM signups s
		  JOIN signup_lists l ON l.id = s.list_id
		 WHERE l.event_id = ?
		 ORDER BY s.created_at, s.id`,
		eventID,
	)
	return collect(rows, err, scanSignup)
}

func (r *signupsRepo) ListDetailsByPhone(ctx context.Context, phone string) ([]domain.SignupDetail, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+signupColumns+`,
		       l.title, e.id, e.title, e.slug, e.organization_id, e.starts_at
		  FROM signups s
		  JOIN signup_lists l ON l.id = s.list_id
		  JOIN events e ON e.id = l.event_id
		 WHERE s.phone = ?
		 ORDER BY e.starts_at, s.created_at`,
		phone,
	)
	return collect(rows, err, scanSignupDetail)
}

func (r *signupsRepo) Confirm(ctx context.Context, id string, now time.Time) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE signups SET confirmed_at = COALESCE(confirmed_at, ?) WHERE id = ?`,
		toMillis(now), id,
	))
}

func (r *signupsRepo) DeleteSignup(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM signups WHERE id = ?`, id))
}
