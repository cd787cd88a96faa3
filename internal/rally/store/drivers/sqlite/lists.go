package sqlite

import (
	"context"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type listsRepo struct {
	q dbtx
}

const listColumns = `id, event_id, title, description, max_slots, is_locked, position, created_at`

func scanList(row scanner) (domain.SignupList, error) {
	var (
		l         domain.SignupList
		createdAt int64
	)
	err := row.Scan(&l.ID, &l.EventID, &l.Title, &l.Description, &l.MaxSlots, &l.IsLocked, &l.Position, &createdAt)
	if err != nil {
		return domain.SignupList{}, err
	}
	l.CreatedAt = fromMillis(createdAt)
	return l, nil
}

func (r *listsRepo) CreateList(ctx context.Context, l domain.SignupList) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO signup_lists (`+listColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EventID, l.Title, l.Description, l.MaxSlots, l.IsLocked, l.Position, toMillis(l.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *listsRepo) GetListByID(ctx context.Context, id string) (domain.SignupList, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+listColumns+` FROM signup_lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err != nil {
		return domain.SignupList{}, mapNotFound(err)
	}
	return l, nil
}

func (r *listsRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.SignupList, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+listColumns+`
		  FROM signup_lists
		 WHERE event_id = ?
		 ORDER BY position, created_at`,
		eventID,
	)
	return collect(rows, err, scanList)
}

func (r *listsRepo) NextPosition(ctx context.Context, eventID string) (int, error) {
	var next int
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM signup_lists WHERE event_id = ?`,
		eventID,
	).Scan(&next)
	return next, err
}

func (r *listsRepo) SetPosition(ctx context.Context, id string, position int) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE signup_lists SET position = ? WHERE id = ?`, position, id))
}

func (r *listsRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE signup_lists SET is_locked = ? WHERE id = ?`, locked, id))
}
