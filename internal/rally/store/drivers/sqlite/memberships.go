package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type membershipsRepo struct {
	q dbtx
}

const membershipColumns = `id, organization_id, user_email, role, status, invite_token_hash,
	token_expires_at, invited_by, invited_at, joined_at`

func scanMembership(row scanner) (domain.Membership, error) {
	var (
		m              domain.Membership
		role, status   string
		tokenHash      sql.NullString
		tokenExpiresAt sql.NullInt64
		invitedAt      int64
		joinedAt       sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.OrganizationID, &m.UserEmail, &role, &status, &tokenHash,
		&tokenExpiresAt, &m.InvitedBy, &invitedAt, &joinedAt)
	if err != nil {
		return domain.Membership{}, err
	}
	m.Role = domain.Role(role)
	m.Status = domain.MembershipStatus(status)
	m.InviteTokenHash = mapNullString(tokenHash)
	m.TokenExpiresAt = mapNullTimePtr(tokenExpiresAt)
	m.InvitedAt = fromMillis(invitedAt)
	m.JoinedAt = mapNullTimePtr(joinedAt)
	return m, nil
}

func (r *membershipsRepo) getOne(ctx context.Context, where string, args ...any) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE `+where, args...)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO memberships (`+membershipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OrganizationID, m.UserEmail, string(m.Role), string(m.Status),
		mapStringNull(m.InviteTokenHash), mapOptionalTime(m.TokenExpiresAt),
		m.InvitedBy, toMillis(m.InvitedAt), mapOptionalTime(m.JoinedAt),
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembershipByID(ctx context.Context, id string) (domain.Membership, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *membershipsRepo) GetPendingByTokenHash(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.Membership, error) {
	return r.getOne(ctx,
		`invite_token_hash = ? AND status = 'pending' AND token_expires_at > ?`,
		hash, toMillis(now),
	)
}

func (r *membershipsRepo) GetPendingByEmail(ctx context.Context, orgID, email string) (domain.Membership, error) {
	return r.getOne(ctx,
		`organization_id = ? AND user_email = ? AND status = 'pending' ORDER BY invited_at DESC LIMIT 1`,
		orgID, email,
	)
}

func (r *membershipsRepo) GetActiveByEmail(ctx context.Context, orgID, email string) (domain.Membership, error) {
	return r.getOne(ctx,
		`organization_id = ? AND user_email = ? AND status = 'active'`,
		orgID, email,
	)
}

func (r *membershipsRepo) RetokenPending(ctx context.Context, m domain.Membership) error {
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE memberships
		   SET invite_token_hash = ?, token_expires_at = ?, role = ?, invited_by = ?, invited_at = ?
		 WHERE id = ? AND status = 'pending'`,
		mapStringNull(m.InviteTokenHash), mapOptionalTime(m.TokenExpiresAt),
		string(m.Role), m.InvitedBy, toMillis(m.InvitedAt), m.ID,
	))
}

func (r *membershipsRepo) ActivatePending(
	ctx context.Context,
	id, email string,
	now time.Time,
) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE memberships
		   SET status = 'active',
		       user_email = ?,
		       invite_token_hash = NULL,
		       token_expires_at = NULL,
		       joined_at = ?
		 WHERE id = ? AND status = 'pending'
		RETURNING `+membershipColumns,
		email, toMillis(now), id,
	)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapConstraint(mapNotFound(err))
	}
	return m, nil
}

func (r *membershipsRepo) DeletePending(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx,
		`DELETE FROM memberships WHERE id = ? AND status = 'pending'`, id))
}

func (r *membershipsRepo) ListByOrganization(ctx context.Context, orgID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+membershipColumns+`
		  FROM memberships
		 WHERE organization_id = ?
		 ORDER BY status, user_email`,
		orgID,
	)
	return collect(rows, err, scanMembership)
}

func (r *membershipsRepo) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM memberships WHERE status = 'pending' AND token_expires_at < ?`,
		toMillis(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
