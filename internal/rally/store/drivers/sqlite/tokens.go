package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type tokensRepo struct {
	q dbtx
}

const tokenColumns = `token_hash, purpose, subject, invite_id, created_at, expires_at, used, used_at`

func scanToken(row scanner) (domain.Token, error) {
	var (
		t                  domain.Token
		purpose            string
		inviteID           sql.NullString
		createdAt, expires int64
		usedAt             sql.NullInt64
	)
	if err := row.Scan(&t.Hash, &purpose, &t.Subject, &inviteID, &createdAt, &expires, &t.Used, &usedAt); err != nil {
		return domain.Token{}, err
	}
	t.Purpose = domain.TokenPurpose(purpose)
	t.InviteID = mapNullString(inviteID)
	t.CreatedAt = fromMillis(createdAt)
	t.ExpiresAt = fromMillis(expires)
	t.UsedAt = mapNullTimePtr(usedAt)
	return t, nil
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO tokens (token_hash, purpose, subject, invite_id, created_at, expires_at, used)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		t.Hash, string(t.Purpose), t.Subject, mapStringNull(t.InviteID),
		toMillis(t.CreatedAt), toMillis(t.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *tokensRepo) RedeemToken(
	ctx context.Context,
	hash string,
	purpose domain.TokenPurpose,
	now time.Time,
) (domain.Token, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE tokens
		   SET used = 1, used_at = ?
		 WHERE token_hash = ? AND purpose = ? AND used = 0 AND expires_at > ?
		RETURNING `+tokenColumns,
		toMillis(now), hash, string(purpose), toMillis(now),
	)
	t, err := scanToken(row)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) GetValidToken(
	ctx context.Context,
	hash string,
	purpose domain.TokenPurpose,
	now time.Time,
) (domain.Token, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+tokenColumns+`
		  FROM tokens
		 WHERE token_hash = ? AND purpose = ? AND used = 0 AND expires_at > ?`,
		hash, string(purpose), toMillis(now),
	)
	t, err := scanToken(row)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) MarkTokenUsed(ctx context.Context, hash string, now time.Time) error {
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE tokens
		   SET used = 1, used_at = COALESCE(used_at, ?)
		 WHERE token_hash = ?`,
		toMillis(now), hash,
	))
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM tokens
		 WHERE expires_at < ?1
		    OR (used = 1 AND used_at < ?1)`,
		toMillis(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
