package sqlite

import (
	"context"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type organizationsRepo struct {
	q dbtx
}

func scanOrganization(row scanner) (domain.Organization, error) {
	var (
		o                    domain.Organization
		createdAt, updatedAt int64
	)
	if err := row.Scan(&o.ID, &o.Name, &o.OwnerEmail, &createdAt, &updatedAt); err != nil {
		return domain.Organization{}, err
	}
	o.CreatedAt = fromMillis(createdAt)
	o.UpdatedAt = fromMillis(updatedAt)
	return o, nil
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO organizations (id, name, owner_email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.OwnerEmail, toMillis(o.CreatedAt), toMillis(o.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, owner_email, created_at, updated_at
		  FROM organizations
		 WHERE id = ?`, id)
	o, err := scanOrganization(row)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}

func (r *organizationsRepo) ListForEmail(ctx context.Context, email string) ([]domain.Organization, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT o.id, o.name, o.owner_email, o.created_at, o.updated_at
		  FROM organizations o
		 WHERE o.owner_email = ?1
		    OR EXISTS (
		        SELECT 1 FROM memberships m
		         WHERE m.organization_id = o.id
		           AND m.user_email = ?1
		           AND m.status = 'active')
		 ORDER BY o.name`,
		email,
	)
	return collect(rows, err, scanOrganization)
}
