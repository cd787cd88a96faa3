package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
)

// PermissionService answers "may this email act on this organization".
type PermissionService struct {
	Store store.Store
}

// RequireOrgAdmin passes for the organization owner and its active admins.
func (s *PermissionService) RequireOrgAdmin(ctx context.Context, orgID, email string) (domain.Organization, error) {
	return s.require(ctx, orgID, email, true)
}

// RequireOrgMember passes for the owner and any active member.
func (s *PermissionService) RequireOrgMember(ctx context.Context, orgID, email string) (domain.Organization, error) {
	return s.require(ctx, orgID, email, false)
}

func (s *PermissionService) require(ctx context.Context, orgID, email string, admin bool) (domain.Organization, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Organization{}, ErrForbidden
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Organization{}, ErrOrganizationNotFound
	}
	if err != nil {
		return domain.Organization{}, fmt.Errorf("load organization: %w", err)
	}
	if org.OwnerEmail == email {
		return org, nil
	}

	m, err := s.Store.Memberships().GetActiveByEmail(ctx, orgID, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Organization{}, ErrForbidden
	}
	if err != nil {
		return domain.Organization{}, fmt.Errorf("load membership: %w", err)
	}
	if admin && m.Role != domain.RoleAdmin {
		return domain.Organization{}, ErrForbidden
	}
	return org, nil
}
