package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/idx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

type OrganizationService struct {
	Store       store.Store
	Permissions *PermissionService
	Now         func() time.Time
}

// Create makes a new organization owned by ownerEmail, who also becomes its
// first active admin.
func (s *OrganizationService) Create(ctx context.Context, name, ownerEmail string) (domain.Organization, error) {
	name = strings.TrimSpace(name)
	ownerEmail = domain.NormalizeEmail(ownerEmail)
	if name == "" || ownerEmail == "" {
		return domain.Organization{}, ErrInvalidOrganization
	}

	now := clock(s.Now)
	org := domain.Organization{
		ID:         idx.New().String(),
		Name:       name,
		OwnerEmail: ownerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	owner := domain.Membership{
		ID:             idx.New().String(),
		OrganizationID: org.ID,
		UserEmail:      ownerEmail,
		Role:           domain.RoleAdmin,
		Status:         domain.MembershipActive,
		InvitedBy:      ownerEmail,
		InvitedAt:      now,
		JoinedAt:       &now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, owner)
	})
	if err != nil {
		return domain.Organization{}, fmt.Errorf("create organization: %w", err)
	}

	slogx.FromContext(ctx).Info("organization created",
		slog.String("organization_id", org.ID),
	)
	return org, nil
}

// ListForEmail returns the organizations email owns or belongs to.
func (s *OrganizationService) ListForEmail(ctx context.Context, email string) ([]domain.Organization, error) {
	orgs, err := s.Store.Organizations().ListForEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// ListMembers returns the roster, pending invites included. Any member may
// look.
func (s *OrganizationService) ListMembers(ctx context.Context, orgID, email string) ([]domain.Membership, error) {
	if _, err := s.Permissions.RequireOrgMember(ctx, orgID, email); err != nil {
		return nil, err
	}

	members, err := s.Store.Memberships().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Get returns an organization by id.
func (s *OrganizationService) Get(ctx context.Context, orgID string) (domain.Organization, error) {
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Organization{}, ErrOrganizationNotFound
	}
	if err != nil {
		return domain.Organization{}, fmt.Errorf("load organization: %w", err)
	}
	return org, nil
}
