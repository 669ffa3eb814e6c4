package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jeelTecheniac/chat-demo-backend/internal/apperr"
	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
	"github.com/jeelTecheniac/chat-demo-backend/internal/repository"
)

type OrgService struct {
	users repository.UserRepository
	orgs  repository.OrganizationRepository
}

func NewOrgService(users repository.UserRepository, orgs repository.OrganizationRepository) *OrgService {
	return &OrgService{users: users, orgs: orgs}
}

// CreateOrganization creates the organization and adds the creator to its
// members by appending it to their joined set.
func (s *OrgService) CreateOrganization(ctx context.Context, creatorID, name string) (*models.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("organization name is required and cannot be empty")
	}
	creatorObjID, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperr.BadID("invalid user id")
	}

	org, err := s.orgs.Create(ctx, &models.Organization{
		Name:    strings.TrimSpace(name),
		Creator: creatorObjID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.AddJoinedOrganization(ctx, creatorID, org.ID.Hex()); err != nil {
		return nil, err
	}
	return org, nil
}

// JoinOrganization appends the organization to the user's joined set.
// Joining twice is a no-op.
func (s *OrgService) JoinOrganization(ctx context.Context, userID, orgID string) error {
	if _, err := primitive.ObjectIDFromHex(orgID); err != nil {
		return apperr.BadID("invalid organization id")
	}
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return apperr.NotFound("organization not found")
	}
	return s.users.AddJoinedOrganization(ctx, userID, orgID)
}

// ListOwnedOrganizations returns the organizations the user created, newest
// first.
func (s *OrgService) ListOwnedOrganizations(ctx context.Context, userID string) ([]*models.Organization, error) {
	return s.orgs.ListByCreator(ctx, userID)
}

// ListJoinedOrganizations resolves the user's joined-organization set.
func (s *OrgService) ListJoinedOrganizations(ctx context.Context, userID string) ([]*models.Organization, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	ids := make([]string, 0, len(user.JoinedOrganizations))
	for _, id := range user.JoinedOrganizations {
		ids = append(ids, id.Hex())
	}
	return s.orgs.GetManyByIDs(ctx, ids)
}
