package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
	"github.com/jeelTecheniac/chat-demo-backend/internal/repository"
)

// OrgGuard answers the shared-organization questions that gate every
// cross-user relationship. All checks fail closed: malformed ids and
// unresolvable users yield false, never an error.
type OrgGuard struct {
	users repository.UserRepository
}

func NewOrgGuard(users repository.UserRepository) *OrgGuard {
	return &OrgGuard{users: users}
}

// UsersShareOrganization reports whether both users exist and their
// joined-organization sets intersect.
func (g *OrgGuard) UsersShareOrganization(ctx context.Context, userA, userB string) bool {
	if !validObjectID(userA) || !validObjectID(userB) {
		return false
	}
	a, err := g.users.GetByID(ctx, userA)
	if err != nil || a == nil {
		return false
	}
	b, err := g.users.GetByID(ctx, userB)
	if err != nil || b == nil {
		return false
	}
	return orgSetsIntersect(a.JoinedOrganizations, b.JoinedOrganizations)
}

// AllMembersShareOrgWith reports whether every member id resolves to an
// existing user sharing at least one organization with the reference user.
// Unresolvable member ids count as a negative, not an error.
func (g *OrgGuard) AllMembersShareOrgWith(ctx context.Context, referenceID string, memberIDs []string) bool {
	if !validObjectID(referenceID) {
		return false
	}
	ref, err := g.users.GetByID(ctx, referenceID)
	if err != nil || ref == nil {
		return false
	}
	members, err := g.users.GetManyByIDs(ctx, memberIDs)
	if err != nil || len(members) != len(memberIDs) {
		return false
	}
	for _, m := range members {
		if !orgSetsIntersect(ref.JoinedOrganizations, m.JoinedOrganizations) {
			return false
		}
	}
	return true
}

func validObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// orgSetsIntersect compares by canonical hex form so representation
// differences cannot hide a shared membership.
func orgSetsIntersect(a, b []primitive.ObjectID) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id.Hex()] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id.Hex()]; ok {
			return true
		}
	}
	return false
}

// publicProfiles maps users to their public shape keyed by hex id.
func publicProfiles(users []*models.User) map[string]models.PublicUser {
	out := make(map[string]models.PublicUser, len(users))
	for _, u := range users {
		out[u.ID.Hex()] = u.Public()
	}
	return out
}
