// Package repository holds the MongoDB persistence layer behind
// interface-per-aggregate boundaries so the service layer can be exercised
// against in-memory fakes.
//
// Lookup methods return (nil, nil) when the document does not exist; the
// service layer owns the translation into the error taxonomy.
package repository

import (
	"context"

	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	AddJoinedOrganization(ctx context.Context, userID, orgID string) error
	// Search matches name case-insensitively as a substring, restricted to
	// users who joined any of orgIDs and excluding excludeIDs.
	Search(ctx context.Context, name string, orgIDs, excludeIDs []string) ([]*models.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) (*models.Organization, error)
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Organization, error)
	GetManyByIDs(ctx context.Context, ids []string) ([]*models.Organization, error)
}

type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) (*models.Chat, error)
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	// ListDirectByMember returns every non-group chat containing userID.
	ListDirectByMember(ctx context.Context, userID string) ([]*models.Chat, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *models.Request) (*models.Request, error)
	GetByID(ctx context.Context, id string) (*models.Request, error)
	// FindBetween returns a pending request between the pair in either
	// direction, if one exists.
	FindBetween(ctx context.Context, userA, userB string) (*models.Request, error)
	ListByReceiver(ctx context.Context, receiverID string) ([]*models.Request, error)
	Delete(ctx context.Context, id string) error
	// CommitAcceptance creates the direct chat and deletes the request as a
	// single operation. If the request turns out to be gone the chat must
	// not survive.
	CommitAcceptance(ctx context.Context, requestID string, chat *models.Chat) (*models.Chat, error)
}
