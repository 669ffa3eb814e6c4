// Package services holds the application core: the organization-membership
// predicate engine, the friend-request state machine, the chat
// materializer and the surrounding identity/organization operations.
package services

import "context"

// Emitter fans events out to a user's active connections. Implementations
// must be best-effort: they log failures and never block the caller.
type Emitter interface {
	Emit(event string, userIDs []string, payload interface{})
}

// AvatarStore is the opaque blob-storage capability used for avatar uploads.
type AvatarStore interface {
	Upload(ctx context.Context, prefix, contentType string, data []byte) (key, publicURL string, err error)
}

// Event names delivered through the Emitter.
const (
	EventNewRequest   = "NEW_REQUEST"
	EventRefetchChats = "REFETCH_CHATS"
)
