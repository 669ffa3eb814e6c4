package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jeelTecheniac/chat-demo-backend/internal/apperr"
	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
	"github.com/jeelTecheniac/chat-demo-backend/internal/repository"
)

type ChatService struct {
	chats   repository.ChatRepository
	guard   *OrgGuard
	emitter Emitter
}

func NewChatService(chats repository.ChatRepository, guard *OrgGuard, emitter Emitter) *ChatService {
	return &ChatService{chats: chats, guard: guard, emitter: emitter}
}

// CreateGroupChat creates a group chat from the creator and at least two
// other members, all of whom must share an organization with the creator.
func (s *ChatService) CreateGroupChat(ctx context.Context, creatorID, name string, memberIDs []string) (*models.Chat, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("group name is required")
	}
	if len(memberIDs) < 2 {
		return nil, apperr.Validation("group chat must have at least 3 members")
	}
	creatorObjID, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperr.BadID("invalid user id")
	}

	if !s.guard.AllMembersShareOrgWith(ctx, creatorID, memberIDs) {
		return nil, apperr.Forbidden("all members must share an organization with you")
	}

	members := make([]primitive.ObjectID, 0, len(memberIDs)+1)
	members = append(members, creatorObjID)
	for _, id := range memberIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, apperr.BadID("invalid member id")
		}
		members = append(members, objID)
	}

	chat, err := s.chats.Create(ctx, &models.Chat{
		Name:      strings.TrimSpace(name),
		GroupChat: true,
		Creator:   creatorObjID,
		Members:   members,
	})
	if err != nil {
		return nil, err
	}

	notify := make([]string, 0, len(members))
	for _, m := range members {
		notify = append(notify, m.Hex())
	}
	s.emitter.Emit(EventRefetchChats, notify, nil)
	return chat, nil
}
