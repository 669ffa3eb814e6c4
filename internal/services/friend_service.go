package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jeelTecheniac/chat-demo-backend/internal/apperr"
	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
	"github.com/jeelTecheniac/chat-demo-backend/internal/repository"
)

// FriendService runs the friend-request lifecycle: a pending request either
// gets rejected (deleted, no trace) or accepted (deleted, direct chat
// materialized). Both transitions are gated by shared-organization checks.
type FriendService struct {
	users    repository.UserRepository
	requests repository.RequestRepository
	guard    *OrgGuard
	emitter  Emitter
	log      *zap.SugaredLogger
}

func NewFriendService(
	users repository.UserRepository,
	requests repository.RequestRepository,
	guard *OrgGuard,
	emitter Emitter,
	log *zap.SugaredLogger,
) *FriendService {
	return &FriendService{
		users:    users,
		requests: requests,
		guard:    guard,
		emitter:  emitter,
		log:      log,
	}
}

// SendFriendRequest creates a pending request from sender to receiver.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, receiverID string) error {
	if !s.guard.UsersShareOrganization(ctx, senderID, receiverID) {
		return apperr.Forbidden("you can only send friend requests within your organization")
	}

	// Symmetric: a pending B->A request blocks A->B as well.
	existing, err := s.requests.FindBetween(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Conflict("request already sent")
	}

	senderObjID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return apperr.BadID("invalid sender id")
	}
	receiverObjID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return apperr.BadID("invalid receiver id")
	}

	req, err := s.requests.Create(ctx, &models.Request{
		Sender:   senderObjID,
		Receiver: receiverObjID,
	})
	if err != nil {
		return err
	}

	s.emitter.Emit(EventNewRequest, []string{receiverID}, map[string]string{
		"request_id": req.ID.Hex(),
		"sender_id":  senderID,
	})
	return nil
}

// RespondToFriendRequest accepts or rejects a pending request. Only the
// receiver may respond. Acceptance re-validates the shared-organization
// predicate and, if it fails, leaves the request untouched.
func (s *FriendService) RespondToFriendRequest(ctx context.Context, requestID, responderID string, accept bool) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperr.NotFound("request not found")
	}

	if req.Receiver.Hex() != responderID {
		return apperr.Unauthorized("you are not authorized to respond to this request")
	}

	if !accept {
		return s.requests.Delete(ctx, requestID)
	}

	senderID := req.Sender.Hex()
	receiverID := req.Receiver.Hex()

	// Membership may have changed since the request was sent.
	if !s.guard.UsersShareOrganization(ctx, senderID, receiverID) {
		return apperr.Forbidden("you can only create chats within your organization")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return err
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return err
	}
	if sender == nil || receiver == nil {
		return apperr.NotFound("user not found")
	}

	chat := &models.Chat{
		Name:      fmt.Sprintf("%s-%s", sender.Name, receiver.Name),
		GroupChat: false,
		Members:   []primitive.ObjectID{req.Sender, req.Receiver},
	}
	if _, err := s.requests.CommitAcceptance(ctx, requestID, chat); err != nil {
		return err
	}

	s.emitter.Emit(EventRefetchChats, []string{senderID, receiverID}, nil)
	return nil
}

// ListNotifications returns the pending requests addressed to the user,
// newest first, with the sender's public profile attached.
func (s *FriendService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	reqs, err := s.requests.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(reqs))
	for _, req := range reqs {
		senderIDs = append(senderIDs, req.Sender.Hex())
	}
	senders, err := s.users.GetManyByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	profiles := publicProfiles(senders)

	out := make([]models.Notification, 0, len(reqs))
	for _, req := range reqs {
		profile, ok := profiles[req.Sender.Hex()]
		if !ok {
			s.log.Warnf("request %s has unresolvable sender %s", req.ID.Hex(), req.Sender.Hex())
			continue
		}
		out = append(out, models.Notification{ID: req.ID.Hex(), Sender: profile})
	}
	return out, nil
}
