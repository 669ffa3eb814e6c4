package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
)

// --- in-memory repositories ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(name, username string, orgs ...primitive.ObjectID) *models.User {
	u := &models.User{
		ID:                  primitive.NewObjectID(),
		Name:                name,
		Username:            username,
		Avatar:              models.Avatar{URL: "https://example.com/" + username + ".png"},
		JoinedOrganizations: orgs,
	}
	r.users[u.ID.Hex()] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	r.users[user.ID.Hex()] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, nil
	}
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetManyByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AddJoinedOrganization(_ context.Context, userID, orgID string) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	orgObjID, err := primitive.ObjectIDFromHex(orgID)
	if err != nil {
		return err
	}
	for _, existing := range u.JoinedOrganizations {
		if existing == orgObjID {
			return nil
		}
	}
	u.JoinedOrganizations = append(u.JoinedOrganizations, orgObjID)
	return nil
}

func (r *fakeUserRepo) Search(_ context.Context, name string, orgIDs, excludeIDs []string) ([]*models.User, error) {
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	inScope := func(u *models.User) bool {
		for _, org := range u.JoinedOrganizations {
			for _, id := range orgIDs {
				if org.Hex() == id {
					return true
				}
			}
		}
		return false
	}

	var out []*models.User
	for _, u := range r.users {
		if _, skip := excluded[u.ID.Hex()]; skip {
			continue
		}
		if !strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			continue
		}
		if inScope(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeOrgRepo struct {
	orgs map[string]*models.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*models.Organization)}
}

func (r *fakeOrgRepo) add(name string, creator primitive.ObjectID) *models.Organization {
	org := &models.Organization{ID: primitive.NewObjectID(), Name: name, Creator: creator}
	r.orgs[org.ID.Hex()] = org
	return org
}

func (r *fakeOrgRepo) Create(_ context.Context, org *models.Organization) (*models.Organization, error) {
	org.ID = primitive.NewObjectID()
	r.orgs[org.ID.Hex()] = org
	return org, nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*models.Organization, error) {
	return r.orgs[id], nil
}

func (r *fakeOrgRepo) ListByCreator(_ context.Context, creatorID string) ([]*models.Organization, error) {
	var out []*models.Organization
	for _, org := range r.orgs {
		if org.Creator.Hex() == creatorID {
			out = append(out, org)
		}
	}
	return out, nil
}

func (r *fakeOrgRepo) GetManyByIDs(_ context.Context, ids []string) ([]*models.Organization, error) {
	var out []*models.Organization
	for _, id := range ids {
		if org, ok := r.orgs[id]; ok {
			out = append(out, org)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	chats map[string]*models.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*models.Chat)}
}

func (r *fakeChatRepo) Create(_ context.Context, chat *models.Chat) (*models.Chat, error) {
	chat.ID = primitive.NewObjectID()
	r.chats[chat.ID.Hex()] = chat
	return chat, nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, id string) (*models.Chat, error) {
	return r.chats[id], nil
}

func (r *fakeChatRepo) ListDirectByMember(_ context.Context, userID string) ([]*models.Chat, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	var out []*models.Chat
	for _, chat := range r.chats {
		if !chat.GroupChat && chat.HasMember(objID) {
			out = append(out, chat)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests map[string]*models.Request
	chats    *fakeChatRepo
}

func newFakeRequestRepo(chats *fakeChatRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.Request), chats: chats}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *models.Request) (*models.Request, error) {
	req.ID = primitive.NewObjectID()
	r.requests[req.ID.Hex()] = req
	return req, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (*models.Request, error) {
	return r.requests[id], nil
}

func (r *fakeRequestRepo) FindBetween(_ context.Context, userA, userB string) (*models.Request, error) {
	for _, req := range r.requests {
		s, rcv := req.Sender.Hex(), req.Receiver.Hex()
		if (s == userA && rcv == userB) || (s == userB && rcv == userA) {
			return req, nil
		}
	}
	return nil, nil
}

func (r *fakeRequestRepo) ListByReceiver(_ context.Context, receiverID string) ([]*models.Request, error) {
	var out []*models.Request
	for _, req := range r.requests {
		if req.Receiver.Hex() == receiverID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id string) error {
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) CommitAcceptance(ctx context.Context, requestID string, chat *models.Chat) (*models.Chat, error) {
	if _, ok := r.requests[requestID]; !ok {
		return nil, errors.New("request no longer exists")
	}
	created, err := r.chats.Create(ctx, chat)
	if err != nil {
		return nil, err
	}
	delete(r.requests, requestID)
	return created, nil
}

// --- emitter spy ---

type emittedEvent struct {
	Event   string
	UserIDs []string
	Payload interface{}
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
}

func (e *fakeEmitter) Emit(event string, userIDs []string, payload interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{Event: event, UserIDs: userIDs, Payload: payload})
}

func (e *fakeEmitter) byName(event string) []emittedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []emittedEvent
	for _, ev := range e.events {
		if ev.Event == event {
			out = append(out, ev)
		}
	}
	return out
}

// --- avatar store stub ---

type fakeAvatarStore struct{}

func (fakeAvatarStore) Upload(_ context.Context, prefix, _ string, _ []byte) (string, string, error) {
	return prefix + "/fake", "https://example.com/" + prefix + "/fake", nil
}
