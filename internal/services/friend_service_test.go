package services

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jeelTecheniac/chat-demo-backend/internal/apperr"
	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
)

type friendFixture struct {
	users    *fakeUserRepo
	chats    *fakeChatRepo
	requests *fakeRequestRepo
	emitter  *fakeEmitter
	svc      *FriendService
}

func newFriendFixture() *friendFixture {
	users := newFakeUserRepo()
	chats := newFakeChatRepo()
	requests := newFakeRequestRepo(chats)
	emitter := &fakeEmitter{}
	svc := NewFriendService(users, requests, NewOrgGuard(users), emitter, zap.NewNop().Sugar())
	return &friendFixture{users: users, chats: chats, requests: requests, emitter: emitter, svc: svc}
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	if got := apperr.StatusOf(err); got != status {
		t.Fatalf("expected status %d, got %d (%v)", status, got, err)
	}
}

func TestSendFriendRequest_CrossOrganizationForbidden(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	globex := primitive.NewObjectID()
	u1 := f.users.add("U1", "u1", acme)
	u3 := f.users.add("U3", "u3", globex)

	err := f.svc.SendFriendRequest(context.Background(), u1.ID.Hex(), u3.ID.Hex())
	wantStatus(t, err, http.StatusForbidden)

	if len(f.requests.requests) != 0 {
		t.Fatalf("no request must be created, found %d", len(f.requests.requests))
	}
}

func TestSendFriendRequest_DuplicateIsSymmetric(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("A", "a", acme)
	b := f.users.add("B", "b", acme)
	ctx := context.Background()

	if err := f.svc.SendFriendRequest(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("first request: %v", err)
	}

	// same direction
	wantStatus(t, f.svc.SendFriendRequest(ctx, a.ID.Hex(), b.ID.Hex()), http.StatusBadRequest)
	// reverse direction is blocked too
	wantStatus(t, f.svc.SendFriendRequest(ctx, b.ID.Hex(), a.ID.Hex()), http.StatusBadRequest)

	if len(f.requests.requests) != 1 {
		t.Fatalf("expected exactly one pending request, found %d", len(f.requests.requests))
	}
}

func TestSendFriendRequest_EmitsNewRequest(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("A", "a", acme)
	b := f.users.add("B", "b", acme)

	if err := f.svc.SendFriendRequest(context.Background(), a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("send: %v", err)
	}

	events := f.emitter.byName(EventNewRequest)
	if len(events) != 1 {
		t.Fatalf("expected one NEW_REQUEST event, got %d", len(events))
	}
	if len(events[0].UserIDs) != 1 || events[0].UserIDs[0] != b.ID.Hex() {
		t.Errorf("NEW_REQUEST must target the receiver, got %v", events[0].UserIDs)
	}
}

func TestRespond_RequestNotFound(t *testing.T) {
	f := newFriendFixture()
	u := f.users.add("U", "u", primitive.NewObjectID())

	err := f.svc.RespondToFriendRequest(context.Background(), primitive.NewObjectID().Hex(), u.ID.Hex(), true)
	wantStatus(t, err, http.StatusNotFound)
}

func TestRespond_OnlyReceiverMayRespond(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("A", "a", acme)
	b := f.users.add("B", "b", acme)
	ctx := context.Background()

	if err := f.svc.SendFriendRequest(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("send: %v", err)
	}
	var reqID string
	for id := range f.requests.requests {
		reqID = id
	}

	// the sender may not accept their own outgoing request
	wantStatus(t, f.svc.RespondToFriendRequest(ctx, reqID, a.ID.Hex(), true), http.StatusUnauthorized)
	if len(f.requests.requests) != 1 {
		t.Fatal("request must survive an unauthorized respond attempt")
	}
}

func TestRespond_RejectionIsTerminal(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("A", "a", acme)
	b := f.users.add("B", "b", acme)
	ctx := context.Background()

	if err := f.svc.SendFriendRequest(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("send: %v", err)
	}
	var reqID string
	for id := range f.requests.requests {
		reqID = id
	}

	if err := f.svc.RespondToFriendRequest(ctx, reqID, b.ID.Hex(), false); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(f.requests.requests) != 0 {
		t.Fatal("rejected request must be deleted")
	}
	if len(f.chats.chats) != 0 {
		t.Fatal("rejection must not materialize a chat")
	}

	// a second respond on the same id fails with NotFound
	wantStatus(t, f.svc.RespondToFriendRequest(ctx, reqID, b.ID.Hex(), true), http.StatusNotFound)
}

func TestRespond_AcceptRoundTrip(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("U1", "u1", acme)
	b := f.users.add("U2", "u2", acme)
	ctx := context.Background()

	if err := f.svc.SendFriendRequest(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("send: %v", err)
	}
	var reqID string
	for id := range f.requests.requests {
		reqID = id
	}

	if err := f.svc.RespondToFriendRequest(ctx, reqID, b.ID.Hex(), true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if len(f.requests.requests) != 0 {
		t.Fatal("accepted request must be deleted")
	}
	if len(f.chats.chats) != 1 {
		t.Fatalf("expected exactly one chat, found %d", len(f.chats.chats))
	}
	var chat *models.Chat
	for _, c := range f.chats.chats {
		chat = c
	}
	if chat.GroupChat {
		t.Error("materialized chat must be a direct chat")
	}
	if chat.Name != "U1-U2" {
		t.Errorf("chat name: got %q, want %q", chat.Name, "U1-U2")
	}
	if len(chat.Members) != 2 || !chat.HasMember(a.ID) || !chat.HasMember(b.ID) {
		t.Errorf("chat members: got %v, want {%s,%s}", chat.Members, a.ID.Hex(), b.ID.Hex())
	}

	events := f.emitter.byName(EventRefetchChats)
	if len(events) != 1 {
		t.Fatalf("expected one REFETCH_CHATS event, got %d", len(events))
	}
	if len(events[0].UserIDs) != 2 {
		t.Errorf("REFETCH_CHATS must target both members, got %v", events[0].UserIDs)
	}
}

func TestRespond_AcceptRevalidatesMembership(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("A", "a", acme)
	b := f.users.add("B", "b", acme)
	ctx := context.Background()

	if err := f.svc.SendFriendRequest(ctx, a.ID.Hex(), b.ID.Hex()); err != nil {
		t.Fatalf("send: %v", err)
	}
	var reqID string
	for id := range f.requests.requests {
		reqID = id
	}

	// membership changed between request and response
	a.JoinedOrganizations = []primitive.ObjectID{primitive.NewObjectID()}

	wantStatus(t, f.svc.RespondToFriendRequest(ctx, reqID, b.ID.Hex(), true), http.StatusForbidden)

	if len(f.requests.requests) != 1 {
		t.Fatal("failed acceptance must leave the request untouched")
	}
	if len(f.chats.chats) != 0 {
		t.Fatal("failed acceptance must not materialize a chat")
	}
}

func TestListNotifications(t *testing.T) {
	f := newFriendFixture()
	acme := primitive.NewObjectID()
	a := f.users.add("A", "a", acme)
	b := f.users.add("B", "b", acme)
	c := f.users.add("C", "c", acme)
	ctx := context.Background()

	if err := f.svc.SendFriendRequest(ctx, a.ID.Hex(), c.ID.Hex()); err != nil {
		t.Fatalf("send a->c: %v", err)
	}
	if err := f.svc.SendFriendRequest(ctx, b.ID.Hex(), c.ID.Hex()); err != nil {
		t.Fatalf("send b->c: %v", err)
	}

	notifications, err := f.svc.ListNotifications(ctx, c.ID.Hex())
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	senders := map[string]bool{}
	for _, n := range notifications {
		senders[n.Sender.ID] = true
		if n.Sender.Avatar == "" {
			t.Error("notification sender must carry the avatar url")
		}
	}
	if !senders[a.ID.Hex()] || !senders[b.ID.Hex()] {
		t.Errorf("notification senders: got %v", senders)
	}

	// nothing pending for the sender side
	none, err := f.svc.ListNotifications(ctx, a.ID.Hex())
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("sender must have no notifications, got %d", len(none))
	}
}
