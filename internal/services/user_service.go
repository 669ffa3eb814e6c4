package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeelTecheniac/chat-demo-backend/internal/apperr"
	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
	"github.com/jeelTecheniac/chat-demo-backend/internal/repository"
)

const loginFailedMessage = "invalid username or password"

type UserService struct {
	users         repository.UserRepository
	orgs          repository.OrganizationRepository
	chats         repository.ChatRepository
	avatars       AvatarStore
	searchAllOrgs bool
}

func NewUserService(
	users repository.UserRepository,
	orgs repository.OrganizationRepository,
	chats repository.ChatRepository,
	avatars AvatarStore,
	searchAllOrgs bool,
) *UserService {
	return &UserService{
		users:         users,
		orgs:          orgs,
		chats:         chats,
		avatars:       avatars,
		searchAllOrgs: searchAllOrgs,
	}
}

type RegisterInput struct {
	Name           string
	Username       string
	Password       string
	Bio            string
	OrganizationID string
	Avatar         []byte
	AvatarType     string
}

// Register creates a user, stores the avatar and optionally joins the given
// organization.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, apperr.Validation("name, username and password are required")
	}
	if len(in.Avatar) == 0 {
		return nil, apperr.Validation("please upload avatar")
	}

	var joined []primitive.ObjectID
	if strings.TrimSpace(in.OrganizationID) != "" {
		orgID, err := primitive.ObjectIDFromHex(in.OrganizationID)
		if err != nil {
			return nil, apperr.BadID("invalid organization id")
		}
		org, err := s.orgs.GetByID(ctx, in.OrganizationID)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, apperr.NotFound("organization not found")
		}
		joined = []primitive.ObjectID{orgID}
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	key, url, err := s.avatars.Upload(ctx, "avatars", in.AvatarType, in.Avatar)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:                in.Name,
		Username:            in.Username,
		Password:            string(hash),
		Bio:                 in.Bio,
		Avatar:              models.Avatar{PublicID: key, URL: url},
		JoinedOrganizations: joined,
	}
	return s.users.Create(ctx, user)
}

// Login verifies the credentials. Unknown usernames and wrong passwords
// fail identically so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.AuthFailed(loginFailedMessage)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.AuthFailed(loginFailedMessage)
	}
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// SearchUsers finds users by case-insensitive name substring within the
// requester's organizations, excluding the requester and everyone already
// sharing a direct chat with them.
func (s *UserService) SearchUsers(ctx context.Context, requesterID, name string) ([]models.PublicUser, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, apperr.NotFound("user not found")
	}
	if len(requester.JoinedOrganizations) == 0 {
		return nil, apperr.Validation("you have not joined any organizations yet")
	}

	scope := requester.JoinedOrganizations
	if !s.searchAllOrgs {
		scope = scope[:1]
	}
	orgIDs := make([]string, 0, len(scope))
	for _, id := range scope {
		orgIDs = append(orgIDs, id.Hex())
	}

	chats, err := s.chats.ListDirectByMember(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	exclude := map[string]struct{}{requesterID: {}}
	for _, chat := range chats {
		for _, m := range chat.Members {
			exclude[m.Hex()] = struct{}{}
		}
	}
	excludeIDs := make([]string, 0, len(exclude))
	for id := range exclude {
		excludeIDs = append(excludeIDs, id)
	}

	matches, err := s.users.Search(ctx, name, orgIDs, excludeIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(matches))
	for _, u := range matches {
		out = append(out, u.Public())
	}
	return out, nil
}

// ListFriends resolves the other member of every direct chat the user is
// in. When excludeChatID is given, members of that chat are filtered out so
// the result can populate "add friend to this chat" pickers.
func (s *UserService) ListFriends(ctx context.Context, userID, excludeChatID string) ([]models.PublicUser, error) {
	me, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.BadID("invalid user id")
	}

	chats, err := s.chats.ListDirectByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	friendIDs := make([]string, 0, len(chats))
	for _, chat := range chats {
		if other, ok := chat.OtherMember(me); ok {
			friendIDs = append(friendIDs, other.Hex())
		}
	}
	friends, err := s.users.GetManyByIDs(ctx, friendIDs)
	if err != nil {
		return nil, err
	}
	profiles := publicProfiles(friends)

	var excludeMembers map[string]struct{}
	if excludeChatID != "" {
		chat, err := s.chats.GetByID(ctx, excludeChatID)
		if err != nil {
			return nil, err
		}
		if chat == nil {
			return nil, apperr.NotFound("chat not found")
		}
		excludeMembers = make(map[string]struct{}, len(chat.Members))
		for _, m := range chat.Members {
			excludeMembers[m.Hex()] = struct{}{}
		}
	}

	out := make([]models.PublicUser, 0, len(friendIDs))
	for _, id := range friendIDs {
		profile, ok := profiles[id]
		if !ok {
			continue
		}
		if _, excluded := excludeMembers[id]; excluded {
			continue
		}
		out = append(out, profile)
	}
	return out, nil
}
