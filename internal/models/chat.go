package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is either a two-member direct chat (an established friendship) or a
// group chat. Direct chats are only created through friend-request acceptance.
type Chat struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name      string               `bson:"name" json:"name"`
	GroupChat bool                 `bson:"group_chat" json:"group_chat"`
	Creator   primitive.ObjectID   `bson:"creator,omitempty" json:"creator,omitempty"`
	Members   []primitive.ObjectID `bson:"members" json:"members"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// OtherMember returns the member of a direct chat that is not userID.
func (c *Chat) OtherMember(userID primitive.ObjectID) (primitive.ObjectID, bool) {
	for _, m := range c.Members {
		if m != userID {
			return m, true
		}
	}
	return primitive.NilObjectID, false
}

// HasMember reports whether userID is a member of the chat.
func (c *Chat) HasMember(userID primitive.ObjectID) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}
