package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is a pending, directional friend request. There is no stored
// status: acceptance deletes the row and materializes a direct chat,
// rejection just deletes the row.
type Request struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Receiver  primitive.ObjectID `bson:"receiver" json:"receiver"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Notification is a pending request as shown to its receiver.
type Notification struct {
	ID     string     `json:"_id"`
	Sender PublicUser `json:"sender"`
}
