package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Avatar holds the storage key and public URL of an uploaded image.
type Avatar struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name                string               `bson:"name" json:"name"`
	Username            string               `bson:"username" json:"username"`
	Password            string               `bson:"password" json:"-"`
	Bio                 string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar              Avatar               `bson:"avatar" json:"avatar"`
	JoinedOrganizations []primitive.ObjectID `bson:"joined_organizations" json:"joined_organizations"`
	CreatedAt           time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the profile shape returned from search and friend listings.
type PublicUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID.Hex(), Name: u.Name, Avatar: u.Avatar.URL}
}
