package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
)

type chatMongoRepository struct {
	collection *mongo.Collection
}

func NewChatMongoRepository(col *mongo.Collection) ChatRepository {
	return &chatMongoRepository{collection: col}
}

func (r *chatMongoRepository) Create(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, chat)
	if err != nil {
		return nil, err
	}
	chat.ID = res.InsertedID.(primitive.ObjectID)
	return chat, nil
}

func (r *chatMongoRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var chat models.Chat
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatMongoRepository) ListDirectByMember(ctx context.Context, userID string) ([]*models.Chat, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	cur, err := r.collection.Find(ctx, bson.M{"group_chat": false, "members": objID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Chat
	for cur.Next(ctx) {
		var chat models.Chat
		if err := cur.Decode(&chat); err != nil {
			return nil, err
		}
		out = append(out, &chat)
	}
	return out, cur.Err()
}
