package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
)

type requestMongoRepository struct {
	requests *mongo.Collection
	chats    *mongo.Collection
}

func NewRequestMongoRepository(requests, chats *mongo.Collection) RequestRepository {
	return &requestMongoRepository{requests: requests, chats: chats}
}

func (r *requestMongoRepository) Create(ctx context.Context, req *models.Request) (*models.Request, error) {
	req.CreatedAt = time.Now().UTC()
	res, err := r.requests.InsertOne(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	return req, nil
}

func (r *requestMongoRepository) GetByID(ctx context.Context, id string) (*models.Request, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var req models.Request
	err = r.requests.FindOne(ctx, bson.M{"_id": objID}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestMongoRepository) FindBetween(ctx context.Context, userA, userB string) (*models.Request, error) {
	aID, err := primitive.ObjectIDFromHex(userA)
	if err != nil {
		return nil, nil
	}
	bID, err := primitive.ObjectIDFromHex(userB)
	if err != nil {
		return nil, nil
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": aID, "receiver": bID},
		bson.M{"sender": bID, "receiver": aID},
	}}
	var req models.Request
	err = r.requests.FindOne(ctx, filter).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestMongoRepository) ListByReceiver(ctx context.Context, receiverID string) ([]*models.Request, error) {
	objID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, nil
	}
	cur, err := r.requests.Find(ctx, bson.M{"receiver": objID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Request
	for cur.Next(ctx) {
		var req models.Request
		if err := cur.Decode(&req); err != nil {
			return nil, err
		}
		out = append(out, &req)
	}
	return out, cur.Err()
}

func (r *requestMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.requests.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

// CommitAcceptance materializes the direct chat and removes the request.
// Multi-document transactions need a replica set, so this runs as
// create-then-delete with a compensating chat delete: if the request cannot
// be deleted (already processed by a concurrent accept, or a transient
// failure), the freshly created chat is removed again so a lost friendship
// cannot be recorded half-way.
func (r *requestMongoRepository) CommitAcceptance(ctx context.Context, requestID string, chat *models.Chat) (*models.Chat, error) {
	reqObjID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, errors.New("malformed request id")
	}

	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	res, err := r.chats.InsertOne(ctx, chat)
	if err != nil {
		return nil, err
	}
	chat.ID = res.InsertedID.(primitive.ObjectID)

	del, err := r.requests.DeleteOne(ctx, bson.M{"_id": reqObjID})
	if err == nil && del.DeletedCount == 0 {
		err = errors.New("request no longer exists")
	}
	if err != nil {
		// Compensate. If this also fails the leftover chat is harmless
		// compared to a silently lost request.
		_, _ = r.chats.DeleteOne(ctx, bson.M{"_id": chat.ID})
		return nil, err
	}
	return chat, nil
}
