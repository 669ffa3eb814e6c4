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

type organizationMongoRepository struct {
	collection *mongo.Collection
}

func NewOrganizationMongoRepository(col *mongo.Collection) OrganizationRepository {
	return &organizationMongoRepository{collection: col}
}

func (r *organizationMongoRepository) Create(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, org)
	if err != nil {
		return nil, err
	}
	org.ID = res.InsertedID.(primitive.ObjectID)
	return org, nil
}

func (r *organizationMongoRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var org models.Organization
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationMongoRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.Organization, error) {
	objID, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, nil
	}
	cur, err := r.collection.Find(ctx, bson.M{"creator": objID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Organization
	for cur.Next(ctx) {
		var org models.Organization
		if err := cur.Decode(&org); err != nil {
			return nil, err
		}
		out = append(out, &org)
	}
	return out, cur.Err()
}

func (r *organizationMongoRepository) GetManyByIDs(ctx context.Context, ids []string) ([]*models.Organization, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	cur, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Organization
	for cur.Next(ctx) {
		var org models.Organization
		if err := cur.Decode(&org); err != nil {
			return nil, err
		}
		out = append(out, &org)
	}
	return out, cur.Err()
}
